package scene

// MaxKeys bounds the key codes tracked by a KeyTable.
const MaxKeys = 1024

// KeyTable records which keys are currently held. It is written by the key
// callback and read once per frame by the movement mapper.
type KeyTable [MaxKeys]bool

// Set updates the held state of key from a key event. Repeat events leave the
// state unchanged and out-of-range codes are ignored.
func (k *KeyTable) Set(key Key, action Action) {
	if key < 0 || key >= MaxKeys {
		return
	}

	switch action {
	case Press:
		k[key] = true
	case Release:
		k[key] = false
	}
}

// Held reports whether key is currently held
func (k *KeyTable) Held(key Key) bool {
	if key < 0 || key >= MaxKeys {
		return false
	}
	return k[key]
}

// Any reports whether at least one of keys is held
func (k *KeyTable) Any(keys ...Key) bool {
	for _, key := range keys {
		if k.Held(key) {
			return true
		}
	}
	return false
}

// Reset releases every key
func (k *KeyTable) Reset() {
	*k = KeyTable{}
}
