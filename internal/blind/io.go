package blind

import "arete/internal/artifact"

// SaveSet writes the blind set artifact.
func SaveSet(path string, set Set) error {
	return artifact.SaveJSON(path, set)
}

// LoadSet reads and checks a blind set artifact.
func LoadSet(path string) (Set, error) {
	var set Set
	if err := artifact.LoadJSON(path, &set); err != nil {
		return Set{}, err
	}
	if err := set.Check(artifact.KindBlindSet); err != nil {
		return Set{}, err
	}
	return set, nil
}

// SaveKey writes the key artifact.
func SaveKey(path string, key Key) error {
	return artifact.SaveJSON(path, key)
}

// LoadKey reads and checks a key artifact.
func LoadKey(path string) (Key, error) {
	var key Key
	if err := artifact.LoadJSON(path, &key); err != nil {
		return Key{}, err
	}
	if err := key.Check(artifact.KindBlindKey); err != nil {
		return Key{}, err
	}
	return key, nil
}
