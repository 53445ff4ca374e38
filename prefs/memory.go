package prefs

// MemoryStore is a Store that lives as long as the process
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (ms *MemoryStore) Get(key string) (*string, error) {
	value, ok := ms.values[key]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

func (ms *MemoryStore) Set(key string, value *string) error {
	if value == nil {
		delete(ms.values, key)
		return nil
	}

	ms.values[key] = *value
	return nil
}

func (ms *MemoryStore) SetMany(entries map[string]*string) error {
	for key, value := range entries {
		ms.Set(key, value)
	}
	return nil
}

func (ms *MemoryStore) Clear(keys ...string) error {
	for _, key := range keys {
		delete(ms.values, key)
	}
	return nil
}

// Len returns the number of keys currently stored
func (ms *MemoryStore) Len() int {
	return len(ms.values)
}
