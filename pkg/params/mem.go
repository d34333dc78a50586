package params

// MemBackend is a non-persistent backend for tests and demo runs.
type MemBackend struct {
	data map[string]string
}

// NewMemBackend returns an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{data: make(map[string]string)}
}

func (m *MemBackend) Read(key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemBackend) Write(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *MemBackend) Delete(key string) error {
	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func (m *MemBackend) Close() error {
	return nil
}
