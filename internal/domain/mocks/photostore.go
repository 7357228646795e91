package mocks

import (
	"context"
	"fmt"
)

// PhotoStore is a mock implementation of ports.PhotoStore.
type PhotoStore struct {
	Objects map[string][]byte
	Types   map[string]string
	BaseURL string
	Err     error
}

// NewPhotoStore creates a new mock PhotoStore.
func NewPhotoStore() *PhotoStore {
	return &PhotoStore{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
		BaseURL: "http://photos.test",
	}
}

// Put stores data under key.
func (m *PhotoStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Objects[key] = data
	m.Types[key] = contentType
	return fmt.Sprintf("%s/%s", m.BaseURL, key), nil
}
