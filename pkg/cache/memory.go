package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryStore struct {
	lru *lru.Cache[string, string]
}

// NewMemoryStore creates an in-process LRU store holding at most size entries.
func NewMemoryStore(size int) (Store, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &memoryStore{lru: c}, nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.lru.Get(key)
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.lru.Add(key, value)
	return nil
}

func (s *memoryStore) Len(_ context.Context) (int, error) {
	return s.lru.Len(), nil
}
