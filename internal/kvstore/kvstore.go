// Package kvstore is the console's local persistence capability: a tiny
// string key → string value store used for the session token and the
// bookmark set. It stands in for the browser's localStorage, so the contract
// is deliberately small — Get, Set, Delete, nothing clever.
//
// Core logic (bookmarks, session) depends only on the Store interface, which
// keeps those packages testable with the in-memory implementation below.
package kvstore

import "errors"

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistence capability handed to the bookmark set and the
// session gate.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Memory is an in-memory Store for tests. Not safe for concurrent use, which
// is fine — the console is single-threaded.
type Memory struct {
	m map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(key string) error {
	delete(s.m, key)
	return nil
}
