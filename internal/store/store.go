// Package store serializes named records onto a key/value medium.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrClosed is returned by a medium used after Close.
var ErrClosed = errors.New("store: medium closed")

// Medium is a synchronous string key/value store, shaped after browser
// local storage. GetItem reports ok=false for a missing key.
type Medium interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Adapter reads and writes JSON records on a Medium.
type Adapter struct {
	medium Medium
}

func New(m Medium) *Adapter {
	return &Adapter{medium: m}
}

// Get decodes the record under key into v. It returns false when the key
// is absent or holds an empty value; v is untouched in that case.
func (a *Adapter) Get(key string, v any) (bool, error) {
	raw, ok, err := a.medium.GetItem(key)
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("json unmarshal %q: %w", key, err)
	}
	return true, nil
}

// Set stores v under key and returns the stored text. A nil v deletes the
// key and returns "".
func (a *Adapter) Set(key string, v any) (string, error) {
	if v == nil {
		return "", a.Remove(key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("json marshal %q: %w", key, err)
	}
	if err := a.medium.SetItem(key, string(b)); err != nil {
		return "", fmt.Errorf("set %q: %w", key, err)
	}
	raw, _, err := a.medium.GetItem(key)
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return raw, nil
}

func (a *Adapter) Remove(key string) error {
	if err := a.medium.RemoveItem(key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}
