package session

import (
	"context"
	"errors"
	"fmt"
)

// MirrorStorage writes every change to a primary backend and then to each
// mirror. Reads are served by the primary only.
//
// A failed primary write stops the operation; mirror failures are collected
// and returned together once all mirrors were tried.
type MirrorStorage struct {
	primary Storage
	mirrors []Storage
}

var _ BatchStorage = (*MirrorStorage)(nil)

func NewMirrorStorage(primary Storage, mirrors ...Storage) *MirrorStorage {
	return &MirrorStorage{primary: primary, mirrors: mirrors}
}

func (m *MirrorStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return m.primary.Get(ctx, key)
}

func (m *MirrorStorage) Set(ctx context.Context, key, value string) error {
	if err := m.primary.Set(ctx, key, value); err != nil {
		return err
	}
	return m.each(func(s Storage) error { return s.Set(ctx, key, value) })
}

func (m *MirrorStorage) SetMany(ctx context.Context, values map[string]string) error {
	if err := setMany(ctx, m.primary, values); err != nil {
		return err
	}
	return m.each(func(s Storage) error { return setMany(ctx, s, values) })
}

func (m *MirrorStorage) Delete(ctx context.Context, key string) error {
	if err := m.primary.Delete(ctx, key); err != nil {
		return err
	}
	return m.each(func(s Storage) error { return s.Delete(ctx, key) })
}

func (m *MirrorStorage) each(fn func(Storage) error) error {
	var errs []error
	for i, s := range m.mirrors {
		if err := fn(s); err != nil {
			errs = append(errs, fmt.Errorf("mirror %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// setMany uses the backend's batch write when it has one.
func setMany(ctx context.Context, s Storage, values map[string]string) error {
	if b, ok := s.(BatchStorage); ok {
		return b.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}
