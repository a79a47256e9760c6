package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
)

var errBoom = errors.New("boom")

// flakyStorage is a map-backed Storage whose operations can be made to fail
// per key. It does not implement BatchStorage.
type flakyStorage struct {
	mu       sync.Mutex
	values   map[string]string
	failGet  map[string]bool
	failSet  map[string]bool
	failDel  map[string]bool
	failOnce map[string]bool
	setCalls []string
	delCalls []string
}

func newFlaky() *flakyStorage {
	return &flakyStorage{
		values:   map[string]string{},
		failGet:  map[string]bool{},
		failSet:  map[string]bool{},
		failDel:  map[string]bool{},
		failOnce: map[string]bool{},
	}
}

func (f *flakyStorage) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet[key] {
		return "", false, errBoom
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *flakyStorage) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls = append(f.setCalls, key)
	if f.failSet[key] {
		return errBoom
	}
	if f.failOnce[key] {
		delete(f.failOnce, key)
		return errBoom
	}
	f.values[key] = value
	return nil
}

func (f *flakyStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delCalls = append(f.delCalls, key)
	if f.failDel[key] {
		return errBoom
	}
	delete(f.values, key)
	return nil
}

func testUser(id int64) *models.User {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &models.User{ID: id, Email: "a@b.com", Name: "Ann", CreatedAt: ts, UpdatedAt: ts}
}
