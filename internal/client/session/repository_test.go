package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(NewMemoryStorage(), nil)

	assert.Empty(t, r.Credential(ctx))
	assert.Nil(t, r.Profile(ctx))

	u := testUser(1)
	require.NoError(t, r.SetCredential(ctx, "tok"))
	require.NoError(t, r.SetProfile(ctx, u))

	assert.Equal(t, "tok", r.Credential(ctx))
	assert.Equal(t, u, r.Profile(ctx))

	require.NoError(t, r.Clear(ctx))
	assert.Empty(t, r.Credential(ctx))
	assert.Nil(t, r.Profile(ctx))
}

func TestRepository_NopStorageNeverFails(t *testing.T) {
	ctx := context.Background()
	r := NewRepository(nil, nil)

	require.NoError(t, r.Save(ctx, "tok", testUser(1)))
	assert.Empty(t, r.Credential(ctx))
	assert.Nil(t, r.Profile(ctx))
	require.NoError(t, r.Clear(ctx))
}

func TestRepository_MalformedProfileIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	require.NoError(t, store.Set(ctx, common.ProfileKey, "{not json"))

	var buf bytes.Buffer
	r := NewRepository(store, logging.New(&buf, "warn"))

	assert.Nil(t, r.Profile(ctx))
	assert.Contains(t, buf.String(), "stored profile is malformed")
}

func TestRepository_ReadErrorIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	store.values[common.CredentialKey] = "tok"
	store.failGet[common.CredentialKey] = true
	store.failGet[common.ProfileKey] = true

	var buf bytes.Buffer
	r := NewRepository(store, logging.New(&buf, "warn"))

	assert.Empty(t, r.Credential(ctx))
	assert.Nil(t, r.Profile(ctx))
	assert.Contains(t, buf.String(), "failed to read credential")
	assert.Contains(t, buf.String(), "failed to read profile")
}

func TestRepository_SaveWithoutBatchWritesBothKeys(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	r := NewRepository(store, nil)

	require.NoError(t, r.Save(ctx, "tok", testUser(2)))
	assert.Equal(t, []string{common.CredentialKey, common.ProfileKey}, store.setCalls)
	assert.Equal(t, "tok", r.Credential(ctx))
	assert.Equal(t, int64(2), r.Profile(ctx).ID)
}

func TestRepository_SaveRejectsNilProfile(t *testing.T) {
	r := NewRepository(NewMemoryStorage(), nil)

	err := r.Save(context.Background(), "tok", nil)
	require.ErrorIs(t, err, common.ErrInvalidSession)
	assert.Empty(t, r.Credential(context.Background()))
}

func TestRepository_ClearAttemptsBothKeys(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	store.failDel[common.CredentialKey] = true
	store.values[common.ProfileKey] = "{}"
	r := NewRepository(store, nil)

	require.ErrorIs(t, r.Clear(ctx), errBoom)
	assert.Equal(t, []string{common.CredentialKey, common.ProfileKey}, store.delCalls)
	_, ok := store.values[common.ProfileKey]
	assert.False(t, ok)
}
