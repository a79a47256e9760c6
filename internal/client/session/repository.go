package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

// Repository stores the credential and the profile under their own keys.
//
// Reads never fail. A backend error, or a profile that does not decode,
// is logged and reported as absent.
type Repository struct {
	store Storage
	log   logging.Logger
}

func NewRepository(store Storage, log logging.Logger) *Repository {
	if store == nil {
		store = NopStorage{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Repository{store: store, log: log}
}

// Credential returns "" when no credential is stored.
func (r *Repository) Credential(ctx context.Context) string {
	v, ok, err := r.store.Get(ctx, common.CredentialKey)
	if err != nil {
		r.log.Warn(ctx, "failed to read credential, treating as absent", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (r *Repository) SetCredential(ctx context.Context, credential string) error {
	if err := r.store.Set(ctx, common.CredentialKey, credential); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Profile returns nil when no profile is stored or the stored one is unusable.
func (r *Repository) Profile(ctx context.Context) *models.User {
	raw, ok, err := r.store.Get(ctx, common.ProfileKey)
	if err != nil {
		r.log.Warn(ctx, "failed to read profile, treating as absent", "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var u *models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		r.log.Warn(ctx, "stored profile is malformed, treating as absent", "error", err)
		return nil
	}
	return u
}

func (r *Repository) SetProfile(ctx context.Context, u *models.User) error {
	raw, err := encodeProfile(u)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, common.ProfileKey, raw); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}

// Save stores both halves, in one batch when the backend supports it.
func (r *Repository) Save(ctx context.Context, credential string, u *models.User) error {
	raw, err := encodeProfile(u)
	if err != nil {
		return err
	}

	if b, ok := r.store.(BatchStorage); ok {
		err := b.SetMany(ctx, map[string]string{
			common.CredentialKey: credential,
			common.ProfileKey:    raw,
		})
		if err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		return nil
	}

	if err := r.SetCredential(ctx, credential); err != nil {
		return err
	}
	if err := r.store.Set(ctx, common.ProfileKey, raw); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}

// Clear removes both halves. Both deletes are attempted even if one fails.
func (r *Repository) Clear(ctx context.Context) error {
	errCred := r.store.Delete(ctx, common.CredentialKey)
	errProfile := r.store.Delete(ctx, common.ProfileKey)
	if err := errors.Join(errCred, errProfile); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func encodeProfile(u *models.User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("encode profile: %w", common.ErrInvalidSession)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	return string(raw), nil
}
