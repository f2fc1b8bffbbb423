package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/models"
)

// UserStore is the persistence capability the resolver needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIdentityUID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
}

// Resolver maps a verified external identity to a local user, creating one
// on first sight and reconciling email/identity-id drift.
type Resolver struct {
	users UserStore
	log   *slog.Logger
}

func NewResolver(users UserStore, log *slog.Logger) *Resolver {
	return &Resolver{users: users, log: log}
}

// Resolve looks up the local user for a verified identity.
//
// Lookup precedence matters: the email match is tried first so that an
// account whose provider-side id changed (re-registration under the same
// address) is reconciled instead of duplicated, and only then the stable
// external id, so an address change on the provider side updates the stored
// email in place.
func (r *Resolver) Resolve(ctx context.Context, id *Identity) (*models.User, error) {
	if id.Email != "" {
		u, err := r.users.FindByEmail(ctx, id.Email)
		if err == nil {
			if u.IdentityUID == nil || *u.IdentityUID != id.UID {
				uid := id.UID
				u.IdentityUID = &uid
				if err := r.users.Save(ctx, u); err != nil {
					return nil, err
				}
				r.log.Info("identity uid reconciled", "user_id", u.ID, "email", u.Email)
			}
			return u, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	u, err := r.users.FindByIdentityUID(ctx, id.UID)
	if err == nil {
		if id.Email != "" && u.Email != id.Email {
			u.Email = id.Email
			if err := r.users.Save(ctx, u); err != nil {
				return nil, err
			}
			r.log.Info("identity email reconciled", "user_id", u.ID, "uid", id.UID)
		}
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := id.Email
	if email == "" {
		email = PlaceholderEmail(id.UID)
	}
	uid := id.UID
	u = &models.User{
		IdentityUID: &uid,
		Email:       email,
		Role:        models.RoleSeeker,
		Active:      true,
	}
	if err := r.users.Create(ctx, u); err != nil {
		return nil, err
	}
	r.log.Info("user created from external identity", "user_id", u.ID, "uid", id.UID)
	return u, nil
}

// PlaceholderEmail synthesizes an address for identities that arrive without
// one; the unique constraint on email still holds.
func PlaceholderEmail(uid string) string {
	return fmt.Sprintf("user_%s@local", uid)
}
