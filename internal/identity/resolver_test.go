package identity_test

import (
	"context"
	"errors"
	"testing"

	"talenthub/internal/identity"
	identityerrors "talenthub/internal/identity/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProfileRepository struct {
	findByUserIDFn func(ctx context.Context, userID string) (*identity.Profile, error)
	calls          int
}

func (f *fakeProfileRepository) FindProfileByUserID(ctx context.Context, userID string) (*identity.Profile, error) {
	f.calls++
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestResolver_EmptyUserID(t *testing.T) {
	repo := &fakeProfileRepository{}
	r := identity.NewResolver(repo)

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, identityerrors.ErrUnauthenticated)
	// Lookup tidak boleh terjadi untuk request tanpa identitas.
	assert.Equal(t, 0, repo.calls)
}

func TestResolver_UnknownUser(t *testing.T) {
	repo := &fakeProfileRepository{}
	r := identity.NewResolver(repo)

	_, err := r.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, identityerrors.ErrNoOrganization)
}

func TestResolver_ProfileWithoutOrganization(t *testing.T) {
	repo := &fakeProfileRepository{
		findByUserIDFn: func(ctx context.Context, userID string) (*identity.Profile, error) {
			return &identity.Profile{UserID: userID, Role: identity.RoleEmployee}, nil
		},
	}
	r := identity.NewResolver(repo)

	_, err := r.Resolve(context.Background(), "user-1")
	assert.ErrorIs(t, err, identityerrors.ErrNoOrganization)
}

func TestResolver_RepositoryFaultIsNotUnauthorized(t *testing.T) {
	dbErr := errors.New("connection reset")
	repo := &fakeProfileRepository{
		findByUserIDFn: func(ctx context.Context, userID string) (*identity.Profile, error) {
			return nil, dbErr
		},
	}
	r := identity.NewResolver(repo)

	_, err := r.Resolve(context.Background(), "user-1")
	assert.ErrorIs(t, err, dbErr)
}

func TestResolver_Success(t *testing.T) {
	orgID := uuid.New()
	repo := &fakeProfileRepository{
		findByUserIDFn: func(ctx context.Context, userID string) (*identity.Profile, error) {
			return &identity.Profile{
				UserID:         userID,
				OrganizationID: orgID,
				Role:           identity.RoleManager,
			}, nil
		},
	}
	r := identity.NewResolver(repo)

	p, err := r.Resolve(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, orgID.String(), p.OrganizationID)
	assert.Equal(t, identity.RoleManager, p.Role)
	assert.True(t, p.HasRole(identity.RoleManager, identity.RoleAdmin))
	assert.False(t, p.HasRole(identity.RoleAdmin))
}
