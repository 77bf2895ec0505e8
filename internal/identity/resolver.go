package identity

import (
	"context"
	"errors"

	identityerrors "talenthub/internal/identity/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	// Resolve turns the opaque user id supplied by the identity provider
	// into a Principal bound to one organization. Read-only and idempotent;
	// dipanggil sekali per request, tidak pernah di-cache lintas request
	// karena keanggotaan organisasi bisa berubah.
	Resolve(ctx context.Context, userID string) (Principal, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("identity.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, userID string) (Principal, error) {
	if userID == "" {
		return Principal{}, identityerrors.ErrUnauthenticated
	}

	profile, err := r.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("authenticated user has no profile",
				zap.String("user_id", userID),
			)
			return Principal{}, identityerrors.ErrNoOrganization
		}
		return Principal{}, err
	}
	if profile.OrganizationID == uuid.Nil {
		r.logger.Warn("profile exists without organization",
			zap.String("user_id", userID),
		)
		return Principal{}, identityerrors.ErrNoOrganization
	}

	return Principal{
		UserID:         userID,
		OrganizationID: profile.OrganizationID.String(),
		Role:           profile.Role,
	}, nil
}
