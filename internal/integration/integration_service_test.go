package integration_test

import (
	"context"
	"testing"
	"time"

	"talenthub/internal/identity"
	"talenthub/internal/integration"
	integrationerrors "talenthub/internal/integration/errors"
	"talenthub/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeIntegrationRepository struct {
	createFn         func(ctx context.Context, i *integration.Integration) error
	findAllFn        func(ctx context.Context, organizationID string) ([]integration.Integration, error)
	findByProviderFn func(ctx context.Context, organizationID, provider string) (*integration.Integration, error)

	updated []integration.Integration
}

func (f *fakeIntegrationRepository) Create(ctx context.Context, i *integration.Integration) error {
	if f.createFn != nil {
		return f.createFn(ctx, i)
	}
	return nil
}

func (f *fakeIntegrationRepository) FindAll(ctx context.Context, organizationID string) ([]integration.Integration, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakeIntegrationRepository) FindByProvider(ctx context.Context, organizationID, provider string) (*integration.Integration, error) {
	if f.findByProviderFn != nil {
		return f.findByProviderFn(ctx, organizationID, provider)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIntegrationRepository) Update(ctx context.Context, i *integration.Integration) error {
	f.updated = append(f.updated, *i)
	return nil
}

func adminActor() identity.Principal {
	return identity.Principal{
		UserID:         "admin-1",
		OrganizationID: uuid.New().String(),
		Role:           identity.RoleAdmin,
	}
}

func TestIntegrationService_Connect(t *testing.T) {
	ctx := context.Background()

	t.Run("forbidden for employee", func(t *testing.T) {
		svc := integration.NewService(&fakeIntegrationRepository{})

		actor := adminActor()
		actor.Role = identity.RoleEmployee
		_, err := svc.Connect(ctx, actor, integration.ConnectIntegrationRequest{Provider: integration.ProviderSlack})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("new provider connects", func(t *testing.T) {
		svc := integration.NewService(&fakeIntegrationRepository{})
		actor := adminActor()

		resp, err := svc.Connect(ctx, actor, integration.ConnectIntegrationRequest{
			Provider:    integration.ProviderSlack,
			Credentials: "xoxb-secret",
		})
		assert.NoError(t, err)
		assert.Equal(t, integration.StatusConnected, resp.Status)
		assert.Equal(t, actor.UserID, resp.ConnectedBy)
		assert.NotNil(t, resp.ConnectedAt)
	})

	t.Run("already connected provider conflicts", func(t *testing.T) {
		now := time.Now().UTC()
		repo := &fakeIntegrationRepository{
			findByProviderFn: func(ctx context.Context, organizationID, provider string) (*integration.Integration, error) {
				return &integration.Integration{
					ID:          uuid.New(),
					Provider:    provider,
					Status:      integration.StatusConnected,
					ConnectedAt: &now,
				}, nil
			},
		}
		svc := integration.NewService(repo)

		_, err := svc.Connect(ctx, adminActor(), integration.ConnectIntegrationRequest{Provider: integration.ProviderSlack})
		assert.ErrorIs(t, err, integrationerrors.ErrAlreadyConnected)
	})

	t.Run("disconnected provider reconnects in place", func(t *testing.T) {
		existing := &integration.Integration{
			ID:       uuid.New(),
			Provider: integration.ProviderGoogle,
			Status:   integration.StatusDisconnected,
		}
		repo := &fakeIntegrationRepository{
			findByProviderFn: func(ctx context.Context, organizationID, provider string) (*integration.Integration, error) {
				return existing, nil
			},
		}
		svc := integration.NewService(repo)

		resp, err := svc.Connect(ctx, adminActor(), integration.ConnectIntegrationRequest{
			Provider:    integration.ProviderGoogle,
			Credentials: "refresh-token",
		})
		assert.NoError(t, err)
		assert.Equal(t, integration.StatusConnected, resp.Status)
		assert.Len(t, repo.updated, 1)
		assert.Equal(t, existing.ID, repo.updated[0].ID)
		assert.Equal(t, "refresh-token", repo.updated[0].Credentials)
	})

	t.Run("unique index race maps to conflict", func(t *testing.T) {
		repo := &fakeIntegrationRepository{
			createFn: func(ctx context.Context, i *integration.Integration) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "idx_integrations_org_provider"}
			},
		}
		svc := integration.NewService(repo)

		_, err := svc.Connect(ctx, adminActor(), integration.ConnectIntegrationRequest{Provider: integration.ProviderAsana})
		assert.ErrorIs(t, err, integrationerrors.ErrAlreadyConnected)
	})
}

func TestIntegrationService_Disconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown provider", func(t *testing.T) {
		svc := integration.NewService(&fakeIntegrationRepository{})

		_, err := svc.Disconnect(ctx, adminActor(), integration.ProviderSlack)
		assert.ErrorIs(t, err, integrationerrors.ErrIntegrationNotFound)
	})

	t.Run("already disconnected conflicts", func(t *testing.T) {
		repo := &fakeIntegrationRepository{
			findByProviderFn: func(ctx context.Context, organizationID, provider string) (*integration.Integration, error) {
				return &integration.Integration{ID: uuid.New(), Provider: provider, Status: integration.StatusDisconnected}, nil
			},
		}
		svc := integration.NewService(repo)

		_, err := svc.Disconnect(ctx, adminActor(), integration.ProviderSlack)
		assert.ErrorIs(t, err, integrationerrors.ErrAlreadyDisconnected)
	})

	t.Run("disconnect wipes credentials", func(t *testing.T) {
		now := time.Now().UTC()
		existing := &integration.Integration{
			ID:          uuid.New(),
			Provider:    integration.ProviderSlack,
			Status:      integration.StatusConnected,
			Credentials: "xoxb-secret",
			ConnectedAt: &now,
		}
		repo := &fakeIntegrationRepository{
			findByProviderFn: func(ctx context.Context, organizationID, provider string) (*integration.Integration, error) {
				return existing, nil
			},
		}
		svc := integration.NewService(repo)

		resp, err := svc.Disconnect(ctx, adminActor(), integration.ProviderSlack)
		assert.NoError(t, err)
		assert.Equal(t, integration.StatusDisconnected, resp.Status)
		assert.Nil(t, resp.ConnectedAt)
		assert.Len(t, repo.updated, 1)
		assert.Empty(t, repo.updated[0].Credentials)
	})
}
