package integration

import (
	"context"
	"errors"
	"time"

	"talenthub/internal/identity"
	integrationerrors "talenthub/internal/integration/errors"
	"talenthub/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=integration_service.go -destination=mock/integration_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, organizationID string) ([]IntegrationResponse, error)
	Connect(ctx context.Context, actor identity.Principal, req ConnectIntegrationRequest) (IntegrationResponse, error)
	Disconnect(ctx context.Context, actor identity.Principal, provider string) (IntegrationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("integration.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("integration.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, organizationID string) ([]IntegrationResponse, error) {
	integrations, err := s.repo.FindAll(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	resp := make([]IntegrationResponse, len(integrations))
	for i, it := range integrations {
		resp[i] = mapToResponse(it)
	}
	return resp, nil
}

func (s *service) Connect(ctx context.Context, actor identity.Principal, req ConnectIntegrationRequest) (IntegrationResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return IntegrationResponse{}, apperror.ErrForbidden
	}

	orgUUID, err := uuid.Parse(actor.OrganizationID)
	if err != nil {
		return IntegrationResponse{}, apperror.ErrForbidden
	}

	now := time.Now().UTC()

	existing, err := s.repo.FindByProvider(ctx, actor.OrganizationID, req.Provider)
	if err == nil {
		if existing.Status == StatusConnected {
			return IntegrationResponse{}, integrationerrors.ErrAlreadyConnected
		}
		// Provider pernah di-disconnect: aktifkan lagi baris yang sama.
		existing.Status = StatusConnected
		existing.Credentials = req.Credentials
		existing.ConnectedBy = actor.UserID
		existing.ConnectedAt = &now
		if err := s.repo.Update(ctx, existing); err != nil {
			return IntegrationResponse{}, err
		}
		s.logger.Info("integration reconnected",
			zap.String("provider", req.Provider),
			zap.String("organization_id", actor.OrganizationID),
		)
		return mapToResponse(*existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return IntegrationResponse{}, err
	}

	i := &Integration{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Provider:       req.Provider,
		Status:         StatusConnected,
		Credentials:    req.Credentials,
		ConnectedBy:    actor.UserID,
		ConnectedAt:    &now,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return IntegrationResponse{}, integrationerrors.ErrAlreadyConnected
		}
		s.logger.Error("connect integration failed", zap.String("provider", req.Provider), zap.Error(err))
		return IntegrationResponse{}, err
	}

	s.logger.Info("integration connected",
		zap.String("provider", req.Provider),
		zap.String("organization_id", actor.OrganizationID),
		zap.String("connected_by", actor.UserID),
	)
	return mapToResponse(*i), nil
}

func (s *service) Disconnect(ctx context.Context, actor identity.Principal, provider string) (IntegrationResponse, error) {
	if !actor.HasRole(identity.RoleAdmin, identity.RoleManager) {
		return IntegrationResponse{}, apperror.ErrForbidden
	}

	i, err := s.repo.FindByProvider(ctx, actor.OrganizationID, provider)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IntegrationResponse{}, integrationerrors.ErrIntegrationNotFound
		}
		return IntegrationResponse{}, err
	}

	if i.Status == StatusDisconnected {
		return IntegrationResponse{}, integrationerrors.ErrAlreadyDisconnected
	}

	// Kredensial dihapus saat disconnect, tidak disimpan sebagai arsip.
	i.Status = StatusDisconnected
	i.Credentials = ""
	i.ConnectedAt = nil

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("disconnect integration failed", zap.String("provider", provider), zap.Error(err))
		return IntegrationResponse{}, err
	}

	s.logger.Info("integration disconnected",
		zap.String("provider", provider),
		zap.String("organization_id", actor.OrganizationID),
		zap.String("disconnected_by", actor.UserID),
	)
	return mapToResponse(*i), nil
}

func mapToResponse(i Integration) IntegrationResponse {
	resp := IntegrationResponse{
		ID:          i.ID.String(),
		Provider:    i.Provider,
		Status:      i.Status,
		ConnectedBy: i.ConnectedBy,
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.Format(time.RFC3339),
	}
	if i.ConnectedAt != nil {
		v := i.ConnectedAt.Format(time.RFC3339)
		resp.ConnectedAt = &v
	}
	return resp
}
