package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"talenthub/internal/identity"
	"talenthub/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	orgSettingsKeyPrefix = "settings:org:"
	orgSettingsCacheTTL  = 30 * time.Minute

	pgUniqueViolation = "23505"
)

func orgSettingsKey(organizationID string) string {
	return orgSettingsKeyPrefix + organizationID
}

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	GetOrganizationSettings(ctx context.Context, organizationID string) (OrganizationSettingsResponse, error)
	UpdateOrganizationSettings(ctx context.Context, actor identity.Principal, req UpdateOrganizationSettingsRequest) (OrganizationSettingsResponse, error)
	GetUserSettings(ctx context.Context, organizationID, userID string) (UserSettingsResponse, error)
	UpdateUserSettings(ctx context.Context, organizationID, userID string, req UpdateUserSettingsRequest) (UserSettingsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetOrganizationSettings(ctx context.Context, organizationID string) (OrganizationSettingsResponse, error) {
	cacheKey := orgSettingsKey(organizationID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp OrganizationSettingsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight supaya cache miss serentak tidak membanjiri database.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		os, err := s.ensureOrganizationSettings(ctx, organizationID)
		if err != nil {
			return nil, err
		}

		resp := mapOrgSettings(*os)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, orgSettingsCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return OrganizationSettingsResponse{}, err
	}

	return v.(OrganizationSettingsResponse), nil
}

func (s *service) UpdateOrganizationSettings(ctx context.Context, actor identity.Principal, req UpdateOrganizationSettingsRequest) (OrganizationSettingsResponse, error) {
	if actor.Role != identity.RoleAdmin {
		return OrganizationSettingsResponse{}, apperror.ErrForbidden
	}

	os, err := s.ensureOrganizationSettings(ctx, actor.OrganizationID)
	if err != nil {
		return OrganizationSettingsResponse{}, err
	}

	if req.Timezone != "" {
		os.Timezone = req.Timezone
	}
	if req.Locale != "" {
		os.Locale = req.Locale
	}
	if req.NotifyEmail != nil {
		os.NotifyEmail = *req.NotifyEmail
	}
	if req.NotifyInApp != nil {
		os.NotifyInApp = *req.NotifyInApp
	}

	if err := s.repo.UpdateOrganizationSettings(ctx, os); err != nil {
		s.logger.Error("update organization settings failed", zap.Error(err))
		return OrganizationSettingsResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := orgSettingsKey(actor.OrganizationID)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("invalidate settings cache failed",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("organization settings updated",
		zap.String("organization_id", actor.OrganizationID),
		zap.String("updated_by", actor.UserID),
	)
	return mapOrgSettings(*os), nil
}

func (s *service) GetUserSettings(ctx context.Context, organizationID, userID string) (UserSettingsResponse, error) {
	us, err := s.ensureUserSettings(ctx, organizationID, userID)
	if err != nil {
		return UserSettingsResponse{}, err
	}
	return mapUserSettings(*us), nil
}

func (s *service) UpdateUserSettings(ctx context.Context, organizationID, userID string, req UpdateUserSettingsRequest) (UserSettingsResponse, error) {
	us, err := s.ensureUserSettings(ctx, organizationID, userID)
	if err != nil {
		return UserSettingsResponse{}, err
	}

	if req.Theme != "" {
		us.Theme = req.Theme
	}
	if req.Language != "" {
		us.Language = req.Language
	}
	if req.Density != "" {
		us.Density = req.Density
	}

	if err := s.repo.UpdateUserSettings(ctx, us); err != nil {
		s.logger.Error("update user settings failed", zap.Error(err))
		return UserSettingsResponse{}, err
	}
	return mapUserSettings(*us), nil
}

// ensureOrganizationSettings membuat baris default kalau belum ada. Insert
// bersamaan dari dua request kalah di unique index lalu membaca ulang.
func (s *service) ensureOrganizationSettings(ctx context.Context, organizationID string) (*OrganizationSettings, error) {
	os, err := s.repo.FindOrganizationSettings(ctx, organizationID)
	if err == nil {
		return os, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, apperror.ErrForbidden
	}

	created := &OrganizationSettings{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Timezone:       "UTC",
		Locale:         "en",
		NotifyEmail:    true,
		NotifyInApp:    true,
	}
	if err := s.repo.CreateOrganizationSettings(ctx, created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return s.repo.FindOrganizationSettings(ctx, organizationID)
		}
		return nil, err
	}
	return created, nil
}

func (s *service) ensureUserSettings(ctx context.Context, organizationID, userID string) (*UserSettings, error) {
	us, err := s.repo.FindUserSettings(ctx, organizationID, userID)
	if err == nil {
		return us, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return nil, apperror.ErrForbidden
	}

	created := &UserSettings{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		UserID:         userID,
		Theme:          "system",
		Language:       "en",
		Density:        "comfortable",
	}
	if err := s.repo.CreateUserSettings(ctx, created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return s.repo.FindUserSettings(ctx, organizationID, userID)
		}
		return nil, err
	}
	return created, nil
}

func mapOrgSettings(os OrganizationSettings) OrganizationSettingsResponse {
	return OrganizationSettingsResponse{
		Timezone:    os.Timezone,
		Locale:      os.Locale,
		NotifyEmail: os.NotifyEmail,
		NotifyInApp: os.NotifyInApp,
		UpdatedAt:   os.UpdatedAt.Format(time.RFC3339),
	}
}

func mapUserSettings(us UserSettings) UserSettingsResponse {
	return UserSettingsResponse{
		Theme:     us.Theme,
		Language:  us.Language,
		Density:   us.Density,
		UpdatedAt: us.UpdatedAt.Format(time.RFC3339),
	}
}
