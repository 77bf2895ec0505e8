package settings_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talenthub/internal/identity"
	"talenthub/internal/settings"
	"talenthub/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	findOrgFn   func(ctx context.Context, organizationID string) (*settings.OrganizationSettings, error)
	createOrgFn func(ctx context.Context, os *settings.OrganizationSettings) error
	updateOrgFn func(ctx context.Context, os *settings.OrganizationSettings) error
	findUserFn  func(ctx context.Context, organizationID, userID string) (*settings.UserSettings, error)

	findOrgCalls int
	createdOrg   []settings.OrganizationSettings
	createdUser  []settings.UserSettings
}

func (f *fakeSettingsRepository) FindOrganizationSettings(ctx context.Context, organizationID string) (*settings.OrganizationSettings, error) {
	f.findOrgCalls++
	if f.findOrgFn != nil {
		return f.findOrgFn(ctx, organizationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSettingsRepository) CreateOrganizationSettings(ctx context.Context, os *settings.OrganizationSettings) error {
	f.createdOrg = append(f.createdOrg, *os)
	if f.createOrgFn != nil {
		return f.createOrgFn(ctx, os)
	}
	return nil
}

func (f *fakeSettingsRepository) UpdateOrganizationSettings(ctx context.Context, os *settings.OrganizationSettings) error {
	if f.updateOrgFn != nil {
		return f.updateOrgFn(ctx, os)
	}
	return nil
}

func (f *fakeSettingsRepository) FindUserSettings(ctx context.Context, organizationID, userID string) (*settings.UserSettings, error) {
	if f.findUserFn != nil {
		return f.findUserFn(ctx, organizationID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSettingsRepository) CreateUserSettings(ctx context.Context, us *settings.UserSettings) error {
	f.createdUser = append(f.createdUser, *us)
	return nil
}

func (f *fakeSettingsRepository) UpdateUserSettings(ctx context.Context, us *settings.UserSettings) error {
	return nil
}

func TestSettingsService_GetOrganizationSettings(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("first read creates defaults", func(t *testing.T) {
		repo := &fakeSettingsRepository{}
		svc := settings.NewService(repo, nil)

		resp, err := svc.GetOrganizationSettings(ctx, orgID)
		assert.NoError(t, err)
		assert.Equal(t, "UTC", resp.Timezone)
		assert.Equal(t, "en", resp.Locale)
		assert.True(t, resp.NotifyEmail)
		assert.True(t, resp.NotifyInApp)
		assert.Len(t, repo.createdOrg, 1)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		cached, _ := json.Marshal(settings.OrganizationSettingsResponse{
			Timezone:    "Asia/Jakarta",
			Locale:      "id",
			NotifyEmail: true,
			NotifyInApp: false,
			UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
		})
		mock.ExpectGet("settings:org:" + orgID).SetVal(string(cached))

		repo := &fakeSettingsRepository{}
		svc := settings.NewService(repo, rdb)

		resp, err := svc.GetOrganizationSettings(ctx, orgID)
		assert.NoError(t, err)
		assert.Equal(t, "Asia/Jakarta", resp.Timezone)
		assert.Equal(t, 0, repo.findOrgCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and populates cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		existing := &settings.OrganizationSettings{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(orgID),
			Timezone:       "Asia/Jakarta",
			Locale:         "id",
			NotifyEmail:    true,
			NotifyInApp:    true,
		}
		repo := &fakeSettingsRepository{
			findOrgFn: func(ctx context.Context, organizationID string) (*settings.OrganizationSettings, error) {
				return existing, nil
			},
		}

		mock.ExpectGet("settings:org:" + orgID).RedisNil()
		mock.Regexp().ExpectSet("settings:org:"+orgID, `.*`, 30*time.Minute).SetVal("OK")

		svc := settings.NewService(repo, rdb)
		resp, err := svc.GetOrganizationSettings(ctx, orgID)
		assert.NoError(t, err)
		assert.Equal(t, "Asia/Jakarta", resp.Timezone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost concurrent create re-reads the winner", func(t *testing.T) {
		winner := &settings.OrganizationSettings{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(orgID),
			Timezone:       "Europe/Berlin",
			Locale:         "de",
		}
		repo := &fakeSettingsRepository{
			createOrgFn: func(ctx context.Context, os *settings.OrganizationSettings) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		repo.findOrgFn = func(ctx context.Context, organizationID string) (*settings.OrganizationSettings, error) {
			if repo.findOrgCalls == 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return winner, nil
		}
		svc := settings.NewService(repo, nil)

		resp, err := svc.GetOrganizationSettings(ctx, orgID)
		assert.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", resp.Timezone)
	})
}

func TestSettingsService_UpdateOrganizationSettings(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("forbidden for manager", func(t *testing.T) {
		svc := settings.NewService(&fakeSettingsRepository{}, nil)

		actor := identity.Principal{UserID: "user-1", OrganizationID: orgID, Role: identity.RoleManager}
		_, err := svc.UpdateOrganizationSettings(ctx, actor, settings.UpdateOrganizationSettingsRequest{Timezone: "UTC"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("admin updates and invalidates cache", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		existing := &settings.OrganizationSettings{
			ID:             uuid.New(),
			OrganizationID: uuid.MustParse(orgID),
			Timezone:       "UTC",
			Locale:         "en",
			NotifyEmail:    true,
			NotifyInApp:    true,
		}
		repo := &fakeSettingsRepository{
			findOrgFn: func(ctx context.Context, organizationID string) (*settings.OrganizationSettings, error) {
				return existing, nil
			},
		}
		mock.ExpectDel("settings:org:" + orgID).SetVal(1)

		svc := settings.NewService(repo, rdb)

		off := false
		actor := identity.Principal{UserID: "admin-1", OrganizationID: orgID, Role: identity.RoleAdmin}
		resp, err := svc.UpdateOrganizationSettings(ctx, actor, settings.UpdateOrganizationSettingsRequest{
			Timezone:    "Asia/Jakarta",
			NotifyInApp: &off,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Asia/Jakarta", resp.Timezone)
		assert.False(t, resp.NotifyInApp)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettingsService_UserSettings(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New().String()

	t.Run("first read creates defaults", func(t *testing.T) {
		repo := &fakeSettingsRepository{}
		svc := settings.NewService(repo, nil)

		resp, err := svc.GetUserSettings(ctx, orgID, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, "system", resp.Theme)
		assert.Equal(t, "en", resp.Language)
		assert.Equal(t, "comfortable", resp.Density)
		assert.Len(t, repo.createdUser, 1)
		assert.Equal(t, "user-1", repo.createdUser[0].UserID)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		existing := &settings.UserSettings{
			ID:       uuid.New(),
			UserID:   "user-1",
			Theme:    "system",
			Language: "en",
			Density:  "comfortable",
		}
		repo := &fakeSettingsRepository{
			findUserFn: func(ctx context.Context, organizationID, userID string) (*settings.UserSettings, error) {
				return existing, nil
			},
		}
		svc := settings.NewService(repo, nil)

		resp, err := svc.UpdateUserSettings(ctx, orgID, "user-1", settings.UpdateUserSettingsRequest{Theme: "dark"})
		assert.NoError(t, err)
		assert.Equal(t, "dark", resp.Theme)
		assert.Equal(t, "en", resp.Language)
		assert.Equal(t, "comfortable", resp.Density)
	})
}
