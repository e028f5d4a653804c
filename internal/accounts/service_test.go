package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
)

func setupAccountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  role TEXT NOT NULL,
  wallet_balance NUMERIC NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	profiles := `
CREATE TABLE IF NOT EXISTS provider_profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  bio TEXT,
  services TEXT,
  hourly_rate NUMERIC NOT NULL DEFAULT 0,
  verification_status TEXT NOT NULL DEFAULT 'pending',
  verification_expiry DATETIME,
  rating_average NUMERIC NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  completed_jobs INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(profiles).Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role enums.UserRole, active bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:            uuid.New(),
		Name:          "Account Test",
		Phone:         uuid.NewString(),
		Role:          role,
		WalletBalance: decimal.Zero,
		IsActive:      active,
	}
	require.NoError(t, db.Create(user).Error)
	// GORM drops the zero-value IsActive on insert because the column has
	// default:true, so persist the requested flag explicitly.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).UpdateColumn("is_active", active).Error)
	return user
}

func seedProfile(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.ProviderProfile {
	t.Helper()

	profile := &models.ProviderProfile{
		ID:     uuid.New(),
		UserID: userID,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func TestService_GetUser(t *testing.T) {
	db := setupAccountsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	user := seedUser(t, db, enums.UserRoleCustomer, true)

	got, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestService_GetUserDeactivated(t *testing.T) {
	db := setupAccountsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	user := seedUser(t, db, enums.UserRoleCustomer, false)

	_, err = svc.GetUser(context.Background(), user.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))
}

func TestService_RequireRole(t *testing.T) {
	db := setupAccountsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	customer := seedUser(t, db, enums.UserRoleCustomer, true)

	_, err = svc.RequireRole(context.Background(), customer.ID, enums.UserRoleCustomer)
	require.NoError(t, err)

	_, err = svc.RequireRole(context.Background(), customer.ID, enums.UserRoleProvider)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))
}

func TestService_RecordCompletedJob(t *testing.T) {
	db := setupAccountsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	provider := seedUser(t, db, enums.UserRoleProvider, true)
	seedProfile(t, db, provider.ID)

	require.NoError(t, svc.RecordCompletedJobTx(context.Background(), nil, provider.ID))
	require.NoError(t, svc.RecordCompletedJobTx(context.Background(), nil, provider.ID))

	profile, err := svc.ProviderProfile(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.CompletedJobs)

	err = svc.RecordCompletedJobTx(context.Background(), nil, uuid.New())
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
