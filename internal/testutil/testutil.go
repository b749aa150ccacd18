package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	dbpkg "github.com/sistema-manobrista/valet-api/internal/db"
	"github.com/sistema-manobrista/valet-api/internal/models"
)

// NewTestDB abre um sqlite em memória com o mesmo schema da aplicação.
// MaxOpenConns(1) porque cada conexão de ":memory:" seria um banco diferente.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	return db
}

func NewAuditDispatcher(db *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(db), zap.NewNop())
}

func SeedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func SeedEvent(t *testing.T, db *gorm.DB, name string, date time.Time) models.Event {
	t.Helper()

	ev := models.Event{
		Name:      name,
		StartDate: date,
		EndDate:   date,
		StartTime: "18:00",
		EndTime:   "23:00",
		Location:  "Salão Central",
	}
	require.NoError(t, db.Create(&ev).Error)
	return ev
}
