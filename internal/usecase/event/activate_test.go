package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/cache"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/models"
	"github.com/sistema-manobrista/valet-api/internal/testutil"
	uc "github.com/sistema-manobrista/valet-api/internal/usecase/event"
)

func activateFixture(t *testing.T) (*uc.Activate, *gorm.DB, models.Event, models.Event, models.User) {
	t.Helper()

	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "admin1", "admin")
	a := testutil.SeedEvent(t, db, "Casamento Silva", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	b := testutil.SeedEvent(t, db, "Jantar de Gala", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	activate := uc.NewActivate(db, cache.NewActiveEvent(nil), testutil.NewAuditDispatcher(db))
	return activate, db, a, b, user
}

func activeEvents(t *testing.T, db *gorm.DB) []models.Event {
	t.Helper()

	var evs []models.Event
	require.NoError(t, db.Where("is_active = ?", true).Find(&evs).Error)
	return evs
}

func TestActivate(t *testing.T) {
	activate, db, a, _, user := activateFixture(t)

	ev, err := activate.Execute(context.Background(), a.ID, user.ID)
	require.NoError(t, err)

	assert.True(t, ev.IsActive)

	active := activeEvents(t, db)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)
}

// Ativar B depois de A transfere o posto: nunca dois ativos ao mesmo tempo.
func TestActivateSwapsSingleActive(t *testing.T) {
	activate, db, a, b, user := activateFixture(t)
	ctx := context.Background()

	_, err := activate.Execute(ctx, a.ID, user.ID)
	require.NoError(t, err)

	_, err = activate.Execute(ctx, b.ID, user.ID)
	require.NoError(t, err)

	active := activeEvents(t, db)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)
}

// Alvo inexistente: rollback devolve o evento que estava ativo antes.
func TestActivateUnknownEventPreservesCurrent(t *testing.T) {
	activate, db, a, _, user := activateFixture(t)
	ctx := context.Background()

	_, err := activate.Execute(ctx, a.ID, user.ID)
	require.NoError(t, err)

	_, err = activate.Execute(ctx, 9999, user.ID)
	assert.True(t, httperr.IsBusiness(err, "event_not_found"))

	active := activeEvents(t, db)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)
}

func TestActivateIsIdempotentForSameEvent(t *testing.T) {
	activate, db, a, _, user := activateFixture(t)
	ctx := context.Background()

	_, err := activate.Execute(ctx, a.ID, user.ID)
	require.NoError(t, err)

	_, err = activate.Execute(ctx, a.ID, user.ID)
	require.NoError(t, err)

	active := activeEvents(t, db)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)
}
