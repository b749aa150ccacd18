package vehicle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/models"
	"github.com/sistema-manobrista/valet-api/internal/testutil"
	uc "github.com/sistema-manobrista/valet-api/internal/usecase/vehicle"
)

func bulkFixture(t *testing.T) (*uc.BulkImport, *gorm.DB, models.Event, models.User) {
	t.Helper()

	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "orientador1", "orientador")
	ev := testutil.SeedEvent(t, db, "Formatura", time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC))

	return uc.NewBulkImport(db, testutil.NewAuditDispatcher(db)), db, ev, user
}

func bulkRow(eventID uint, ticket, plate string) uc.BulkRowInput {
	return uc.BulkRowInput{
		EventID:  eventID,
		Ticket:   ticket,
		Model:    "Civic",
		Color:    "Preto",
		Plate:    plate,
		Location: "Setor A",
	}
}

// Sucesso parcial: linhas inválidas viram erros, as válidas são
// persistidas no mesmo commit.
func TestBulkImportPartialSuccess(t *testing.T) {
	bulk, db, ev, user := bulkFixture(t)

	bad1 := bulkRow(ev.ID, "104", "DDD4444")
	bad1.Model = ""
	bad2 := bulkRow(ev.ID, "", "EEE5555")

	inserts := []uc.BulkRowInput{
		bulkRow(ev.ID, "101", "AAA1111"),
		bulkRow(ev.ID, "102", "BBB2222"),
		bulkRow(ev.ID, "103", "CCC3333"),
		bad1,
		bad2,
	}

	results, err := bulk.Execute(context.Background(), user.ID, inserts, nil)
	require.NoError(t, err)

	assert.Len(t, results.Created, 3)
	assert.Empty(t, results.Updated)
	require.Len(t, results.Errors, 2)

	assert.Equal(t, "104", results.Errors[0].Ticket)
	assert.Equal(t, "Campos obrigatórios ausentes.", results.Errors[0].Message)
	assert.Equal(t, "N/A", results.Errors[1].Ticket)

	var count int64
	require.NoError(t, db.Model(&models.Vehicle{}).
		Where("evento_id = ?", ev.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count, "somente as linhas válidas persistem")
}

func TestBulkImportDuplicateTicketWithinBatch(t *testing.T) {
	bulk, _, ev, user := bulkFixture(t)

	inserts := []uc.BulkRowInput{
		bulkRow(ev.ID, "201", "AAA1111"),
		bulkRow(ev.ID, "201", "BBB2222"),
	}

	results, err := bulk.Execute(context.Background(), user.ID, inserts, nil)
	require.NoError(t, err)

	require.Len(t, results.Created, 1)
	require.Len(t, results.Errors, 1)
	assert.Equal(t, "Ticket já utilizado.", results.Errors[0].Message)
}

func TestBulkImportParkedPlateConflict(t *testing.T) {
	bulk, _, ev, user := bulkFixture(t)

	inserts := []uc.BulkRowInput{
		bulkRow(ev.ID, "301", "AAA1111"),
		bulkRow(ev.ID, "302", "aaa-1111"), // mesma placa após normalizar
	}

	results, err := bulk.Execute(context.Background(), user.ID, inserts, nil)
	require.NoError(t, err)

	require.Len(t, results.Created, 1)
	require.Len(t, results.Errors, 1)
	assert.Equal(t, "302", results.Errors[0].Ticket)
	assert.Equal(t, "Placa AAA1111 já estacionada.", results.Errors[0].Message)
}

func TestBulkImportUpdates(t *testing.T) {
	bulk, db, ev, user := bulkFixture(t)
	ctx := context.Background()

	seed, err := bulk.Execute(ctx, user.ID, []uc.BulkRowInput{
		bulkRow(ev.ID, "401", "AAA1111"),
	}, nil)
	require.NoError(t, err)
	require.Len(t, seed.Created, 1)

	upd := bulkRow(ev.ID, "401", "BBB2222")
	upd.ID = seed.Created[0].ID
	upd.Model = "Corolla"

	badUpd := bulkRow(ev.ID, "402", "CCC3333")
	// sem ID

	results, err := bulk.Execute(ctx, user.ID, nil, []uc.BulkRowInput{upd, badUpd})
	require.NoError(t, err)

	require.Len(t, results.Updated, 1)
	require.Len(t, results.Errors, 1)
	assert.Equal(t, "Campos obrigatórios ausentes para atualização.", results.Errors[0].Message)

	var v models.Vehicle
	require.NoError(t, db.First(&v, seed.Created[0].ID).Error)
	assert.Equal(t, "Corolla", v.Model)
	assert.Equal(t, "BBB2222", v.Plate)
}

func TestBulkImportEmptyBatch(t *testing.T) {
	bulk, _, _, user := bulkFixture(t)

	results, err := bulk.Execute(context.Background(), user.ID, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, results.Created)
	assert.Empty(t, results.Updated)
	assert.Empty(t, results.Errors)
}
