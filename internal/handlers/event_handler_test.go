package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/cache"
	"github.com/sistema-manobrista/valet-api/internal/handlers"
	"github.com/sistema-manobrista/valet-api/internal/infra/repository"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	"github.com/sistema-manobrista/valet-api/internal/models"
	"github.com/sistema-manobrista/valet-api/internal/testutil"
	ucEvent "github.com/sistema-manobrista/valet-api/internal/usecase/event"
)

func eventRouter(t *testing.T) (*gin.Engine, *gorm.DB, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	admin := testutil.SeedUser(t, db, "admin1", "admin")

	dispatcher := testutil.NewAuditDispatcher(db)
	activeCache := cache.NewActiveEvent(nil)
	activateUC := ucEvent.NewActivate(db, activeCache, dispatcher)
	repo := repository.NewVehicleGormRepository(db)

	h := handlers.NewEventHandler(db, activeCache, activateUC, repo, dispatcher)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, admin.ID)
		c.Set(middleware.ContextUserRole, "admin")
	})
	r.DELETE("/api/eventos/:id", h.Delete)

	return r, db, admin
}

func doDelete(r *gin.Engine, eventID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete,
		"/api/eventos/"+strconv.FormatUint(uint64(eventID), 10), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Excluir o evento ativo é recusado com 409 e nada é removido, nem o
// evento nem os veículos já registrados nele.
func TestDeleteActiveEventIsRejected(t *testing.T) {
	r, db, admin := eventRouter(t)

	ev := testutil.SeedEvent(t, db, "Jantar de Gala", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Model(&models.Event{}).
		Where("id = ?", ev.ID).
		Update("is_active", true).Error)

	v := models.Vehicle{
		EventID:     ev.ID,
		Ticket:      "1",
		Model:       "Civic",
		Color:       "Preto",
		Plate:       "AAA1111",
		Location:    "Setor A",
		Status:      "estacionado",
		EntryTime:   time.Now(),
		EntryUserID: admin.ID,
	}
	require.NoError(t, db.Create(&v).Error)

	w := doDelete(r, ev.ID)
	assert.Equal(t, http.StatusConflict, w.Code)

	var stored models.Event
	require.NoError(t, db.First(&stored, ev.ID).Error)
	assert.True(t, stored.IsActive)

	var vehicles int64
	require.NoError(t, db.Model(&models.Vehicle{}).
		Where("evento_id = ?", ev.ID).Count(&vehicles).Error)
	assert.EqualValues(t, 1, vehicles)
}

func TestDeleteInactiveEvent(t *testing.T) {
	r, db, _ := eventRouter(t)

	ev := testutil.SeedEvent(t, db, "Casamento Silva", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	w := doDelete(r, ev.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	err := db.First(&models.Event{}, ev.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteUnknownEvent(t *testing.T) {
	r, _, _ := eventRouter(t)

	w := doDelete(r, 9999)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
