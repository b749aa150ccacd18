package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	"github.com/sistema-manobrista/valet-api/internal/cache"
	domain "github.com/sistema-manobrista/valet-api/internal/domain/vehicle"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/httpresp"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	"github.com/sistema-manobrista/valet-api/internal/models"
	ucEvent "github.com/sistema-manobrista/valet-api/internal/usecase/event"
)

const dateLayout = "2006-01-02"

// ======================================================
// HANDLER
// ======================================================

type EventHandler struct {
	db         *gorm.DB
	cache      *cache.ActiveEvent
	activateUC *ucEvent.Activate
	vehicles   domain.Repository
	audit      *audit.Dispatcher
}

func NewEventHandler(
	db *gorm.DB,
	cache *cache.ActiveEvent,
	activateUC *ucEvent.Activate,
	vehicles domain.Repository,
	audit *audit.Dispatcher,
) *EventHandler {
	return &EventHandler{
		db:         db,
		cache:      cache,
		activateUC: activateUC,
		vehicles:   vehicles,
		audit:      audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateEventRequest struct {
	Name        string  `json:"nome_evento" binding:"required"`
	StartDate   string  `json:"data_evento" binding:"required"`
	EndDate     string  `json:"data_fim" binding:"required"`
	StartTime   string  `json:"hora_inicio" binding:"required"`
	EndTime     string  `json:"hora_fim" binding:"required"`
	Location    string  `json:"local_evento" binding:"required"`
	Description *string `json:"descricao"`
}

// ======================================================
// CRUD
// ======================================================

func (h *EventHandler) List(c *gin.Context) {
	var events []models.Event
	if err := h.db.
		Order("data_evento DESC, criado_em DESC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_list_events", "Erro interno do servidor.")
		return
	}

	httpresp.OK(c, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", "Todos os campos (exceto descrição) são obrigatórios.")
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data do evento inválida.")
		return
	}

	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data de término inválida.")
		return
	}

	if endDate.Before(startDate) {
		httperr.BadRequest(c, "invalid_date_range", "Data de término anterior à data do evento.")
		return
	}

	ev := models.Event{
		Name:        req.Name,
		StartDate:   startDate,
		EndDate:     endDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := h.db.Create(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "event_exists", "Já existe um evento com este nome nesta data.")
			return
		}
		httperr.Internal(c, "failed_to_create_event", "Erro interno do servidor ao criar o evento.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Evento criado com sucesso!",
		"eventoId": ev.ID,
	})
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ev models.Event
	if err := h.db.First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_event", "Erro interno do servidor.")
		return
	}

	if ev.IsActive {
		httperr.Conflict(c, "event_active",
			"Não é possível excluir um evento que está ativo. Desative-o primeiro.")
		return
	}

	// O ON DELETE CASCADE remove veículos e vínculos de manobristas.
	if err := h.db.Delete(&models.Event{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_event", "Erro interno do servidor.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "event_deleted",
		Entity:   "evento",
		EntityID: &ev.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Evento e todas as suas associações foram excluídos com sucesso!",
	})
}

// ======================================================
// ACTIVE EVENT
// ======================================================

func (h *EventHandler) Active(c *gin.Context) {
	if ev, ok := h.cache.Get(c.Request.Context()); ok {
		c.JSON(http.StatusOK, ev)
		return
	}

	var ev models.Event
	err := h.db.Where("is_active = ?", true).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.cache.Set(c.Request.Context(), nil)
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_active_event", "Erro interno do servidor.")
		return
	}

	h.cache.Set(c.Request.Context(), &ev)
	c.JSON(http.StatusOK, ev)
}

type activeEventStats struct {
	TotalVehicles    int64 `json:"totalVeiculos"`
	ParkedVehicles   int64 `json:"veiculosEstacionados"`
	DepartedVehicles int64 `json:"veiculosSaida"`
}

func (h *EventHandler) ActiveStats(c *gin.Context) {
	var ev models.Event
	err := h.db.Select("id").Where("is_active = ?", true).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, activeEventStats{})
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_active_event", "Erro interno do servidor.")
		return
	}

	var stats activeEventStats
	if err := h.db.Raw(`
        SELECT
            COUNT(*) AS total_vehicles,
            COALESCE(SUM(CASE WHEN status = 'estacionado' THEN 1 ELSE 0 END), 0) AS parked_vehicles,
            COALESCE(SUM(CASE WHEN status = 'saiu' THEN 1 ELSE 0 END), 0) AS departed_vehicles
        FROM veiculos
        WHERE evento_id = ?`, ev.ID).
		Scan(&stats).Error; err != nil {

		httperr.Internal(c, "failed_to_get_stats", "Erro interno do servidor.")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *EventHandler) Activate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ev, err := h.activateUC.Execute(c.Request.Context(), id, userID)
	if err != nil {
		if httperr.IsBusiness(err, "event_not_found") {
			httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_activate_event", "Erro interno do servidor.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Evento definido como ativo com sucesso!",
		"event":   ev,
	})
}

func (h *EventHandler) Deactivate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	res := h.db.Model(&models.Event{}).
		Where("is_active = ?", true).
		Update("is_active", false)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_deactivate_event", "Erro interno do servidor.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	if res.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nenhum evento ativo para desativar."})
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "event_deactivated",
		Entity: "evento",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Evento desativado com sucesso!"})
}

// ======================================================
// REPORT
// ======================================================

func (h *EventHandler) Report(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ev models.Event
	if err := h.db.First(&ev, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_event", "Erro interno do servidor.")
		return
	}

	rows, err := h.vehicles.ListByEvent(c.Request.Context(), domain.ListQuery{
		EventID: id,
		Order:   domain.OrderByEntryTime,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "Erro interno do servidor.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"evento":   ev,
		"veiculos": rows,
	})
}

// ======================================================
// ATTENDANTS
// ======================================================

type AddAttendantRequest struct {
	UserID uint `json:"usuario_id"`
}

func (h *EventHandler) ListAttendants(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var attendants []models.User
	if err := h.db.
		Select("usuarios.id", "usuarios.nome_usuario", "usuarios.cargo").
		Joins("JOIN evento_manobristas em ON usuarios.id = em.usuario_id").
		Where("em.evento_id = ?", id).
		Find(&attendants).Error; err != nil {

		httperr.Internal(c, "failed_to_list_attendants", "Erro interno do servidor.")
		return
	}

	httpresp.OK(c, attendants)
}

func (h *EventHandler) AddAttendant(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req AddAttendantRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		httperr.BadRequest(c, "missing_user_id", "ID do usuário é obrigatório.")
		return
	}

	link := models.EventAttendant{
		EventID: id,
		UserID:  req.UserID,
	}

	if err := h.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "attendant_exists", "Este manobrista já está no evento.")
			return
		}
		httperr.Internal(c, "failed_to_add_attendant", "Erro interno do servidor.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Manobrista adicionado ao evento com sucesso!"})
}

func (h *EventHandler) RemoveAttendant(c *gin.Context) {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	userID, err := parseIDParam(c, "usuarioId")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.
		Where("evento_id = ? AND usuario_id = ?", eventID, userID).
		Delete(&models.EventAttendant{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_remove_attendant", "Erro interno do servidor.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "attendant_not_found", "Associação não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Manobrista removido do evento com sucesso."})
}

// ======================================================
// PRODUCTIVITY RANKING
// ======================================================

type rankingRow struct {
	Username        string `gorm:"column:nome_usuario" json:"nome_usuario"`
	Role            string `gorm:"column:cargo" json:"cargo"`
	CheckIns        int    `gorm:"column:veiculos_entrada" json:"veiculos_entrada"`
	CheckOuts       int    `gorm:"column:veiculos_saida" json:"veiculos_saida"`
	TotalOperations int    `gorm:"column:total_manobras" json:"total_manobras"`
}

func (h *EventHandler) Ranking(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ranking []rankingRow
	if err := h.db.Raw(`
        SELECT
            u.nome_usuario,
            u.cargo,
            COALESCE(entradas.count, 0) AS veiculos_entrada,
            COALESCE(saidas.count, 0) AS veiculos_saida,
            (COALESCE(entradas.count, 0) + COALESCE(saidas.count, 0)) AS total_manobras
        FROM usuarios u
        LEFT JOIN (
            SELECT usuario_entrada_id AS id, COUNT(*) AS count
            FROM veiculos
            WHERE evento_id = ?
            GROUP BY usuario_entrada_id
        ) AS entradas ON u.id = entradas.id
        LEFT JOIN (
            SELECT usuario_saida_id AS id, COUNT(*) AS count
            FROM veiculos
            WHERE evento_id = ? AND usuario_saida_id IS NOT NULL
            GROUP BY usuario_saida_id
        ) AS saidas ON u.id = saidas.id
        INNER JOIN evento_manobristas em ON u.id = em.usuario_id AND em.evento_id = ?
        WHERE (entradas.count > 0 OR saidas.count > 0)
        ORDER BY total_manobras DESC, veiculos_entrada DESC`,
		id, id, id).
		Scan(&ranking).Error; err != nil {

		httperr.Internal(c, "failed_to_build_ranking", "Erro interno do servidor ao gerar o ranking.")
		return
	}

	httpresp.OK(c, ranking)
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
