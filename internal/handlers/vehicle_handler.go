package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/sistema-manobrista/valet-api/internal/domain/vehicle"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/httpresp"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	ucVehicle "github.com/sistema-manobrista/valet-api/internal/usecase/vehicle"
)

// ======================================================
// HANDLER
// ======================================================

type VehicleHandler struct {
	checkInUC  *ucVehicle.CheckIn
	checkOutUC *ucVehicle.CheckOut
	bulkUC     *ucVehicle.BulkImport
	repo       domain.Repository
}

func NewVehicleHandler(
	checkInUC *ucVehicle.CheckIn,
	checkOutUC *ucVehicle.CheckOut,
	bulkUC *ucVehicle.BulkImport,
	repo domain.Repository,
) *VehicleHandler {
	return &VehicleHandler{
		checkInUC:  checkInUC,
		checkOutUC: checkOutUC,
		bulkUC:     bulkUC,
		repo:       repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckInRequest struct {
	EventID  uint    `json:"evento_id"`
	Ticket   string  `json:"numero_ticket"`
	Model    string  `json:"modelo"`
	Color    string  `json:"cor"`
	Plate    string  `json:"placa"`
	Location string  `json:"localizacao"`
	Notes    *string `json:"observacoes"`
}

type BulkImportRequest struct {
	Inserts []ucVehicle.BulkRowInput `json:"inserts"`
	Updates []ucVehicle.BulkRowInput `json:"updates"`
}

// ======================================================
// CHECK-IN
// ======================================================

func (h *VehicleHandler) CheckIn(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	v, err := h.checkInUC.Execute(c.Request.Context(), ucVehicle.CheckInInput{
		EventID:  req.EventID,
		Ticket:   req.Ticket,
		Model:    req.Model,
		Color:    req.Color,
		Plate:    req.Plate,
		Location: req.Location,
		Notes:    req.Notes,
		ByUserID: userID,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "missing_fields"):
			httperr.BadRequest(c, "missing_fields",
				"Todos os campos (exceto observações) são obrigatórios.")
		case httperr.IsBusiness(err, "invalid_plate"):
			httperr.BadRequest(c, "invalid_plate",
				"Placa deve ter exatamente 7 caracteres.")
		case httperr.IsBusiness(err, "ticket_conflict"):
			httperr.Conflict(c, "ticket_conflict",
				"Número de ticket já utilizado para este evento.")
		case httperr.IsBusiness(err, "plate_conflict"):
			httperr.Conflict(c, "plate_conflict",
				"A placa já está registrada e estacionada neste evento.")
		default:
			httperr.Internal(c, "failed_to_check_in", "Erro interno do servidor.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Veículo registrado com sucesso!",
		"veiculoId": v.ID,
	})
}

// ======================================================
// CHECK-OUT
// ======================================================

func (h *VehicleHandler) CheckOut(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if _, err := h.checkOutUC.Execute(c.Request.Context(), id, userID); err != nil {
		switch {
		case httperr.IsBusiness(err, "vehicle_not_found"):
			httperr.NotFound(c, "vehicle_not_found", "Veículo não encontrado.")
		case httperr.IsBusiness(err, "already_checked_out"):
			httperr.Conflict(c, "already_checked_out",
				"Este veículo já teve sua saída registrada.")
		default:
			httperr.Internal(c, "failed_to_check_out", "Erro interno do servidor.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saída de veículo registrada com sucesso!"})
}

// ======================================================
// BULK IMPORT
// ======================================================

func (h *VehicleHandler) BulkImport(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	results, err := h.bulkUC.Execute(c.Request.Context(), userID, req.Inserts, req.Updates)
	if err != nil {
		httperr.Internal(c, "bulk_import_failed", "Erro interno do servidor.")
		return
	}

	// Sucesso parcial é resposta 200: o chamador inspeciona results.errors.
	c.JSON(http.StatusOK, gin.H{
		"message": "Operação em massa concluída.",
		"results": results,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *VehicleHandler) ListByEvent(c *gin.Context) {
	eventID, err := parseIDParam(c, "idEvento")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	order := domain.OrderByTicket
	if c.Query("order") == string(domain.OrderByEntryTime) {
		order = domain.OrderByEntryTime
	}

	rows, err := h.repo.ListByEvent(c.Request.Context(), domain.ListQuery{
		EventID: eventID,
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Order:   order,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Erro interno do servidor.")
		return
	}

	httpresp.OK(c, rows)
}
