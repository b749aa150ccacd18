package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/analysis"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
)

type AnalysisHandler struct {
	db *gorm.DB
}

func NewAnalysisHandler(db *gorm.DB) *AnalysisHandler {
	return &AnalysisHandler{db: db}
}

type RecurrenceRequest struct {
	EventIDs []uint `json:"eventoIds"`
}

// Recurrence cruza os veículos dos eventos escolhidos e devolve as placas que
// apareceram em mais de um, ordenadas por frequência.
func (h *AnalysisHandler) Recurrence(c *gin.Context) {
	var req RecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.EventIDs) < 2 {
		httperr.BadRequest(c, "not_enough_events",
			"Pelo menos dois IDs de evento são necessários para a análise.")
		return
	}

	var rows []analysis.Sighting
	if err := h.db.
		Table("veiculos AS v").
		Select("v.placa, v.modelo, v.cor, e.nome_evento, e.data_evento").
		Joins("JOIN eventos e ON v.evento_id = e.id").
		Where("v.evento_id IN ?", req.EventIDs).
		Order("v.placa ASC, e.data_evento DESC").
		Scan(&rows).Error; err != nil {

		httperr.Internal(c, "analysis_failed",
			"Erro interno do servidor ao realizar a análise.")
		return
	}

	c.JSON(http.StatusOK, analysis.GroupRecurrences(rows))
}
