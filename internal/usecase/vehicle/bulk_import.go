package vehicle

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	domain "github.com/sistema-manobrista/valet-api/internal/domain/vehicle"
	"github.com/sistema-manobrista/valet-api/internal/models"
	"github.com/sistema-manobrista/valet-api/internal/plates"
)

// ======================================================
// INPUT / RESULT
// ======================================================

type BulkRowInput struct {
	ID       uint    `json:"id"`
	EventID  uint    `json:"evento_id"`
	Ticket   string  `json:"numero_ticket"`
	Model    string  `json:"modelo"`
	Color    string  `json:"cor"`
	Plate    string  `json:"placa"`
	Location string  `json:"localizacao"`
	Notes    *string `json:"observacoes"`
}

type BulkRowRef struct {
	ID     uint   `json:"id"`
	Ticket string `json:"numero_ticket"`
}

type BulkRowError struct {
	Ticket  string `json:"ticket"`
	Message string `json:"message"`
}

type BulkResult struct {
	Created []BulkRowRef   `json:"created"`
	Updated []BulkRowRef   `json:"updated"`
	Errors  []BulkRowError `json:"errors"`
}

// ======================================================
// USE CASE
// ======================================================

// BulkImport aplica inserts e updates linha a linha dentro de UMA transação.
// O contrato é sucesso parcial: linhas com erro viram entradas em Errors e não
// derrubam as demais; o commit final persiste o que deu certo. Não "corrigir"
// para tudo-ou-nada — o chamador reconcilia manualmente pelo relatório.
type BulkImport struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBulkImport(db *gorm.DB, audit *audit.Dispatcher) *BulkImport {
	return &BulkImport{
		db:    db,
		audit: audit,
	}
}

func (uc *BulkImport) Execute(
	ctx context.Context,
	byUserID uint,
	inserts []BulkRowInput,
	updates []BulkRowInput,
) (*BulkResult, error) {

	results := &BulkResult{
		Created: []BulkRowRef{},
		Updated: []BulkRowRef{},
		Errors:  []BulkRowError{},
	}

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, row := range inserts {
			uc.applyInsert(tx, byUserID, row, results)
		}

		for _, row := range updates {
			uc.applyUpdate(tx, row, results)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &byUserID,
		Action: "vehicles_bulk_imported",
		Entity: "veiculo",
		Metadata: map[string]int{
			"created": len(results.Created),
			"updated": len(results.Updated),
			"errors":  len(results.Errors),
		},
	})

	return results, nil
}

// ======================================================
// ROWS
// ======================================================

func (uc *BulkImport) applyInsert(
	tx *gorm.DB,
	byUserID uint,
	row BulkRowInput,
	results *BulkResult,
) {

	ticketRef := row.Ticket
	if ticketRef == "" {
		ticketRef = "N/A"
	}

	plate := plates.Normalize(row.Plate)

	if row.EventID == 0 ||
		strings.TrimSpace(row.Ticket) == "" ||
		strings.TrimSpace(row.Model) == "" ||
		strings.TrimSpace(row.Color) == "" ||
		plate == "" ||
		strings.TrimSpace(row.Location) == "" {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  ticketRef,
			Message: "Campos obrigatórios ausentes.",
		})
		return
	}

	if !plates.IsValid(plate) {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Placa deve ter 7 caracteres.",
		})
		return
	}

	var count int64
	if err := tx.Model(&models.Vehicle{}).
		Where("evento_id = ? AND numero_ticket = ?", row.EventID, row.Ticket).
		Count(&count).Error; err != nil {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Erro no DB: " + err.Error(),
		})
		return
	}
	if count > 0 {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Ticket já utilizado.",
		})
		return
	}

	if err := tx.Model(&models.Vehicle{}).
		Where(
			"evento_id = ? AND placa = ? AND status = ?",
			row.EventID, plate, string(domain.StatusParked),
		).
		Count(&count).Error; err != nil {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Erro no DB: " + err.Error(),
		})
		return
	}
	if count > 0 {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Placa " + plate + " já estacionada.",
		})
		return
	}

	v := models.Vehicle{
		EventID:     row.EventID,
		Ticket:      row.Ticket,
		Model:       row.Model,
		Color:       row.Color,
		Plate:       plate,
		Location:    row.Location,
		Notes:       row.Notes,
		Status:      string(domain.InitialStatus()),
		EntryTime:   time.Now(),
		EntryUserID: byUserID,
	}

	// savepoint por linha: o erro de um insert não envenena a transação
	// externa nem as linhas irmãs
	err := tx.Transaction(func(rowTx *gorm.DB) error {
		return rowTx.Create(&v).Error
	})
	if err != nil {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Erro no DB: " + err.Error(),
		})
		return
	}

	results.Created = append(results.Created, BulkRowRef{
		ID:     v.ID,
		Ticket: row.Ticket,
	})
}

func (uc *BulkImport) applyUpdate(
	tx *gorm.DB,
	row BulkRowInput,
	results *BulkResult,
) {

	ticketRef := row.Ticket
	if ticketRef == "" {
		ticketRef = "N/A"
	}

	plate := plates.Normalize(row.Plate)

	if row.ID == 0 ||
		row.EventID == 0 ||
		strings.TrimSpace(row.Ticket) == "" ||
		strings.TrimSpace(row.Model) == "" ||
		strings.TrimSpace(row.Color) == "" ||
		plate == "" ||
		strings.TrimSpace(row.Location) == "" {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  ticketRef,
			Message: "Campos obrigatórios ausentes para atualização.",
		})
		return
	}

	if !plates.IsValid(plate) {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Placa deve ter exatamente 7 caracteres para atualização.",
		})
		return
	}

	err := tx.Transaction(func(rowTx *gorm.DB) error {
		return rowTx.Model(&models.Vehicle{}).
			Where("id = ? AND evento_id = ?", row.ID, row.EventID).
			Updates(map[string]any{
				"modelo":      row.Model,
				"cor":         row.Color,
				"placa":       plate,
				"localizacao": row.Location,
				"observacoes": row.Notes,
			}).Error
	})
	if err != nil {
		results.Errors = append(results.Errors, BulkRowError{
			Ticket:  row.Ticket,
			Message: "Erro ao atualizar: " + err.Error(),
		})
		return
	}

	results.Updated = append(results.Updated, BulkRowRef{
		ID:     row.ID,
		Ticket: row.Ticket,
	})
}
