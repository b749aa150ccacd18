package event

import (
	"context"

	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	"github.com/sistema-manobrista/valet-api/internal/cache"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/models"
)

// Activate troca o evento ativo de forma atômica: limpa todos os is_active e
// marca o alvo dentro de uma transação. Se o alvo não existe, o rollback
// devolve o evento que estava ativo antes. Ativações concorrentes serializam
// pela transação do banco — nunca fica zero nem dois ativos.
type Activate struct {
	db    *gorm.DB
	cache *cache.ActiveEvent
	audit *audit.Dispatcher
}

func NewActivate(
	db *gorm.DB,
	cache *cache.ActiveEvent,
	audit *audit.Dispatcher,
) *Activate {
	return &Activate{
		db:    db,
		cache: cache,
		audit: audit,
	}
}

func (uc *Activate) Execute(
	ctx context.Context,
	eventID uint,
	byUserID uint,
) (*models.Event, error) {

	var activated models.Event

	err := uc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Model(&models.Event{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Event{}).
			Where("id = ?", eventID).
			Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("event_not_found")
		}

		return tx.First(&activated, eventID).Error
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   &byUserID,
		Action:   "event_activated",
		Entity:   "evento",
		EntityID: &activated.ID,
	})

	return &activated, nil
}
