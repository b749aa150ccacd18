package vehicle

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	domain "github.com/sistema-manobrista/valet-api/internal/domain/vehicle"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/models"
)

type CheckOut struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckOut(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CheckOut {
	return &CheckOut{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CheckOut) Execute(
	ctx context.Context,
	vehicleID uint,
	byUserID uint,
) (*models.Vehicle, error) {

	v, err := uc.repo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("vehicle_not_found")
		}
		return nil, err
	}

	if err := domain.CheckOut(v, byUserID, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &byUserID,
		Action:   "vehicle_checked_out",
		Entity:   "veiculo",
		EntityID: &v.ID,
	})

	return v, nil
}
