package vehicle

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	domain "github.com/sistema-manobrista/valet-api/internal/domain/vehicle"
	"github.com/sistema-manobrista/valet-api/internal/httperr"
	"github.com/sistema-manobrista/valet-api/internal/models"
	"github.com/sistema-manobrista/valet-api/internal/plates"
)

// ======================================================
// INPUT
// ======================================================

type CheckInInput struct {
	EventID  uint
	Ticket   string
	Model    string
	Color    string
	Plate    string
	Location string
	Notes    *string

	ByUserID uint
}

// ======================================================
// USE CASE
// ======================================================

type CheckIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckIn(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CheckIn {
	return &CheckIn{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CheckIn) Execute(
	ctx context.Context,
	in CheckInInput,
) (*models.Vehicle, error) {

	plate := plates.Normalize(in.Plate)

	if in.EventID == 0 ||
		strings.TrimSpace(in.Ticket) == "" ||
		strings.TrimSpace(in.Model) == "" ||
		strings.TrimSpace(in.Color) == "" ||
		plate == "" ||
		strings.TrimSpace(in.Location) == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if !plates.IsValid(plate) {
		return nil, httperr.ErrBusiness("invalid_plate")
	}

	exists, err := uc.repo.TicketExists(ctx, in.EventID, in.Ticket)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness("ticket_conflict")
	}

	parked, err := uc.repo.PlateParked(ctx, in.EventID, plate)
	if err != nil {
		return nil, err
	}
	if parked {
		return nil, httperr.ErrBusiness("plate_conflict")
	}

	v := &models.Vehicle{
		EventID:     in.EventID,
		Ticket:      in.Ticket,
		Model:       in.Model,
		Color:       in.Color,
		Plate:       plate,
		Location:    in.Location,
		Notes:       in.Notes,
		Status:      string(domain.InitialStatus()),
		EntryTime:   time.Now(),
		EntryUserID: in.ByUserID,
	}

	if err := uc.repo.Create(ctx, v); err != nil {
		// corrida entre pre-check e insert: um dos dois índices únicos decide.
		// Refaz a checagem de placa para saber qual foi violado.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if parked, perr := uc.repo.PlateParked(ctx, in.EventID, plate); perr == nil && parked {
				return nil, httperr.ErrBusiness("plate_conflict")
			}
			return nil, httperr.ErrBusiness("ticket_conflict")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ByUserID,
		Action:   "vehicle_checked_in",
		Entity:   "veiculo",
		EntityID: &v.ID,
	})

	return v, nil
}
