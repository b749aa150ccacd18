package vehicle

import (
	"time"

	"github.com/sistema-manobrista/valet-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func CheckOut(v *models.Vehicle, byUserID uint, now time.Time) error {
	if err := CanCheckOut(Status(v.Status)); err != nil {
		return err
	}

	v.Status = string(StatusDeparted)
	v.ExitTime = &now
	v.ExitUserID = &byUserID
	return nil
}
