package vehicle

import "github.com/sistema-manobrista/valet-api/internal/httperr"

// ===============================
// Vehicle Status
// ===============================

type Status string

const (
	StatusParked   Status = "estacionado"
	StatusDeparted Status = "saiu"
)

// CanCheckOut: só veículo estacionado registra saída; a saída nunca é desfeita.
func CanCheckOut(current Status) error {
	if current != StatusParked {
		return httperr.ErrBusiness("already_checked_out")
	}
	return nil
}

func InitialStatus() Status {
	return StatusParked
}
