package vehicle

import (
	"context"
	"time"

	"github.com/sistema-manobrista/valet-api/internal/models"
)

// Ordenação das listagens: a tela de consulta ordena por número de ticket
// (numérico, não lexical); o relatório do evento ordena por hora de entrada.
// São dois comportamentos documentados, não um bug a unificar.
type Order string

const (
	OrderByTicket    Order = "ticket"
	OrderByEntryTime Order = "entrada"
)

type ListQuery struct {
	EventID uint
	Status  string
	Search  string
	Order   Order
}

// Row é a linha da listagem: o veículo mais os nomes de quem registrou
// entrada e saída.
type Row struct {
	ID       uint    `json:"id"`
	EventID  uint    `gorm:"column:evento_id" json:"evento_id"`
	Ticket   string  `gorm:"column:numero_ticket" json:"numero_ticket"`
	Model    string  `gorm:"column:modelo" json:"modelo"`
	Color    string  `gorm:"column:cor" json:"cor"`
	Plate    string  `gorm:"column:placa" json:"placa"`
	Location string  `gorm:"column:localizacao" json:"localizacao"`
	Notes    *string `gorm:"column:observacoes" json:"observacoes"`
	Status   string  `json:"status"`

	EntryTime   time.Time  `gorm:"column:hora_entrada" json:"hora_entrada"`
	EntryUserID uint       `gorm:"column:usuario_entrada_id" json:"usuario_entrada_id"`
	ExitTime    *time.Time `gorm:"column:hora_saida" json:"hora_saida"`
	ExitUserID  *uint      `gorm:"column:usuario_saida_id" json:"usuario_saida_id"`

	EntryUsername string  `gorm:"column:nome_usuario_entrada" json:"nome_usuario_entrada"`
	ExitUsername  *string `gorm:"column:nome_usuario_saida" json:"nome_usuario_saida"`
}

type Repository interface {
	// -------- Uniqueness checks --------
	TicketExists(
		ctx context.Context,
		eventID uint,
		ticket string,
	) (bool, error)

	PlateParked(
		ctx context.Context,
		eventID uint,
		plate string,
	) (bool, error)

	// -------- Ledger writes --------
	Create(
		ctx context.Context,
		v *models.Vehicle,
	) error

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Vehicle, error)

	Update(
		ctx context.Context,
		v *models.Vehicle,
	) error

	// -------- Listing --------
	ListByEvent(
		ctx context.Context,
		q ListQuery,
	) ([]Row, error)
}
