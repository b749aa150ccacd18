package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/sistema-manobrista/valet-api/internal/domain/vehicle"
	"github.com/sistema-manobrista/valet-api/internal/models"
)

type VehicleGormRepository struct {
	db *gorm.DB
}

func NewVehicleGormRepository(db *gorm.DB) *VehicleGormRepository {
	return &VehicleGormRepository{db: db}
}

// --------------------------------------------------
// Uniqueness checks
// --------------------------------------------------

func (r *VehicleGormRepository) TicketExists(
	ctx context.Context,
	eventID uint,
	ticket string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where("evento_id = ? AND numero_ticket = ?", eventID, ticket).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *VehicleGormRepository) PlateParked(
	ctx context.Context,
	eventID uint,
	plate string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where(
			"evento_id = ? AND placa = ? AND status = ?",
			eventID, plate, string(domain.StatusParked),
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Ledger writes
// --------------------------------------------------

func (r *VehicleGormRepository) Create(
	ctx context.Context,
	v *models.Vehicle,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Vehicle, error) {

	var v models.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleGormRepository) Update(
	ctx context.Context,
	v *models.Vehicle,
) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *VehicleGormRepository) ListByEvent(
	ctx context.Context,
	q domain.ListQuery,
) ([]domain.Row, error) {

	query := r.db.WithContext(ctx).
		Table("veiculos AS v").
		Select(`v.*,
            u_entrada.nome_usuario AS nome_usuario_entrada,
            u_saida.nome_usuario AS nome_usuario_saida`).
		Joins("JOIN usuarios u_entrada ON v.usuario_entrada_id = u_entrada.id").
		Joins("LEFT JOIN usuarios u_saida ON v.usuario_saida_id = u_saida.id").
		Where("v.evento_id = ?", q.EventID)

	if q.Status != "" {
		query = query.Where("v.status = ?", q.Status)
	}

	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where(
			"v.placa LIKE ? OR v.numero_ticket LIKE ? OR v.modelo LIKE ? OR v.cor LIKE ?",
			like, like, like, like,
		)
	}

	switch q.Order {
	case domain.OrderByEntryTime:
		query = query.Order("v.hora_entrada ASC")
	default:
		// tickets são atribuídos em sequência numérica; "10" vem depois de "9"
		query = query.Order("CAST(v.numero_ticket AS INTEGER) ASC")
	}

	var rows []domain.Row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*VehicleGormRepository)(nil)
