package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/config"
	"github.com/sistema-manobrista/valet-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Vehicle{},
		&models.EventAttendant{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Uma placa só pode estar estacionada uma vez por evento; depois que sai,
	// pode entrar de novo. AutoMigrate não expressa índice parcial.
	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_veiculos_placa_estacionada
        ON veiculos (evento_id, placa)
        WHERE status = 'estacionado'
    `).Error
}
