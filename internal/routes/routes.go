package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sistema-manobrista/valet-api/internal/audit"
	"github.com/sistema-manobrista/valet-api/internal/authz"
	"github.com/sistema-manobrista/valet-api/internal/cache"
	"github.com/sistema-manobrista/valet-api/internal/config"
	"github.com/sistema-manobrista/valet-api/internal/handlers"
	infraRepo "github.com/sistema-manobrista/valet-api/internal/infra/repository"
	"github.com/sistema-manobrista/valet-api/internal/middleware"
	ucEvent "github.com/sistema-manobrista/valet-api/internal/usecase/event"
	ucVehicle "github.com/sistema-manobrista/valet-api/internal/usecase/vehicle"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	vehicleRepo := infraRepo.NewVehicleGormRepository(db)
	activeEventCache := cache.NewActiveEvent(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ======================================================
	// USE CASES
	// ======================================================
	checkInUC := ucVehicle.NewCheckIn(vehicleRepo, auditDispatcher)
	checkOutUC := ucVehicle.NewCheckOut(vehicleRepo, auditDispatcher)
	bulkImportUC := ucVehicle.NewBulkImport(db, auditDispatcher)

	activateEventUC := ucEvent.NewActivate(db, activeEventCache, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	eventHandler := handlers.NewEventHandler(db, activeEventCache, activateEventUC, vehicleRepo, auditDispatcher)
	vehicleHandler := handlers.NewVehicleHandler(checkInUC, checkOutUC, bulkImportUC, vehicleRepo)
	analysisHandler := handlers.NewAnalysisHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// USUÁRIOS (admin)
			// ------------------------------
			secured.POST("/auth/register",
				middleware.Authorize(authz.OpUserRegister), authHandler.Register)
			secured.GET("/auth",
				middleware.Authorize(authz.OpUserList), authHandler.List)
			secured.PUT("/auth/:id/deactivate",
				middleware.Authorize(authz.OpUserDeactivate), authHandler.Deactivate)
			secured.PUT("/auth/:id/reactivate",
				middleware.Authorize(authz.OpUserReactivate), authHandler.Reactivate)
			secured.GET("/auth/audit-logs",
				middleware.Authorize(authz.OpAuditLogsList), auditLogsHandler.List)

			// ------------------------------
			// EVENTOS
			// ------------------------------
			secured.GET("/eventos",
				middleware.Authorize(authz.OpEventList), eventHandler.List)
			secured.POST("/eventos",
				middleware.Authorize(authz.OpEventCreate), eventHandler.Create)
			secured.GET("/eventos/ativo", eventHandler.Active)
			secured.GET("/eventos/ativo/stats",
				middleware.Authorize(authz.OpEventStats), eventHandler.ActiveStats)
			secured.PUT("/eventos/:id/ativar",
				middleware.Authorize(authz.OpEventActivate), eventHandler.Activate)
			secured.PUT("/eventos/desativar",
				middleware.Authorize(authz.OpEventDeactivate), eventHandler.Deactivate)
			secured.DELETE("/eventos/:id",
				middleware.Authorize(authz.OpEventDelete), eventHandler.Delete)
			secured.GET("/eventos/:id/relatorio",
				middleware.Authorize(authz.OpEventReport), eventHandler.Report)

			secured.GET("/eventos/:id/manobristas",
				middleware.Authorize(authz.OpEventAttendants), eventHandler.ListAttendants)
			secured.POST("/eventos/:id/manobristas",
				middleware.Authorize(authz.OpEventAttendants), eventHandler.AddAttendant)
			secured.DELETE("/eventos/:id/manobristas/:usuarioId",
				middleware.Authorize(authz.OpEventAttendants), eventHandler.RemoveAttendant)
			secured.GET("/eventos/:id/ranking",
				middleware.Authorize(authz.OpEventRanking), eventHandler.Ranking)

			// ------------------------------
			// VEÍCULOS
			// ------------------------------
			secured.POST("/veiculos/entrada",
				middleware.Authorize(authz.OpVehicleCheckIn), vehicleHandler.CheckIn)
			secured.POST("/veiculos/massa",
				middleware.Authorize(authz.OpVehicleBulkImport), vehicleHandler.BulkImport)
			secured.PUT("/veiculos/saida/:id",
				middleware.Authorize(authz.OpVehicleCheckOut), vehicleHandler.CheckOut)
			secured.GET("/veiculos/evento/:idEvento",
				middleware.Authorize(authz.OpVehicleList), vehicleHandler.ListByEvent)

			// ------------------------------
			// ANÁLISE
			// ------------------------------
			secured.POST("/analise/frequencia",
				middleware.Authorize(authz.OpAnalysisRecurrence), analysisHandler.Recurrence)
		}
	}
}
