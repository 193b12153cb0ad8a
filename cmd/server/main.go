package main

import (
	"log"
	"strings"

	"klinik-backend/internal/admin"
	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/collection"
	"klinik-backend/internal/commission"
	"klinik-backend/internal/config"
	"klinik-backend/internal/dashboard"
	"klinik-backend/internal/database"
	"klinik-backend/internal/ledger"
	"klinik-backend/internal/models"
	"klinik-backend/internal/staff"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Şube yönetimi
	adminRoutes.Post("/branches", admin.CreateBranchHandler())
	adminRoutes.Get("/branches", admin.ListBranchesHandler())
	adminRoutes.Get("/branches/:id", admin.GetBranchHandler())
	adminRoutes.Put("/branches/:id", admin.UpdateBranchHandler())
	adminRoutes.Delete("/branches/:id", admin.DeleteBranchHandler())
	adminRoutes.Post("/branches/:id/admin", admin.CreateBranchAdminHandler())
	adminRoutes.Get("/branches/:id/admins", admin.ListBranchAdminsHandler())

	// Hekim yönetimi
	protected.Post("/doctors", admin.CreateDoctorHandler())
	protected.Get("/doctors", admin.ListDoctorsHandler())
	protected.Put("/doctors/:id", admin.UpdateDoctorHandler())
	protected.Delete("/doctors/:id", admin.DeleteDoctorHandler())
	protected.Get("/doctors/:id/account", ledger.FindDoctorAccountHandler())

	// Tahsilatlar
	protected.Post("/collections", collection.CreateCollectionHandler())
	protected.Get("/collections", collection.ListCollectionsHandler())
	protected.Delete("/collections/:id", collection.DeleteCollectionHandler())
	protected.Get("/collections/summary/monthly", collection.MonthlySummaryHandler())

	// Prim hesaplama akışı
	protected.Post("/commissions/collections", commission.LoadCollectionsHandler())
	protected.Post("/commissions/check-overlap", commission.CheckOverlapHandler())
	protected.Post("/commissions/compute", commission.ComputeHandler())
	protected.Post("/commissions/expenses/parse-bulk", commission.ParseBulkExpensesHandler())
	protected.Get("/commissions/settings", commission.GetSettingsHandler())
	protected.Put("/commissions/settings", auth.RequireRole(models.RoleSuperAdmin), commission.UpdateSettingsHandler())
	protected.Post("/commissions", commission.SaveCommissionHandler())
	protected.Get("/commissions", commission.ListCommissionsHandler())
	protected.Get("/commissions/:id", commission.GetCommissionHandler())
	protected.Delete("/commissions/:id", commission.DeleteCommissionHandler())
	protected.Get("/commissions/:id/report", commission.CommissionReportHandler())
	protected.Get("/commissions/:id/report/excel", commission.CommissionReportExcelHandler())

	// Cari hesaplar
	protected.Post("/accounts", ledger.CreateAccountHandler())
	protected.Get("/accounts", ledger.ListAccountsHandler())
	protected.Put("/accounts/:id", ledger.UpdateAccountHandler())
	protected.Delete("/accounts/:id", ledger.DeleteAccountHandler())
	protected.Post("/accounts/:id/movements", ledger.CreateMovementHandler())
	protected.Get("/accounts/:id/movements", ledger.AccountStatementHandler())
	protected.Put("/movements/:id", ledger.UpdateMovementHandler())
	protected.Delete("/movements/:id", ledger.DeleteMovementHandler())

	// Hekim cari eşleştirmeleri
	protected.Post("/doctor-accounts", ledger.CreateMatchingHandler())
	protected.Get("/doctor-accounts", ledger.ListMatchingsHandler())
	protected.Delete("/doctor-accounts/:id", ledger.DeleteMatchingHandler())

	// Personel
	protected.Post("/staff", staff.CreateStaffHandler())
	protected.Get("/staff", staff.ListStaffHandler())
	protected.Put("/staff/:id", staff.UpdateStaffHandler())
	protected.Put("/staff/:id/salary", staff.DefineSalaryHandler())
	protected.Get("/staff/:id/salary", staff.GetSalaryHandler())
	protected.Post("/staff/:id/salary/compute", staff.ComputeSalaryHandler())
	protected.Post("/staff/:id/salary/payments", staff.SaveSalaryPaymentHandler())
	protected.Get("/staff/:id/salary/payments", staff.ListSalaryPaymentsHandler())
	protected.Post("/staff/:id/leaves", staff.CreateLeaveHandler())
	protected.Get("/staff/:id/leaves", staff.ListLeavesHandler())
	protected.Get("/staff/:id/leaves/status", staff.LeaveStatusHandler())
	protected.Delete("/leaves/:id", staff.DeleteLeaveHandler())

	// Dashboard
	protected.Get("/dashboard/commission-chart", dashboard.CommissionChartHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
