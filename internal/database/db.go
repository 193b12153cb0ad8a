package database

import (
	"log"

	"klinik-backend/internal/config"
	"klinik-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Doctor{},
		&models.Collection{},
		&models.Account{},
		&models.AccountMovement{},
		&models.DoctorAccountLink{},
		&models.Commission{},
		&models.CommissionCollection{},
		&models.CommissionExpense{},
		&models.CommissionAdjustment{},
		&models.InstallmentRate{},
		&models.ExpenseCategory{},
		&models.Staff{},
		&models.StaffSalary{},
		&models.SalaryPayment{},
		&models.StaffLeave{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	seedDefaultSettings()

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// seedDefaultSettings: Taksit oranı tablosu ve gider kategorileri boşsa
// varsayılanları ekler. Tek çekim %12 oranı (KDV %10 + POS %2) işletme
// tarafından ayarlar ekranında değiştirilebilir.
func seedDefaultSettings() {
	var count int64
	DB.Model(&models.InstallmentRate{}).Count(&count)
	if count == 0 {
		defaults := []models.InstallmentRate{
			{InstallmentCount: 1, DeductionRate: 12},
			{InstallmentCount: 2, DeductionRate: 15},
			{InstallmentCount: 3, DeductionRate: 18},
			{InstallmentCount: 4, DeductionRate: 20},
			{InstallmentCount: 5, DeductionRate: 22},
			{InstallmentCount: 6, DeductionRate: 25},
			{InstallmentCount: 7, DeductionRate: 27},
			{InstallmentCount: 8, DeductionRate: 29},
			{InstallmentCount: 9, DeductionRate: 31},
			{InstallmentCount: 10, DeductionRate: 33},
			{InstallmentCount: 11, DeductionRate: 35},
			{InstallmentCount: 12, DeductionRate: 37},
		}
		if err := DB.Create(&defaults).Error; err != nil {
			log.Printf("Varsayılan taksit oranları eklenemedi: %v", err)
		}
	}

	DB.Model(&models.ExpenseCategory{}).Count(&count)
	if count == 0 {
		defaults := []models.ExpenseCategory{
			{Name: "Malzeme"},
			{Name: "Protez"},
			{Name: "Beyazlatma"},
			{Name: "Diğer Giderler"},
		}
		if err := DB.Create(&defaults).Error; err != nil {
			log.Printf("Varsayılan gider kategorileri eklenemedi: %v", err)
		}
	}
}
