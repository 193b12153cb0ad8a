package commission

import (
	"fmt"
	"sort"
	"strings"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InstallmentRateItem struct {
	InstallmentCount int     `json:"installment_count"`
	DeductionRate    float64 `json:"deduction_rate"`
}

type SettingsResponse struct {
	InstallmentRates  []InstallmentRateItem `json:"installment_rates"`
	ExpenseCategories []string              `json:"expense_categories"`
}

type UpdateSettingsRequest struct {
	InstallmentRates  []InstallmentRateItem `json:"installment_rates"`
	ExpenseCategories []string              `json:"expense_categories"`
}

// LoadInstallmentTable: Taksit tablosunu veritabanından okur.
func LoadInstallmentTable(db *gorm.DB) (InstallmentTable, error) {
	var rows []models.InstallmentRate
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	table := make(InstallmentTable, len(rows))
	for _, r := range rows {
		table[r.InstallmentCount] = r.DeductionRate
	}
	return table, nil
}

// -------------------------------------------------
// GET /api/commissions/settings
// -------------------------------------------------
func GetSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rates []models.InstallmentRate
		if err := database.DB.Order("installment_count asc").Find(&rates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taksit tablosu okunamadı")
		}

		var cats []models.ExpenseCategory
		if err := database.DB.Order("id asc").Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider kategorileri okunamadı")
		}

		resp := SettingsResponse{
			InstallmentRates:  make([]InstallmentRateItem, 0, len(rates)),
			ExpenseCategories: make([]string, 0, len(cats)),
		}
		for _, r := range rates {
			resp.InstallmentRates = append(resp.InstallmentRates, InstallmentRateItem{
				InstallmentCount: r.InstallmentCount,
				DeductionRate:    r.DeductionRate,
			})
		}
		for _, cat := range cats {
			resp.ExpenseCategories = append(resp.ExpenseCategories, cat.Name)
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/commissions/settings
// Tablo ve kategori listesi komple değiştirilir; eski satırlar silinip
// yenileri yazılır. Sadece super_admin erişir (route seviyesinde).
// -------------------------------------------------
func UpdateSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateSettingsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if len(body.InstallmentRates) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir taksit oranı girilmeli")
		}
		seen := map[int]bool{}
		for _, item := range body.InstallmentRates {
			if item.InstallmentCount < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Taksit sayısı 1'den küçük olamaz")
			}
			if item.DeductionRate < 0 || item.DeductionRate > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "Kesinti oranı 0-100 arasında olmalı")
			}
			if seen[item.InstallmentCount] {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Taksit sayısı tekrarlı: %d", item.InstallmentCount))
			}
			seen[item.InstallmentCount] = true
		}

		cats := make([]string, 0, len(body.ExpenseCategories))
		seenCat := map[string]bool{}
		for _, raw := range body.ExpenseCategories {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			if seenCat[name] {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Gider kategorisi tekrarlı: %s", name))
			}
			seenCat[name] = true
			cats = append(cats, name)
		}
		if len(cats) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "En az bir gider kategorisi girilmeli")
		}

		sort.Slice(body.InstallmentRates, func(i, j int) bool {
			return body.InstallmentRates[i].InstallmentCount < body.InstallmentRates[j].InstallmentCount
		})

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.InstallmentRate{}).Error; err != nil {
				return err
			}
			for _, item := range body.InstallmentRates {
				row := models.InstallmentRate{
					InstallmentCount: item.InstallmentCount,
					DeductionRate:    item.DeductionRate,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("1 = 1").Delete(&models.ExpenseCategory{}).Error; err != nil {
				return err
			}
			for _, name := range cats {
				row := models.ExpenseCategory{Name: name}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar kaydedilemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "commission_settings",
				EntityID:    0,
				Action:      models.AuditActionUpdate,
				Description: "Prim ayarları güncellendi",
				After: map[string]interface{}{
					"installment_rates":  body.InstallmentRates,
					"expense_categories": cats,
				},
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(SettingsResponse{
			InstallmentRates:  body.InstallmentRates,
			ExpenseCategories: cats,
		})
	}
}
