package ledger

import (
	"fmt"
	"time"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateMovementRequest struct {
	Date        *string `json:"date"` // "2026-03-15", boşsa bugün
	Description string  `json:"description"`
	Credit      float64 `json:"credit"`
	Debit       float64 `json:"debit"`
}

type UpdateMovementRequest struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Credit      *float64 `json:"credit"`
	Debit       *float64 `json:"debit"`
}

type MovementResponse struct {
	ID           uint                `json:"id"`
	AccountID    uint                `json:"account_id"`
	Type         models.MovementType `json:"type"`
	CommissionID *uint               `json:"commission_id"`
	Date         string              `json:"date"`
	Description  string              `json:"description"`
	Credit       float64             `json:"credit"`
	Debit        float64             `json:"debit"`
	Balance      float64             `json:"balance"`
	CreatedBy    string              `json:"created_by"`
}

type StatementResponse struct {
	Account     AccountResponse    `json:"account"`
	From        *string            `json:"from"`
	To          *string            `json:"to"`
	Movements   []MovementResponse `json:"movements"`
	CreditTotal float64            `json:"credit_total"`
	DebitTotal  float64            `json:"debit_total"`
}

func toMovementResponse(m models.AccountMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Type:         m.Type,
		CommissionID: m.CommissionID,
		Date:         m.Date.Format("2006-01-02"),
		Description:  m.Description,
		Credit:       m.Credit,
		Debit:        m.Debit,
		Balance:      m.Balance,
		CreatedBy:    m.CreatedBy,
	}
}

func parseMovementDate(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	d, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
	}
	return d, nil
}

// -------------------------------------------------
// POST /api/accounts/:id/movements
// Elle girilen tahsilat/ödeme kaydı. Bakiye artımlı işlenir; geçmişe
// tarihli kayıtlar sonrasında tarih sırası tam hesapla düzeltilir.
// -------------------------------------------------
func CreateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var acctID uint
		if _, err := fmt.Sscan(c.Params("id"), &acctID); err != nil || acctID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cari ID")
		}

		var acct models.Account
		if err := database.DB.First(&acct, "id = ?", acctID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hesap bulunamadı")
		}

		var body CreateMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Credit < 0 || body.Debit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alacak ve borç negatif olamaz")
		}
		if body.Credit == 0 && body.Debit == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alacak veya borç girilmeli")
		}

		date, err := parseMovementDate(body.Date)
		if err != nil {
			return err
		}

		userID, userName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		movType := models.MovementTypePayment
		if body.Credit > 0 {
			movType = models.MovementTypeManual
		}

		mov := models.AccountMovement{
			AccountID:   acct.ID,
			Type:        movType,
			Date:        date,
			Description: body.Description,
			Credit:      body.Credit,
			Debit:       body.Debit,
			CreatedBy:   userName,
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return AddMovement(tx, &mov)
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hareket kaydedilemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "account_movement",
			EntityID:    mov.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Cari hareket eklendi: %s - alacak %.2f, borç %.2f TL", acct.Name, mov.Credit, mov.Debit),
			After:       toMovementResponse(mov),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
	}
}

// -------------------------------------------------
// PUT /api/movements/:id
// Düzeltme sonrası hesabın tüm bakiyesi baştan hesaplanır.
// -------------------------------------------------
func UpdateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var movID uint
		if _, err := fmt.Sscan(c.Params("id"), &movID); err != nil || movID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hareket ID")
		}

		var mov models.AccountMovement
		if err := database.DB.First(&mov, "id = ?", movID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hareket bulunamadı")
		}

		if mov.CommissionID != nil {
			return fiber.NewError(fiber.StatusConflict, "Prim kaynaklı hareket buradan düzenlenemez, primi silin")
		}

		var body UpdateMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := toMovementResponse(mov)

		if body.Date != nil {
			date, err := parseMovementDate(body.Date)
			if err != nil {
				return err
			}
			mov.Date = date
		}
		if body.Description != nil {
			mov.Description = *body.Description
		}
		if body.Credit != nil {
			if *body.Credit < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Alacak negatif olamaz")
			}
			mov.Credit = *body.Credit
		}
		if body.Debit != nil {
			if *body.Debit < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Borç negatif olamaz")
			}
			mov.Debit = *body.Debit
		}
		if mov.Credit == 0 && mov.Debit == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alacak veya borç girilmeli")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&mov).Error; err != nil {
				return err
			}
			return RecalculateBalance(tx, mov.AccountID)
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hareket güncellenemedi")
		}

		// güncel yürüyen bakiyeyi oku
		database.DB.First(&mov, "id = ?", mov.ID)

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "account_movement",
				EntityID:    mov.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Cari hareket güncellendi: #%d", mov.ID),
				Before:      before,
				After:       toMovementResponse(mov),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toMovementResponse(mov))
	}
}

// -------------------------------------------------
// DELETE /api/movements/:id
// -------------------------------------------------
func DeleteMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var movID uint
		if _, err := fmt.Sscan(c.Params("id"), &movID); err != nil || movID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hareket ID")
		}

		var mov models.AccountMovement
		if err := database.DB.First(&mov, "id = ?", movID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hareket bulunamadı")
		}

		if mov.CommissionID != nil {
			return fiber.NewError(fiber.StatusConflict, "Prim kaynaklı hareket buradan silinemez, primi silin")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&mov).Error; err != nil {
				return err
			}
			return RecalculateBalance(tx, mov.AccountID)
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hareket silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "account_movement",
				EntityID:    mov.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Cari hareket silindi: #%d", mov.ID),
				Before:      toMovementResponse(mov),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Cari hareket silindi"})
	}
}

// -------------------------------------------------
// GET /api/accounts/:id/movements?from=2026-03-01&to=2026-03-31
// Ekstre: hesap bilgisi + tarih sıralı hareketler + toplamlar.
// -------------------------------------------------
func AccountStatementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var acctID uint
		if _, err := fmt.Sscan(c.Params("id"), &acctID); err != nil || acctID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cari ID")
		}

		var acct models.Account
		if err := database.DB.First(&acct, "id = ?", acctID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hesap bulunamadı")
		}

		dbq := database.DB.Model(&models.AccountMovement{}).Where("account_id = ?", acctID)

		var fromStr, toStr *string
		if raw := c.Query("from"); raw != "" {
			from, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("date >= ?", from)
			fromStr = &raw
		}
		if raw := c.Query("to"); raw != "" {
			to, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("date <= ?", to)
			toStr = &raw
		}

		var movs []models.AccountMovement
		if err := dbq.Order("date asc, id asc").Find(&movs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareketler listelenemedi")
		}

		resp := StatementResponse{
			Account:   toAccountResponse(acct),
			From:      fromStr,
			To:        toStr,
			Movements: make([]MovementResponse, 0, len(movs)),
		}
		for _, m := range movs {
			resp.Movements = append(resp.Movements, toMovementResponse(m))
			resp.CreditTotal += m.Credit
			resp.DebitTotal += m.Debit
		}

		return c.JSON(resp)
	}
}
