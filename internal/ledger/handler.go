package ledger

import (
	"fmt"
	"strings"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateAccountRequest struct {
	Code    string             `json:"code"` // boşsa türe göre otomatik üretilir
	Name    string             `json:"name"`
	Kind    models.AccountKind `json:"kind"`
	Phone   string             `json:"phone"`
	Email   string             `json:"email"`
	Address string             `json:"address"`
	Notes   string             `json:"notes"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

type AccountResponse struct {
	ID       uint               `json:"id"`
	Code     string             `json:"code"`
	Name     string             `json:"name"`
	Kind     models.AccountKind `json:"kind"`
	Phone    string             `json:"phone"`
	Email    string             `json:"email"`
	Address  string             `json:"address"`
	Notes    string             `json:"notes"`
	IsActive bool               `json:"is_active"`
	Balance  float64            `json:"balance"`
}

func toAccountResponse(a models.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Code:     a.Code,
		Name:     a.Name,
		Kind:     a.Kind,
		Phone:    a.Phone,
		Email:    a.Email,
		Address:  a.Address,
		Notes:    a.Notes,
		IsActive: a.IsActive,
		Balance:  a.Balance,
	}
}

func codePrefix(kind models.AccountKind) string {
	switch kind {
	case models.AccountKindDoctor:
		return "HK" // hekim
	case models.AccountKindStaff:
		return "PR" // personel
	case models.AccountKindSupplier:
		return "TD" // tedarikçi
	default:
		return "CR"
	}
}

// -------------------------------------------------
// POST /api/accounts
// -------------------------------------------------
func CreateAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Cari adı zorunlu")
		}

		switch body.Kind {
		case models.AccountKindDoctor, models.AccountKindStaff, models.AccountKindSupplier, models.AccountKindOther:
			// ok
		case "":
			body.Kind = models.AccountKindOther
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cari türü (doctor|staff|supplier|other)")
		}

		code := strings.TrimSpace(body.Code)
		if code == "" {
			generated, err := NextAccountCode(database.DB, codePrefix(body.Kind))
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Cari kodu üretilemedi")
			}
			code = generated
		} else {
			var existing models.Account
			if err := database.DB.First(&existing, "code = ?", code).Error; err == nil {
				return fiber.NewError(fiber.StatusConflict, "Bu cari kodu zaten kullanılıyor")
			}
		}

		acct := models.Account{
			Code:     code,
			Name:     body.Name,
			Kind:     body.Kind,
			Phone:    body.Phone,
			Email:    body.Email,
			Address:  body.Address,
			Notes:    body.Notes,
			IsActive: true,
		}

		if err := database.DB.Create(&acct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hesap oluşturulamadı")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "account",
				EntityID:    acct.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Cari hesap açıldı: %s (%s)", acct.Name, acct.Code),
				After:       toAccountResponse(acct),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toAccountResponse(acct))
	}
}

// -------------------------------------------------
// GET /api/accounts?kind=doctor&q=yilmaz&include_passive=true
// -------------------------------------------------
func ListAccountsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Account{})

		if kind := c.Query("kind"); kind != "" {
			dbq = dbq.Where("kind = ?", kind)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
		}
		if c.Query("include_passive") != "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var accts []models.Account
		if err := dbq.Order("code asc").Find(&accts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hesaplar listelenemedi")
		}

		resp := make([]AccountResponse, 0, len(accts))
		for _, a := range accts {
			resp = append(resp, toAccountResponse(a))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/accounts/:id
// -------------------------------------------------
func UpdateAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var acctID uint
		if _, err := fmt.Sscan(c.Params("id"), &acctID); err != nil || acctID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cari ID")
		}

		var acct models.Account
		if err := database.DB.First(&acct, "id = ?", acctID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hesap bulunamadı")
		}

		var body UpdateAccountRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := toAccountResponse(acct)

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Cari adı boş olamaz")
			}
			acct.Name = name
		}
		if body.Phone != nil {
			acct.Phone = *body.Phone
		}
		if body.Email != nil {
			acct.Email = *body.Email
		}
		if body.Address != nil {
			acct.Address = *body.Address
		}
		if body.Notes != nil {
			acct.Notes = *body.Notes
		}
		if body.IsActive != nil {
			acct.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&acct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hesap güncellenemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "account",
				EntityID:    acct.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Cari hesap güncellendi: %s (%s)", acct.Name, acct.Code),
				Before:      before,
				After:       toAccountResponse(acct),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toAccountResponse(acct))
	}
}

// -------------------------------------------------
// DELETE /api/accounts/:id
// Hareketi olan cari silinemez; önce hareketler temizlenmeli.
// -------------------------------------------------
func DeleteAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var acctID uint
		if _, err := fmt.Sscan(c.Params("id"), &acctID); err != nil || acctID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz cari ID")
		}

		var acct models.Account
		if err := database.DB.First(&acct, "id = ?", acctID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hesap bulunamadı")
		}

		var movCount int64
		if err := database.DB.Model(&models.AccountMovement{}).
			Where("account_id = ?", acctID).Count(&movCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hareket kontrolü yapılamadı")
		}
		if movCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Hareketi olan cari hesap silinemez")
		}

		if err := database.DB.Where("account_id = ?", acctID).
			Delete(&models.DoctorAccountLink{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hekim eşleştirmeleri silinemedi")
		}

		if err := database.DB.Delete(&acct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cari hesap silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "account",
				EntityID:    acct.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Cari hesap silindi: %s (%s)", acct.Name, acct.Code),
				Before:      toAccountResponse(acct),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Cari hesap silindi"})
	}
}
