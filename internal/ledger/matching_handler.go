package ledger

import (
	"fmt"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMatchingRequest struct {
	DoctorID  uint `json:"doctor_id"`
	AccountID uint `json:"account_id"`
	// super_admin için opsiyonel:
	BranchID *uint `json:"branch_id"`
}

type MatchingResponse struct {
	ID          uint   `json:"id"`
	DoctorID    uint   `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	BranchID    uint   `json:"branch_id"`
	AccountID   uint   `json:"account_id"`
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
}

// -------------------------------------------------
// POST /api/doctor-accounts
// Aynı hekim+şube için ikinci aktif eşleştirme açılamaz.
// -------------------------------------------------
func CreateMatchingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMatchingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.DoctorID == 0 || body.AccountID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "doctor_id ve account_id zorunlu")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ? AND branch_id = ?", body.DoctorID, branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hekim bulunamadı")
		}

		var acct models.Account
		if err := database.DB.First(&acct, "id = ?", body.AccountID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cari hesap bulunamadı")
		}

		var existing models.DoctorAccountLink
		if err := database.DB.Where("doctor_id = ? AND branch_id = ? AND is_active = ?",
			body.DoctorID, branchID, true).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu hekim için zaten aktif bir cari eşleştirmesi var")
		}

		link := models.DoctorAccountLink{
			AccountID: acct.ID,
			DoctorID:  doctor.ID,
			BranchID:  branchID,
			IsActive:  true,
		}

		if err := database.DB.Create(&link).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Eşleştirme oluşturulamadı")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &branchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "doctor_account_link",
				EntityID:    link.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Hekim cari eşleştirmesi: %s -> %s", doctor.FullName(), acct.Code),
				After: map[string]interface{}{
					"doctor_id":  link.DoctorID,
					"account_id": link.AccountID,
					"branch_id":  link.BranchID,
				},
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(MatchingResponse{
			ID:          link.ID,
			DoctorID:    doctor.ID,
			DoctorName:  doctor.FullName(),
			BranchID:    branchID,
			AccountID:   acct.ID,
			AccountCode: acct.Code,
			AccountName: acct.Name,
		})
	}
}

// -------------------------------------------------
// GET /api/doctor-accounts?branch_id=1
// -------------------------------------------------
func ListMatchingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		var links []models.DoctorAccountLink
		if err := database.DB.Preload("Doctor").Preload("Account").
			Where("branch_id = ? AND is_active = ?", branchID, true).
			Order("id asc").
			Find(&links).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Eşleştirmeler listelenemedi")
		}

		resp := make([]MatchingResponse, 0, len(links))
		for _, l := range links {
			resp = append(resp, MatchingResponse{
				ID:          l.ID,
				DoctorID:    l.DoctorID,
				DoctorName:  l.Doctor.FullName(),
				BranchID:    l.BranchID,
				AccountID:   l.AccountID,
				AccountCode: l.Account.Code,
				AccountName: l.Account.Name,
			})
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/doctors/:id/account?branch_id=1
// Hekimin eşleştirilmiş cari hesabını döndürür; eşleştirme yoksa 404.
// -------------------------------------------------
func FindDoctorAccountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doctorID uint
		if _, err := fmt.Sscan(c.Params("id"), &doctorID); err != nil || doctorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hekim ID")
		}

		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		acct, err := ActiveDoctorAccount(database.DB, doctorID, branchID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Eşleştirme okunamadı")
		}
		if acct == nil {
			return fiber.NewError(fiber.StatusNotFound, "Bu hekim için cari eşleştirmesi yok")
		}

		return c.JSON(toAccountResponse(*acct))
	}
}

// -------------------------------------------------
// DELETE /api/doctor-accounts/:id
// Eşleştirme pasife çekilir; cari hesap ve hareketler durur.
// -------------------------------------------------
func DeleteMatchingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var linkID uint
		if _, err := fmt.Sscan(c.Params("id"), &linkID); err != nil || linkID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz eşleştirme ID")
		}

		var link models.DoctorAccountLink
		if err := database.DB.First(&link, "id = ?", linkID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Eşleştirme bulunamadı")
		}

		if err := database.DB.Delete(&link).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Eşleştirme silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &link.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "doctor_account_link",
				EntityID:    link.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Hekim cari eşleştirmesi kaldırıldı: #%d", link.ID),
				Before: map[string]interface{}{
					"doctor_id":  link.DoctorID,
					"account_id": link.AccountID,
					"branch_id":  link.BranchID,
				},
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Eşleştirme silindi"})
	}
}
