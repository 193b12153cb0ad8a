package admin

import (
	"fmt"
	"strings"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateDoctorRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Specialty      string  `json:"specialty"`
	CommissionRate float64 `json:"commission_rate"` // varsayılan prim oranı (%)
	// super_admin için opsiyonel:
	BranchID *uint `json:"branch_id"`
}

type UpdateDoctorRequest struct {
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Specialty      *string  `json:"specialty"`
	CommissionRate *float64 `json:"commission_rate"`
	IsActive       *bool    `json:"is_active"`
}

type DoctorResponse struct {
	ID             uint    `json:"id"`
	BranchID       uint    `json:"branch_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Specialty      string  `json:"specialty"`
	CommissionRate float64 `json:"commission_rate"`
	IsActive       bool    `json:"is_active"`
}

func toDoctorResponse(d models.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:             d.ID,
		BranchID:       d.BranchID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Specialty:      d.Specialty,
		CommissionRate: d.CommissionRate,
		IsActive:       d.IsActive,
	}
}

// -------------------------------------------------
// POST /api/doctors
// -------------------------------------------------
func CreateDoctorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDoctorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		if body.FirstName == "" || body.LastName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ad ve soyad zorunlu")
		}
		if body.CommissionRate < 0 || body.CommissionRate > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "Prim oranı 0-100 arasında olmalı")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		doctor := models.Doctor{
			BranchID:       branchID,
			FirstName:      body.FirstName,
			LastName:       body.LastName,
			Specialty:      body.Specialty,
			CommissionRate: body.CommissionRate,
			IsActive:       true,
		}

		if err := database.DB.Create(&doctor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hekim kaydedilemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &doctor.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "doctor",
				EntityID:    doctor.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Hekim eklendi: %s (%%%.1f)", doctor.FullName(), doctor.CommissionRate),
				After:       toDoctorResponse(doctor),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toDoctorResponse(doctor))
	}
}

// -------------------------------------------------
// GET /api/doctors?branch_id=1&include_passive=true
// -------------------------------------------------
func ListDoctorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Doctor{}).Where("branch_id = ?", branchID)
		if c.Query("include_passive") != "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var doctors []models.Doctor
		if err := dbq.Order("first_name asc, last_name asc").Find(&doctors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hekimler listelenemedi")
		}

		resp := make([]DoctorResponse, 0, len(doctors))
		for _, d := range doctors {
			resp = append(resp, toDoctorResponse(d))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/doctors/:id
// -------------------------------------------------
func UpdateDoctorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doctorID uint
		if _, err := fmt.Sscan(c.Params("id"), &doctorID); err != nil || doctorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hekim ID")
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hekim bulunamadı")
		}

		var body UpdateDoctorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := toDoctorResponse(doctor)

		if body.FirstName != nil {
			name := strings.TrimSpace(*body.FirstName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ad boş olamaz")
			}
			doctor.FirstName = name
		}
		if body.LastName != nil {
			name := strings.TrimSpace(*body.LastName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Soyad boş olamaz")
			}
			doctor.LastName = name
		}
		if body.Specialty != nil {
			doctor.Specialty = *body.Specialty
		}
		if body.CommissionRate != nil {
			if *body.CommissionRate < 0 || *body.CommissionRate > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "Prim oranı 0-100 arasında olmalı")
			}
			doctor.CommissionRate = *body.CommissionRate
		}
		if body.IsActive != nil {
			doctor.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&doctor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hekim güncellenemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &doctor.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "doctor",
				EntityID:    doctor.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Hekim güncellendi: %s", doctor.FullName()),
				Before:      before,
				After:       toDoctorResponse(doctor),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toDoctorResponse(doctor))
	}
}

// -------------------------------------------------
// DELETE /api/doctors/:id
// Prim kaydı olan hekim silinmez, pasife çekilir.
// -------------------------------------------------
func DeleteDoctorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doctorID uint
		if _, err := fmt.Sscan(c.Params("id"), &doctorID); err != nil || doctorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz hekim ID")
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hekim bulunamadı")
		}

		var cmCount int64
		if err := database.DB.Model(&models.Commission{}).
			Where("doctor_id = ?", doctorID).Count(&cmCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Prim kontrolü yapılamadı")
		}
		if cmCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Prim kaydı olan hekim silinemez, pasife çekin")
		}

		if err := database.DB.Delete(&doctor).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hekim silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &doctor.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "doctor",
				EntityID:    doctor.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Hekim silindi: %s", doctor.FullName()),
				Before:      toDoctorResponse(doctor),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Hekim silindi"})
	}
}
