package collection

import (
	"fmt"
	"strings"
	"time"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCollectionRequest struct {
	DoctorID      uint    `json:"doctor_id"`
	PatientID     string  `json:"patient_id"`
	PatientName   string  `json:"patient_name"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"` // serbest metin: "Nakit", "Kredi Kartı (3 Taksit)" vb.
	Date          *string `json:"date"`           // "2026-03-15", boşsa bugün
	// super_admin için opsiyonel:
	BranchID *uint `json:"branch_id"`
}

type CollectionResponse struct {
	ID            uint    `json:"id"`
	BranchID      uint    `json:"branch_id"`
	DoctorID      uint    `json:"doctor_id"`
	DoctorName    string  `json:"doctor_name,omitempty"`
	PatientID     string  `json:"patient_id"`
	PatientName   string  `json:"patient_name"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Date          string  `json:"date"`
}

type MonthlySummaryItem struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int64   `json:"count"`
	Total         float64 `json:"total"`
}

type MonthlySummaryResponse struct {
	BranchID   uint                 `json:"branch_id"`
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Items      []MonthlySummaryItem `json:"items"`
	GrandTotal float64              `json:"grand_total"`
}

func toCollectionResponse(col models.Collection, doctorName string) CollectionResponse {
	return CollectionResponse{
		ID:            col.ID,
		BranchID:      col.BranchID,
		DoctorID:      col.DoctorID,
		DoctorName:    doctorName,
		PatientID:     col.PatientID,
		PatientName:   col.PatientName,
		Amount:        col.Amount,
		PaymentMethod: col.PaymentMethod,
		Date:          col.Date.Format("2006-01-02"),
	}
}

// -------------------------------------------------
// POST /api/collections
// -------------------------------------------------
func CreateCollectionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCollectionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tutar 0'dan büyük olmalı")
		}
		body.PatientName = strings.TrimSpace(body.PatientName)
		if body.PatientName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Hasta adı zorunlu")
		}
		if strings.TrimSpace(body.PaymentMethod) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ödeme şekli zorunlu")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ? AND branch_id = ?", body.DoctorID, branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hekim bulunamadı")
		}

		var date time.Time
		if body.Date == nil || *body.Date == "" {
			now := time.Now()
			date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		} else {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
			}
			date = d
		}

		col := models.Collection{
			BranchID:      branchID,
			DoctorID:      doctor.ID,
			PatientID:     body.PatientID,
			PatientName:   body.PatientName,
			Amount:        body.Amount,
			PaymentMethod: body.PaymentMethod,
			Date:          date,
		}

		if err := database.DB.Create(&col).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilat kaydedilemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &col.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "collection",
				EntityID:    col.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Tahsilat eklendi: %s - %.2f TL (%s)", col.PatientName, col.Amount, col.PaymentMethod),
				After:       toCollectionResponse(col, doctor.FullName()),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toCollectionResponse(col, doctor.FullName()))
	}
}

// -------------------------------------------------
// GET /api/collections?from=2026-03-01&to=2026-03-31&doctor_id=2
// -------------------------------------------------
func ListCollectionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Collection{}).Where("branch_id = ?", branchID)

		if raw := c.Query("from"); raw != "" {
			from, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if raw := c.Query("to"); raw != "" {
			to, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("date <= ?", to)
		}
		if raw := c.Query("doctor_id"); raw != "" {
			var did uint
			if _, err := fmt.Sscan(raw, &did); err != nil || did == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "doctor_id geçersiz")
			}
			dbq = dbq.Where("doctor_id = ?", did)
		}

		var cols []models.Collection
		if err := dbq.Preload("Doctor").Order("date asc, id asc").Find(&cols).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilatlar listelenemedi")
		}

		resp := make([]CollectionResponse, 0, len(cols))
		for _, col := range cols {
			resp = append(resp, toCollectionResponse(col, col.Doctor.FullName()))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/collections/:id
// -------------------------------------------------
func DeleteCollectionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var colID uint
		if _, err := fmt.Sscan(c.Params("id"), &colID); err != nil || colID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tahsilat ID")
		}

		var col models.Collection
		if err := database.DB.First(&col, "id = ?", colID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tahsilat bulunamadı")
		}

		if err := database.DB.Delete(&col).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilat silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &col.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "collection",
				EntityID:    col.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Tahsilat silindi: %s - %.2f TL", col.PatientName, col.Amount),
				Before:      toCollectionResponse(col, ""),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Tahsilat silindi"})
	}
}

// -------------------------------------------------
// GET /api/collections/summary/monthly?year=2026&month=3&branch_id=1
// Ödeme şekline göre adet + toplam.
// -------------------------------------------------
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year ve month zorunlu")
		}

		var year, month int
		if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
		}
		if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month geçersiz")
		}

		loc := time.Now().Location()
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, -1) // ilgili ayın son günü

		type row struct {
			PaymentMethod string  `gorm:"column:payment_method"`
			Count         int64   `gorm:"column:count"`
			Total         float64 `gorm:"column:total"`
		}
		var rows []row

		if err := database.DB.Model(&models.Collection{}).
			Select("payment_method, COUNT(*) as count, SUM(amount) as total").
			Where("branch_id = ? AND date >= ? AND date <= ?", branchID, start, end).
			Group("payment_method").
			Order("total desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		resp := MonthlySummaryResponse{
			BranchID: branchID,
			Year:     year,
			Month:    month,
			Items:    make([]MonthlySummaryItem, 0, len(rows)),
		}
		for _, r := range rows {
			resp.Items = append(resp.Items, MonthlySummaryItem{
				PaymentMethod: r.PaymentMethod,
				Count:         r.Count,
				Total:         r.Total,
			})
			resp.GrandTotal += r.Total
		}

		return c.JSON(resp)
	}
}
