package staff

import (
	"errors"
	"fmt"
	"time"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/ledger"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SalaryDefinitionRequest struct {
	GrossSalary        float64 `json:"gross_salary"`
	NetSalary          float64 `json:"net_salary"`
	TransportAllowance float64 `json:"transport_allowance"`
	MealAllowance      float64 `json:"meal_allowance"`
	ChildAllowance     float64 `json:"child_allowance"`
	OtherAllowance     float64 `json:"other_allowance"`
}

type SalaryDefinitionResponse struct {
	StaffID            uint    `json:"staff_id"`
	GrossSalary        float64 `json:"gross_salary"`
	NetSalary          float64 `json:"net_salary"`
	TransportAllowance float64 `json:"transport_allowance"`
	MealAllowance      float64 `json:"meal_allowance"`
	ChildAllowance     float64 `json:"child_allowance"`
	OtherAllowance     float64 `json:"other_allowance"`
	AllowanceTotal     float64 `json:"allowance_total"`
}

func toSalaryDefinitionResponse(s models.StaffSalary) SalaryDefinitionResponse {
	return SalaryDefinitionResponse{
		StaffID:            s.StaffID,
		GrossSalary:        s.GrossSalary,
		NetSalary:          s.NetSalary,
		TransportAllowance: s.TransportAllowance,
		MealAllowance:      s.MealAllowance,
		ChildAllowance:     s.ChildAllowance,
		OtherAllowance:     s.OtherAllowance,
		AllowanceTotal:     AllowanceTotal(s),
	}
}

// -------------------------------------------------
// PUT /api/staff/:id/salary
// Maaş tanımı; varsa üzerine yazar.
// -------------------------------------------------
func DefineSalaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var st models.Staff
		if err := database.DB.First(&st, "id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		var body SalaryDefinitionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.NetSalary <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Net maaş 0'dan büyük olmalı")
		}
		if body.GrossSalary < 0 || body.TransportAllowance < 0 || body.MealAllowance < 0 ||
			body.ChildAllowance < 0 || body.OtherAllowance < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Maaş kalemleri negatif olamaz")
		}

		var sal models.StaffSalary
		err := database.DB.First(&sal, "staff_id = ?", staffID).Error
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return fiber.NewError(fiber.StatusInternalServerError, "Maaş tanımı okunamadı")
		}

		var before *SalaryDefinitionResponse
		if !isNew {
			b := toSalaryDefinitionResponse(sal)
			before = &b
		}

		sal.StaffID = staffID
		sal.GrossSalary = body.GrossSalary
		sal.NetSalary = body.NetSalary
		sal.TransportAllowance = body.TransportAllowance
		sal.MealAllowance = body.MealAllowance
		sal.ChildAllowance = body.ChildAllowance
		sal.OtherAllowance = body.OtherAllowance

		if err := database.DB.Save(&sal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maaş tanımı kaydedilemedi")
		}

		action := models.AuditActionCreate
		if !isNew {
			action = models.AuditActionUpdate
		}
		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &st.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "staff_salary",
				EntityID:    sal.ID,
				Action:      action,
				Description: fmt.Sprintf("Maaş tanımı: %s %s - net %.2f TL", st.FirstName, st.LastName, sal.NetSalary),
				Before:      before,
				After:       toSalaryDefinitionResponse(sal),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toSalaryDefinitionResponse(sal))
	}
}

// -------------------------------------------------
// GET /api/staff/:id/salary
// -------------------------------------------------
func GetSalaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var sal models.StaffSalary
		if err := database.DB.First(&sal, "staff_id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Maaş tanımı bulunamadı")
		}

		return c.JSON(toSalaryDefinitionResponse(sal))
	}
}

// -------------------------------------------------
// POST /api/staff/:id/salary/compute
// Dönem hesaplaması; kaydetmez. Ücretsiz izin günü girilmezse ilgili
// ayın izin kayıtlarından alınır.
// -------------------------------------------------
type ComputeSalaryRequest struct {
	Year            int      `json:"year"`
	Month           int      `json:"month"`
	UnpaidLeaveDays *float64 `json:"unpaid_leave_days"`
	OvertimeHours   float64  `json:"overtime_hours"`
	CommissionPay   float64  `json:"commission_pay"`
	Bonus           float64  `json:"bonus"`
}

func buildSalaryInput(staffID uint, body ComputeSalaryRequest) (SalaryInput, error) {
	if body.Year < 2000 || body.Month < 1 || body.Month > 12 {
		return SalaryInput{}, fiber.NewError(fiber.StatusBadRequest, "year/month geçersiz")
	}
	if body.OvertimeHours < 0 || body.CommissionPay < 0 || body.Bonus < 0 {
		return SalaryInput{}, fiber.NewError(fiber.StatusBadRequest, "Maaş kalemleri negatif olamaz")
	}

	var sal models.StaffSalary
	if err := database.DB.First(&sal, "staff_id = ?", staffID).Error; err != nil {
		return SalaryInput{}, fiber.NewError(fiber.StatusNotFound, "Önce maaş tanımı yapılmalı")
	}

	var unpaidDays float64
	if body.UnpaidLeaveDays != nil {
		if *body.UnpaidLeaveDays < 0 {
			return SalaryInput{}, fiber.NewError(fiber.StatusBadRequest, "Ücretsiz izin günü negatif olamaz")
		}
		unpaidDays = *body.UnpaidLeaveDays
	} else {
		days, err := UnpaidLeaveDaysForMonth(database.DB, staffID, body.Year, body.Month)
		if err != nil {
			return SalaryInput{}, fiber.NewError(fiber.StatusInternalServerError, "İzin günleri okunamadı")
		}
		unpaidDays = days
	}

	return SalaryInput{
		NetSalary:       sal.NetSalary,
		AllowanceTotal:  AllowanceTotal(sal),
		UnpaidLeaveDays: unpaidDays,
		OvertimeHours:   body.OvertimeHours,
		CommissionPay:   body.CommissionPay,
		Bonus:           body.Bonus,
	}, nil
}

func ComputeSalaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var body ComputeSalaryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := buildSalaryInput(staffID, body)
		if err != nil {
			return err
		}

		return c.JSON(ComputeSalary(in))
	}
}

// -------------------------------------------------
// POST /api/staff/:id/salary/payments
// Hesaplamayı kaydedip tutarı personel carisine borç olarak işler.
// Aynı dönem için ikinci kayıt açılamaz.
// -------------------------------------------------
type PaymentResponse struct {
	ID        uint            `json:"id"`
	StaffID   uint            `json:"staff_id"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Breakdown SalaryBreakdown `json:"breakdown"`
	CreatedBy string          `json:"created_by"`
	CreatedAt string          `json:"created_at"`
}

func toPaymentResponse(p models.SalaryPayment) PaymentResponse {
	return PaymentResponse{
		ID:      p.ID,
		StaffID: p.StaffID,
		Year:    p.Year,
		Month:   p.Month,
		Breakdown: SalaryBreakdown{
			NetSalary:       p.NetSalary,
			AllowanceTotal:  p.AllowanceTotal,
			UnpaidLeaveDays: p.UnpaidLeaveDays,
			LeaveDeduction:  p.LeaveDeduction,
			OvertimeHours:   p.OvertimeHours,
			OvertimePay:     p.OvertimePay,
			CommissionPay:   p.CommissionPay,
			Bonus:           p.Bonus,
			PayableTotal:    p.PayableTotal,
		},
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func SaveSalaryPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var st models.Staff
		if err := database.DB.First(&st, "id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		var body ComputeSalaryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in, err := buildSalaryInput(staffID, body)
		if err != nil {
			return err
		}

		var existing models.SalaryPayment
		if err := database.DB.Where("staff_id = ? AND year = ? AND month = ?",
			staffID, body.Year, body.Month).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu dönem için maaş ödemesi zaten kayıtlı")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		out := ComputeSalary(in)

		payment := models.SalaryPayment{
			StaffID:         st.ID,
			Year:            body.Year,
			Month:           body.Month,
			NetSalary:       out.NetSalary,
			AllowanceTotal:  out.AllowanceTotal,
			UnpaidLeaveDays: out.UnpaidLeaveDays,
			LeaveDeduction:  out.LeaveDeduction,
			OvertimeHours:   out.OvertimeHours,
			OvertimePay:     out.OvertimePay,
			CommissionPay:   out.CommissionPay,
			Bonus:           out.Bonus,
			PayableTotal:    out.PayableTotal,
			CreatedBy:       userName,
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			if st.AccountID != nil {
				loc := time.Now().Location()
				periodEnd := time.Date(body.Year, time.Month(body.Month), 1, 0, 0, 0, 0, loc).AddDate(0, 1, -1)
				mov := models.AccountMovement{
					AccountID: *st.AccountID,
					Type:      models.MovementTypeSalary,
					Date:      periodEnd,
					Description: fmt.Sprintf("Maaş: %s %s (%d/%02d)",
						st.FirstName, st.LastName, body.Year, body.Month),
					Debit:     out.PayableTotal,
					CreatedBy: userName,
				}
				if err := ledger.AddMovement(tx, &mov); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maaş ödemesi kaydedilemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			BranchID:   &st.BranchID,
			UserID:     userID,
			UserName:   userName,
			EntityType: "salary_payment",
			EntityID:   payment.ID,
			Action:     models.AuditActionCreate,
			Description: fmt.Sprintf("Maaş ödemesi: %s %s - %.2f TL (%d/%02d)",
				st.FirstName, st.LastName, payment.PayableTotal, payment.Year, payment.Month),
			After: toPaymentResponse(payment),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
	}
}

// -------------------------------------------------
// GET /api/staff/:id/salary/payments?year=2026
// -------------------------------------------------
func ListSalaryPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		dbq := database.DB.Model(&models.SalaryPayment{}).Where("staff_id = ?", staffID)
		if raw := c.Query("year"); raw != "" {
			var year int
			if _, err := fmt.Sscan(raw, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
			dbq = dbq.Where("year = ?", year)
		}

		var payments []models.SalaryPayment
		if err := dbq.Order("year desc, month desc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Maaş ödemeleri listelenemedi")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, toPaymentResponse(p))
		}
		return c.JSON(resp)
	}
}
