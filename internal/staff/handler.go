package staff

import (
	"fmt"
	"strings"
	"time"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/ledger"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateStaffRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	HireDate  *string `json:"hire_date"` // "2024-09-01"
	// true ise personel adına cari hesap açılır
	CreateAccount bool `json:"create_account"`
	// super_admin için opsiyonel:
	BranchID *uint `json:"branch_id"`
}

type UpdateStaffRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Position  *string `json:"position"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	HireDate  *string `json:"hire_date"`
	IsActive  *bool   `json:"is_active"`
}

type StaffResponse struct {
	ID        uint    `json:"id"`
	BranchID  uint    `json:"branch_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	HireDate  *string `json:"hire_date"`
	AccountID *uint   `json:"account_id"`
	IsActive  bool    `json:"is_active"`
}

func toStaffResponse(s models.Staff) StaffResponse {
	var hireDate *string
	if s.HireDate != nil {
		formatted := s.HireDate.Format("2006-01-02")
		hireDate = &formatted
	}
	return StaffResponse{
		ID:        s.ID,
		BranchID:  s.BranchID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Position:  s.Position,
		Phone:     s.Phone,
		Email:     s.Email,
		HireDate:  hireDate,
		AccountID: s.AccountID,
		IsActive:  s.IsActive,
	}
}

// -------------------------------------------------
// POST /api/staff
// -------------------------------------------------
func CreateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		if body.FirstName == "" || body.LastName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ad ve soyad zorunlu")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		var hireDate *time.Time
		if body.HireDate != nil && *body.HireDate != "" {
			d, err := time.Parse("2006-01-02", *body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "İşe giriş tarihi geçersiz, 'YYYY-MM-DD' olmalı")
			}
			hireDate = &d
		}

		st := models.Staff{
			BranchID:  branchID,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Position:  body.Position,
			Phone:     body.Phone,
			Email:     body.Email,
			HireDate:  hireDate,
			IsActive:  true,
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if body.CreateAccount {
				code, err := ledger.NextAccountCode(tx, "PR")
				if err != nil {
					return err
				}
				acct := models.Account{
					Code:     code,
					Name:     fmt.Sprintf("%s %s", st.FirstName, st.LastName),
					Kind:     models.AccountKindStaff,
					Phone:    st.Phone,
					Email:    st.Email,
					IsActive: true,
				}
				if err := tx.Create(&acct).Error; err != nil {
					return err
				}
				st.AccountID = &acct.ID
			}
			return tx.Create(&st).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel kaydedilemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &st.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "staff",
				EntityID:    st.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Personel eklendi: %s %s", st.FirstName, st.LastName),
				After:       toStaffResponse(st),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toStaffResponse(st))
	}
}

// -------------------------------------------------
// GET /api/staff?branch_id=1&include_passive=true
// -------------------------------------------------
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Staff{}).Where("branch_id = ?", branchID)
		if c.Query("include_passive") != "true" {
			dbq = dbq.Where("is_active = ?", true)
		}

		var staff []models.Staff
		if err := dbq.Order("first_name asc, last_name asc").Find(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel listelenemedi")
		}

		resp := make([]StaffResponse, 0, len(staff))
		for _, s := range staff {
			resp = append(resp, toStaffResponse(s))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/staff/:id
// -------------------------------------------------
func UpdateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var st models.Staff
		if err := database.DB.First(&st, "id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		var body UpdateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := toStaffResponse(st)

		if body.FirstName != nil {
			name := strings.TrimSpace(*body.FirstName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Ad boş olamaz")
			}
			st.FirstName = name
		}
		if body.LastName != nil {
			name := strings.TrimSpace(*body.LastName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Soyad boş olamaz")
			}
			st.LastName = name
		}
		if body.Position != nil {
			st.Position = *body.Position
		}
		if body.Phone != nil {
			st.Phone = *body.Phone
		}
		if body.Email != nil {
			st.Email = *body.Email
		}
		if body.HireDate != nil {
			if *body.HireDate == "" {
				st.HireDate = nil
			} else {
				d, err := time.Parse("2006-01-02", *body.HireDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "İşe giriş tarihi geçersiz, 'YYYY-MM-DD' olmalı")
				}
				st.HireDate = &d
			}
		}
		if body.IsActive != nil {
			st.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&st).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel güncellenemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:    &st.BranchID,
				UserID:      userID,
				UserName:    userName,
				EntityType:  "staff",
				EntityID:    st.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Personel güncellendi: %s %s", st.FirstName, st.LastName),
				Before:      before,
				After:       toStaffResponse(st),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toStaffResponse(st))
	}
}

// -------------------------------------------------
// POST /api/staff/:id/leaves
// -------------------------------------------------
type CreateLeaveRequest struct {
	Type        models.LeaveType `json:"type"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Days        float64          `json:"days"` // yarım gün için kesirli olabilir
	Description string           `json:"description"`
}

type LeaveResponse struct {
	ID          uint             `json:"id"`
	StaffID     uint             `json:"staff_id"`
	Type        models.LeaveType `json:"type"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Days        float64          `json:"days"`
	Description string           `json:"description"`
}

func toLeaveResponse(l models.StaffLeave) LeaveResponse {
	return LeaveResponse{
		ID:          l.ID,
		StaffID:     l.StaffID,
		Type:        l.Type,
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		Days:        l.Days,
		Description: l.Description,
	}
}

func CreateLeaveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var st models.Staff
		if err := database.DB.First(&st, "id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		var body CreateLeaveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		switch body.Type {
		case models.LeaveTypeAnnual, models.LeaveTypeUnpaid, models.LeaveTypeSick, models.LeaveTypeOther:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin türü (annual|unpaid|sick|other)")
		}
		if body.Days <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "İzin günü 0'dan büyük olmalı")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date geçersiz, 'YYYY-MM-DD' olmalı")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date geçersiz, 'YYYY-MM-DD' olmalı")
		}
		if end.Before(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date, start_date'ten önce olamaz")
		}

		leave := models.StaffLeave{
			StaffID:     st.ID,
			Type:        body.Type,
			StartDate:   start,
			EndDate:     end,
			Days:        body.Days,
			Description: body.Description,
		}

		if err := database.DB.Create(&leave).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin kaydedilemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:   &st.BranchID,
				UserID:     userID,
				UserName:   userName,
				EntityType: "staff_leave",
				EntityID:   leave.ID,
				Action:     models.AuditActionCreate,
				Description: fmt.Sprintf("İzin eklendi: %s %s - %.1f gün (%s)",
					st.FirstName, st.LastName, leave.Days, leave.Type),
				After: toLeaveResponse(leave),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toLeaveResponse(leave))
	}
}

// -------------------------------------------------
// GET /api/staff/:id/leaves?year=2026
// -------------------------------------------------
func ListLeavesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		dbq := database.DB.Model(&models.StaffLeave{}).Where("staff_id = ?", staffID)

		if raw := c.Query("year"); raw != "" {
			var year int
			if _, err := fmt.Sscan(raw, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
			loc := time.Now().Location()
			start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
			end := time.Date(year, 12, 31, 0, 0, 0, 0, loc)
			dbq = dbq.Where("start_date >= ? AND start_date <= ?", start, end)
		}

		var leaves []models.StaffLeave
		if err := dbq.Order("start_date asc, id asc").Find(&leaves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzinler listelenemedi")
		}

		resp := make([]LeaveResponse, 0, len(leaves))
		for _, l := range leaves {
			resp = append(resp, toLeaveResponse(l))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/leaves/:id
// -------------------------------------------------
func DeleteLeaveHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var leaveID uint
		if _, err := fmt.Sscan(c.Params("id"), &leaveID); err != nil || leaveID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin ID")
		}

		var leave models.StaffLeave
		if err := database.DB.Preload("Staff").First(&leave, "id = ?", leaveID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İzin kaydı bulunamadı")
		}

		if err := database.DB.Delete(&models.StaffLeave{}, "id = ?", leave.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:   &leave.Staff.BranchID,
				UserID:     userID,
				UserName:   userName,
				EntityType: "staff_leave",
				EntityID:   leave.ID,
				Action:     models.AuditActionDelete,
				Description: fmt.Sprintf("İzin silindi: %s %s - %.1f gün",
					leave.Staff.FirstName, leave.Staff.LastName, leave.Days),
				Before: toLeaveResponse(leave),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "İzin kaydı silindi"})
	}
}

// -------------------------------------------------
// GET /api/staff/:id/leaves/status?year=2026
// Yıllık izin hakkı ve kullanımı.
// -------------------------------------------------
func LeaveStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var staffID uint
		if _, err := fmt.Sscan(c.Params("id"), &staffID); err != nil || staffID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel ID")
		}

		var st models.Staff
		if err := database.DB.First(&st, "id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		year := time.Now().Year()
		if raw := c.Query("year"); raw != "" {
			if _, err := fmt.Sscan(raw, &year); err != nil || year < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year geçersiz")
			}
		}

		loc := time.Now().Location()
		start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
		end := time.Date(year, 12, 31, 0, 0, 0, 0, loc)

		type row struct {
			Type models.LeaveType `gorm:"column:type"`
			Days float64          `gorm:"column:days"`
		}
		var rows []row
		if err := database.DB.Model(&models.StaffLeave{}).
			Select("type, SUM(days) as days").
			Where("staff_id = ? AND start_date >= ? AND start_date <= ?", staffID, start, end).
			Group("type").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin özeti hesaplanamadı")
		}

		usage := map[models.LeaveType]float64{}
		for _, r := range rows {
			usage[r.Type] = r.Days
		}

		return c.JSON(fiber.Map{
			"staff_id":          st.ID,
			"year":              year,
			"annual_entitled":   AnnualLeaveDays,
			"annual_used":       usage[models.LeaveTypeAnnual],
			"annual_remaining":  AnnualLeaveDays - usage[models.LeaveTypeAnnual],
			"unpaid_used":       usage[models.LeaveTypeUnpaid],
			"sick_used":         usage[models.LeaveTypeSick],
			"other_used":        usage[models.LeaveTypeOther],
		})
	}
}

// UnpaidLeaveDaysForMonth: Ay içinde başlayan ücretsiz izin günlerinin
// toplamı; maaş hesaplamasına varsayılan olarak girer.
func UnpaidLeaveDaysForMonth(db *gorm.DB, staffID uint, year, month int) (float64, error) {
	loc := time.Now().Location()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)

	var total float64
	err := db.Model(&models.StaffLeave{}).
		Select("COALESCE(SUM(days), 0)").
		Where("staff_id = ? AND type = ? AND start_date >= ? AND start_date <= ?",
			staffID, models.LeaveTypeUnpaid, start, end).
		Scan(&total).Error
	return total, err
}
