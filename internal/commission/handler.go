package commission

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"klinik-backend/internal/audit"
	"klinik-backend/internal/auth"
	"klinik-backend/internal/database"
	"klinik-backend/internal/ledger"
	"klinik-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PeriodRequest struct {
	DoctorID    uint   `json:"doctor_id"`
	PeriodStart string `json:"period_start"` // "2026-03-01"
	PeriodEnd   string `json:"period_end"`   // "2026-03-31"
	// super_admin için opsiyonel:
	BranchID *uint `json:"branch_id"`
}

type DoctorInfo struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Specialty      string  `json:"specialty"`
	CommissionRate float64 `json:"commission_rate"`
}

type LoadCollectionsResponse struct {
	Doctor      DoctorInfo       `json:"doctor"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	Lines       []CollectionLine `json:"lines"`
}

type ComputeRequest struct {
	Session Session `json:"session"`
	Rate    float64 `json:"rate"`
}

type ProcessedLine struct {
	CollectionLine
	VATAmount       float64 `json:"vat_amount"`
	DeductionAmount float64 `json:"deduction_amount"`
	NetAmount       float64 `json:"net_amount"`
}

type ComputeResponse struct {
	Result Result          `json:"result"`
	Lines  []ProcessedLine `json:"lines"`
}

type SaveCommissionRequest struct {
	DoctorID    uint    `json:"doctor_id"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Rate        float64 `json:"rate"`
	Session     Session `json:"session"`
	// cari: boşsa hekimin aktif eşleştirmesi kullanılır
	AccountID *uint `json:"account_id"`
	// AccountID verildiyse ve eşleştirme yoksa kalıcı eşleştirme de açılır
	SaveMatching bool `json:"save_matching"`
	// super_admin için opsiyonel:
	BranchID *uint `json:"branch_id"`
}

type CommissionSummaryResponse struct {
	ID              uint    `json:"id"`
	ReferenceNo     string  `json:"reference_no"`
	BranchID        uint    `json:"branch_id"`
	DoctorID        uint    `json:"doctor_id"`
	DoctorName      string  `json:"doctor_name"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	NetCollected    float64 `json:"net_collected"`
	Base            float64 `json:"base"`
	Rate            float64 `json:"rate"`
	FinalCommission float64 `json:"final_commission"`
	AccountID       *uint   `json:"account_id"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "period_start geçersiz, 'YYYY-MM-DD' olmalı")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "period_end geçersiz, 'YYYY-MM-DD' olmalı")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "period_end, period_start'tan önce olamaz")
	}
	return start, end, nil
}

func toSummaryResponse(cm models.Commission) CommissionSummaryResponse {
	return CommissionSummaryResponse{
		ID:              cm.ID,
		ReferenceNo:     cm.ReferenceNo,
		BranchID:        cm.BranchID,
		DoctorID:        cm.DoctorID,
		DoctorName:      cm.Doctor.FullName(),
		PeriodStart:     cm.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       cm.PeriodEnd.Format("2006-01-02"),
		NetCollected:    cm.NetCollected,
		Base:            cm.Base,
		Rate:            cm.Rate,
		FinalCommission: cm.FinalCommission,
		AccountID:       cm.AccountID,
		CreatedBy:       cm.CreatedBy,
		CreatedAt:       cm.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// validateSession: Kayıt ve hesaplama öncesi satır doğrulaması.
func validateSession(s Session) error {
	for _, line := range s.Collections {
		if line.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tahsilat tutarı 0'dan büyük olmalı")
		}
		if strings.TrimSpace(line.PatientName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tahsilat satırında hasta adı zorunlu")
		}
		if strings.TrimSpace(line.PaymentMethod) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tahsilat satırında ödeme şekli zorunlu")
		}
		if line.DeductionRate < 0 || line.DeductionRate > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "Kesinti oranı 0-100 arasında olmalı")
		}
	}

	for _, exp := range s.Expenses {
		if exp.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Gider tutarı 0'dan büyük olmalı")
		}
		switch exp.Kind {
		case models.ExpenseKindLab:
			if strings.TrimSpace(exp.PatientName) == "" || strings.TrimSpace(exp.Procedure) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Laboratuvar giderinde hasta ve işlem zorunlu")
			}
		case models.ExpenseKindImplant:
			if strings.TrimSpace(exp.Brand) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İmplant giderinde marka zorunlu")
			}
			if exp.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "İmplant adedi 0'dan büyük olmalı")
			}
		case models.ExpenseKindOther:
			if strings.TrimSpace(exp.Category) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Diğer giderde kategori zorunlu")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz gider türü (lab|implant|other)")
		}
	}

	for _, adj := range append(append([]AdjustmentLine{}, s.RevenueAdjustments...), s.EntitlementAdjustments...) {
		if adj.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ekleme tutarı 0'dan büyük olmalı")
		}
		if strings.TrimSpace(adj.Category) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ekleme satırında kategori zorunlu")
		}
	}

	return nil
}

// -------------------------------------------------
// POST /api/commissions/collections
// Hekimin dönem tahsilatlarını politika varsayılanlarıyla yükler.
// -------------------------------------------------
func LoadCollectionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PeriodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		start, end, err := parsePeriod(body.PeriodStart, body.PeriodEnd)
		if err != nil {
			return err
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ? AND branch_id = ?", body.DoctorID, branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hekim bulunamadı")
		}

		var cols []models.Collection
		if err := database.DB.
			Where("branch_id = ? AND doctor_id = ? AND date >= ? AND date <= ?", branchID, doctor.ID, start, end).
			Order("date asc, id asc").
			Find(&cols).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tahsilatlar okunamadı")
		}
		if len(cols) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Bu dönemde hekime ait tahsilat yok")
		}

		table, err := LoadInstallmentTable(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Taksit tablosu okunamadı")
		}

		lines := make([]CollectionLine, 0, len(cols))
		for _, col := range cols {
			colID := col.ID
			inv := DefaultInvoicePolicy(col.PaymentMethod)
			lines = append(lines, CollectionLine{
				CollectionID:     &colID,
				PatientID:        col.PatientID,
				PatientName:      col.PatientName,
				Date:             col.Date,
				Amount:           col.Amount,
				PaymentMethod:    col.PaymentMethod,
				InvoiceIssued:    inv.InvoiceIssued,
				VATRate:          inv.VATRate,
				InstallmentCount: 1,
				DeductionRate:    DefaultDeductionRate(col.PaymentMethod, 1, table),
			})
		}

		return c.JSON(LoadCollectionsResponse{
			Doctor: DoctorInfo{
				ID:             doctor.ID,
				Name:           doctor.FullName(),
				Specialty:      doctor.Specialty,
				CommissionRate: doctor.CommissionRate,
			},
			PeriodStart: start.Format("2006-01-02"),
			PeriodEnd:   end.Format("2006-01-02"),
			Lines:       lines,
		})
	}
}

// -------------------------------------------------
// POST /api/commissions/check-overlap
// Aynı hekim için dönemi kesişen kayıtlı primleri döndürür.
// -------------------------------------------------
func CheckOverlapHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PeriodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		start, end, err := parsePeriod(body.PeriodStart, body.PeriodEnd)
		if err != nil {
			return err
		}

		var overlapping []models.Commission
		if err := database.DB.Preload("Doctor").
			Where("branch_id = ? AND doctor_id = ? AND period_start <= ? AND period_end >= ?",
				branchID, body.DoctorID, end, start).
			Order("period_start asc").
			Find(&overlapping).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar okunamadı")
		}

		resp := make([]CommissionSummaryResponse, 0, len(overlapping))
		for _, cm := range overlapping {
			resp = append(resp, toSummaryResponse(cm))
		}

		return c.JSON(fiber.Map{
			"has_overlap": len(resp) > 0,
			"commissions": resp,
		})
	}
}

// -------------------------------------------------
// POST /api/commissions/compute
// Durumsuz hesaplama: oturum + oran alır, sonucu ve işlenmiş
// satırları döndürür, hiçbir şey kaydetmez.
// -------------------------------------------------
func ComputeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ComputeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if err := validateSession(body.Session); err != nil {
			return err
		}

		res, err := Compute(body.Session, body.Rate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		lines := make([]ProcessedLine, 0, len(body.Session.Collections))
		for _, line := range body.Session.Collections {
			lines = append(lines, ProcessedLine{
				CollectionLine:  line,
				VATAmount:       line.VATAmount(),
				DeductionAmount: line.DeductionAmount(),
				NetAmount:       line.NetAmount(),
			})
		}

		return c.JSON(ComputeResponse{Result: res, Lines: lines})
	}
}

// -------------------------------------------------
// POST /api/commissions
// Hesaplamayı anlık görüntüsüyle kaydeder, tutarı hekimin carisine
// alacak olarak işler. Kayıt sonrası satırlar değiştirilemez.
// -------------------------------------------------
func SaveCommissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveCommissionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		start, end, err := parsePeriod(body.PeriodStart, body.PeriodEnd)
		if err != nil {
			return err
		}

		var doctor models.Doctor
		if err := database.DB.First(&doctor, "id = ? AND branch_id = ?", body.DoctorID, branchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hekim bulunamadı")
		}

		if err := validateSession(body.Session); err != nil {
			return err
		}

		res, err := Compute(body.Session, body.Rate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		userID, userName, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		// hedef cari: istekle gelen ya da hekimin aktif eşleştirmesi
		var targetAccount *models.Account
		if body.AccountID != nil && *body.AccountID != 0 {
			var acct models.Account
			if err := database.DB.First(&acct, "id = ?", *body.AccountID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Cari hesap bulunamadı")
			}
			targetAccount = &acct
		} else {
			acct, err := ledger.ActiveDoctorAccount(database.DB, doctor.ID, branchID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Hekim carisi okunamadı")
			}
			targetAccount = acct
		}

		cm := models.Commission{
			ReferenceNo:      uuid.NewString(),
			BranchID:         branchID,
			DoctorID:         doctor.ID,
			PeriodStart:      start,
			PeriodEnd:        end,
			GrossCollected:   res.GrossCollected,
			DeductionTotal:   res.DeductionTotal,
			RevenueAdjTotal:  res.RevenueAdjTotal,
			NetCollected:     res.NetCollected,
			ExpenseTotal:     res.ExpenseTotal,
			Base:             res.Base,
			Rate:             res.Rate,
			RawCommission:    res.RawCommission,
			EntitlementTotal: res.EntitlementTotal,
			FinalCommission:  res.FinalCommission,
			CreatedBy:        userName,
		}
		if targetAccount != nil {
			cm.AccountID = &targetAccount.ID
		}

		for _, line := range body.Session.Collections {
			cm.Collections = append(cm.Collections, models.CommissionCollection{
				CollectionID:     line.CollectionID,
				PatientID:        line.PatientID,
				PatientName:      line.PatientName,
				Date:             line.Date,
				Amount:           line.Amount,
				PaymentMethod:    line.PaymentMethod,
				InvoiceIssued:    line.InvoiceIssued,
				VATRate:          line.VATRate,
				VATAmount:        line.VATAmount(),
				InstallmentCount: line.InstallmentCount,
				DeductionRate:    line.DeductionRate,
				DeductionAmount:  line.DeductionAmount(),
				NetAmount:        line.NetAmount(),
			})
		}
		for _, exp := range body.Session.Expenses {
			cm.Expenses = append(cm.Expenses, models.CommissionExpense{
				Kind:        exp.Kind,
				Date:        exp.Date,
				PatientID:   exp.PatientID,
				PatientName: exp.PatientName,
				Amount:      exp.Amount,
				Description: exp.Description,
				Procedure:   exp.Procedure,
				Brand:       exp.Brand,
				Length:      exp.Length,
				Diameter:    exp.Diameter,
				Unit:        exp.Unit,
				Quantity:    exp.Quantity,
				Category:    exp.Category,
			})
		}
		for _, adj := range body.Session.RevenueAdjustments {
			cm.Adjustments = append(cm.Adjustments, models.CommissionAdjustment{
				Kind:        models.AdjustmentKindRevenue,
				Date:        adj.Date,
				Category:    adj.Category,
				Description: adj.Description,
				PatientName: adj.PatientName,
				Amount:      adj.Amount,
			})
		}
		for _, adj := range body.Session.EntitlementAdjustments {
			cm.Adjustments = append(cm.Adjustments, models.CommissionAdjustment{
				Kind:        models.AdjustmentKindEntitlement,
				Date:        adj.Date,
				Category:    adj.Category,
				Description: adj.Description,
				Amount:      adj.Amount,
			})
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&cm).Error; err != nil {
				return err
			}

			if targetAccount != nil {
				mov := models.AccountMovement{
					AccountID:    targetAccount.ID,
					Type:         models.MovementTypeCommission,
					CommissionID: &cm.ID,
					Date:         end,
					Description: fmt.Sprintf("Prim: %s (%s - %s)",
						doctor.FullName(), start.Format("2006-01-02"), end.Format("2006-01-02")),
					Credit:    res.FinalCommission,
					CreatedBy: userName,
				}
				if err := ledger.AddMovement(tx, &mov); err != nil {
					return err
				}

				// istenirse eşleştirmeyi kalıcılaştır
				if body.SaveMatching && body.AccountID != nil {
					var existing models.DoctorAccountLink
					err := tx.Where("doctor_id = ? AND branch_id = ? AND is_active = ?",
						doctor.ID, branchID, true).First(&existing).Error
					if errors.Is(err, gorm.ErrRecordNotFound) {
						link := models.DoctorAccountLink{
							AccountID: targetAccount.ID,
							DoctorID:  doctor.ID,
							BranchID:  branchID,
							IsActive:  true,
						}
						if err := tx.Create(&link).Error; err != nil {
							return err
						}
					} else if err != nil {
						return err
					}
				}
			}

			return nil
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Prim kaydedilemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			BranchID:   &branchID,
			UserID:     userID,
			UserName:   userName,
			EntityType: "commission",
			EntityID:   cm.ID,
			Action:     models.AuditActionCreate,
			Description: fmt.Sprintf("Prim kaydedildi: %s - %.2f TL (%s / %s)",
				doctor.FullName(), cm.FinalCommission,
				start.Format("2006-01-02"), end.Format("2006-01-02")),
			After: map[string]interface{}{
				"reference_no":     cm.ReferenceNo,
				"doctor_id":        cm.DoctorID,
				"period_start":     cm.PeriodStart.Format("2006-01-02"),
				"period_end":       cm.PeriodEnd.Format("2006-01-02"),
				"rate":             cm.Rate,
				"final_commission": cm.FinalCommission,
				"account_id":       cm.AccountID,
			},
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		cm.Doctor = doctor
		return c.Status(fiber.StatusCreated).JSON(toSummaryResponse(cm))
	}
}

// -------------------------------------------------
// GET /api/commissions?branch_id=1&doctor_id=2&from=2026-01-01&to=2026-06-30
// -------------------------------------------------
func ListCommissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchIDFromQuery(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Preload("Doctor").Where("branch_id = ?", branchID)

		if raw := c.Query("doctor_id"); raw != "" {
			var did uint
			if _, err := fmt.Sscan(raw, &did); err != nil || did == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "doctor_id geçersiz")
			}
			dbq = dbq.Where("doctor_id = ?", did)
		}
		if raw := c.Query("from"); raw != "" {
			from, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz")
			}
			dbq = dbq.Where("period_end >= ?", from)
		}
		if raw := c.Query("to"); raw != "" {
			to, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz")
			}
			dbq = dbq.Where("period_start <= ?", to)
		}

		var cms []models.Commission
		if err := dbq.Order("period_start desc, id desc").Find(&cms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Primler listelenemedi")
		}

		resp := make([]CommissionSummaryResponse, 0, len(cms))
		for _, cm := range cms {
			resp = append(resp, toSummaryResponse(cm))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/commissions/:id
// Anlık görüntü dahil tam detay.
// -------------------------------------------------
func GetCommissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cmID uint
		if _, err := fmt.Sscan(c.Params("id"), &cmID); err != nil || cmID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz prim ID")
		}

		var cm models.Commission
		if err := database.DB.Preload("Doctor").Preload("Branch").
			Preload("Collections").Preload("Expenses").Preload("Adjustments").
			First(&cm, "id = ?", cmID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Prim kaydı bulunamadı")
		}

		return c.JSON(fiber.Map{
			"summary":     toSummaryResponse(cm),
			"totals":      resultFromCommission(cm),
			"collections": cm.Collections,
			"expenses":    cm.Expenses,
			"adjustments": cm.Adjustments,
		})
	}
}

func resultFromCommission(cm models.Commission) Result {
	return Result{
		GrossCollected:   cm.GrossCollected,
		DeductionTotal:   cm.DeductionTotal,
		RevenueAdjTotal:  cm.RevenueAdjTotal,
		NetCollected:     cm.NetCollected,
		ExpenseTotal:     cm.ExpenseTotal,
		Base:             cm.Base,
		Rate:             cm.Rate,
		RawCommission:    cm.RawCommission,
		EntitlementTotal: cm.EntitlementTotal,
		FinalCommission:  cm.FinalCommission,
	}
}

// -------------------------------------------------
// DELETE /api/commissions/:id
// Cari alacak kaydı ters çevrilir, anlık görüntü satırlarıyla silinir.
// -------------------------------------------------
func DeleteCommissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cmID uint
		if _, err := fmt.Sscan(c.Params("id"), &cmID); err != nil || cmID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz prim ID")
		}

		var cm models.Commission
		if err := database.DB.Preload("Doctor").First(&cm, "id = ?", cmID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Prim kaydı bulunamadı")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := ledger.RemoveCommissionMovements(tx, cm.ID); err != nil {
				return err
			}
			if err := tx.Where("commission_id = ?", cm.ID).Delete(&models.CommissionCollection{}).Error; err != nil {
				return err
			}
			if err := tx.Where("commission_id = ?", cm.ID).Delete(&models.CommissionExpense{}).Error; err != nil {
				return err
			}
			if err := tx.Where("commission_id = ?", cm.ID).Delete(&models.CommissionAdjustment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Commission{}, "id = ?", cm.ID).Error
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Prim silinemedi")
		}

		userID, userName, err := auth.CurrentUser(c)
		if err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				BranchID:   &cm.BranchID,
				UserID:     userID,
				UserName:   userName,
				EntityType: "commission",
				EntityID:   cm.ID,
				Action:     models.AuditActionDelete,
				Description: fmt.Sprintf("Prim silindi: %s - %.2f TL (ref %s)",
					cm.Doctor.FullName(), cm.FinalCommission, cm.ReferenceNo),
				Before: map[string]interface{}{
					"reference_no":     cm.ReferenceNo,
					"doctor_id":        cm.DoctorID,
					"final_commission": cm.FinalCommission,
					"account_id":       cm.AccountID,
				},
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(fiber.Map{"message": "Prim kaydı silindi"})
	}
}

// -------------------------------------------------
// POST /api/commissions/expenses/parse-bulk
// -------------------------------------------------
type ParseBulkRequest struct {
	Kind models.ExpenseKind `json:"kind"` // "lab" | "implant"
	Text string             `json:"text"`
}

func ParseBulkExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ParseBulkRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var lines []ExpenseLine
		var skipped int
		switch body.Kind {
		case models.ExpenseKindLab:
			lines, skipped = ParseLabBulk(body.Text)
		case models.ExpenseKindImplant:
			lines, skipped = ParseImplantBulk(body.Text)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz gider türü (lab|implant)")
		}

		if lines == nil {
			lines = []ExpenseLine{}
		}
		return c.JSON(fiber.Map{
			"lines":   lines,
			"parsed":  len(lines),
			"skipped": skipped,
		})
	}
}
