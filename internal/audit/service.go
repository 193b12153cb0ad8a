package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"klinik-backend/internal/database"
	"klinik-backend/internal/models"
)

type LogOptions struct {
	BranchID    *uint
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		BranchID:    opts.BranchID,
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog: Bir audit kaydını geri alır. Bakiye veya cari hareket üreten
// kayıtlar (prim, maaş ödemesi, cari hareket) buradan geri alınamaz;
// onların kendi silme uçları ters kaydı üretir.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	switch log.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("entity silinemedi: %w", err)
		}

	case models.AuditActionUpdate:
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri yüklenemedi: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(log.EntityType, log.AfterData); err != nil {
			return fmt.Errorf("entity geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	undoLog := models.AuditLog{
		BranchID:    log.BranchID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  "null",
		AfterData:   "null",
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "collection":
		return database.DB.Delete(&models.Collection{}, "id = ?", entityID).Error
	case "doctor":
		return database.DB.Delete(&models.Doctor{}, "id = ?", entityID).Error
	case "staff":
		return database.DB.Delete(&models.Staff{}, "id = ?", entityID).Error
	case "staff_leave":
		return database.DB.Delete(&models.StaffLeave{}, "id = ?", entityID).Error
	case "expense_category":
		return database.DB.Delete(&models.ExpenseCategory{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("bilinmeyen veya geri alınamayan entity tipi: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "collection":
		var col models.Collection
		if err := json.Unmarshal([]byte(dataJSON), &col); err != nil {
			return err
		}
		col.ID = 0
		return database.DB.Create(&col).Error

	case "doctor":
		var doc models.Doctor
		if err := json.Unmarshal([]byte(dataJSON), &doc); err != nil {
			return err
		}
		doc.ID = 0
		return database.DB.Create(&doc).Error

	case "staff":
		var st models.Staff
		if err := json.Unmarshal([]byte(dataJSON), &st); err != nil {
			return err
		}
		st.ID = 0
		return database.DB.Create(&st).Error

	case "staff_leave":
		var leave models.StaffLeave
		if err := json.Unmarshal([]byte(dataJSON), &leave); err != nil {
			return err
		}
		leave.ID = 0
		return database.DB.Create(&leave).Error

	case "expense_category":
		var cat models.ExpenseCategory
		if err := json.Unmarshal([]byte(dataJSON), &cat); err != nil {
			return err
		}
		cat.ID = 0
		return database.DB.Create(&cat).Error

	default:
		return fmt.Errorf("bilinmeyen veya geri alınamayan entity tipi: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "collection":
		var col models.Collection
		if err := json.Unmarshal([]byte(dataJSON), &col); err != nil {
			return err
		}
		return database.DB.Model(&models.Collection{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"branch_id":      col.BranchID,
			"doctor_id":      col.DoctorID,
			"patient_id":     col.PatientID,
			"patient_name":   col.PatientName,
			"amount":         col.Amount,
			"payment_method": col.PaymentMethod,
			"date":           col.Date,
		}).Error

	case "doctor":
		var doc models.Doctor
		if err := json.Unmarshal([]byte(dataJSON), &doc); err != nil {
			return err
		}
		return database.DB.Model(&models.Doctor{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"branch_id":       doc.BranchID,
			"first_name":      doc.FirstName,
			"last_name":       doc.LastName,
			"specialty":       doc.Specialty,
			"commission_rate": doc.CommissionRate,
			"is_active":       doc.IsActive,
		}).Error

	case "staff":
		var st models.Staff
		if err := json.Unmarshal([]byte(dataJSON), &st); err != nil {
			return err
		}
		return database.DB.Model(&models.Staff{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"branch_id":  st.BranchID,
			"first_name": st.FirstName,
			"last_name":  st.LastName,
			"position":   st.Position,
			"phone":      st.Phone,
			"email":      st.Email,
			"hire_date":  st.HireDate,
			"is_active":  st.IsActive,
		}).Error

	case "staff_leave":
		var leave models.StaffLeave
		if err := json.Unmarshal([]byte(dataJSON), &leave); err != nil {
			return err
		}
		return database.DB.Model(&models.StaffLeave{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"staff_id":    leave.StaffID,
			"type":        leave.Type,
			"start_date":  leave.StartDate,
			"end_date":    leave.EndDate,
			"days":        leave.Days,
			"description": leave.Description,
		}).Error

	case "expense_category":
		var cat models.ExpenseCategory
		if err := json.Unmarshal([]byte(dataJSON), &cat); err != nil {
			return err
		}
		return database.DB.Model(&models.ExpenseCategory{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name": cat.Name,
		}).Error

	default:
		return fmt.Errorf("bilinmeyen veya geri alınamayan entity tipi: %s", entityType)
	}
}
