package ledger

import (
	"errors"
	"fmt"

	"klinik-backend/internal/models"

	"gorm.io/gorm"
)

// AddMovement: Hareketi kaydeder ve yürüyen bakiyeyi artımlı günceller.
// tx olarak database.DB veya açık bir transaction verilebilir; prim ve
// maaş kayıtları hareketle aynı transaction içinde işlenir.
func AddMovement(tx *gorm.DB, mov *models.AccountMovement) error {
	var acct models.Account
	if err := tx.First(&acct, "id = ?", mov.AccountID).Error; err != nil {
		return fmt.Errorf("cari hesap bulunamadı: %w", err)
	}

	mov.Balance = acct.Balance + mov.Credit - mov.Debit

	if err := tx.Create(mov).Error; err != nil {
		return fmt.Errorf("cari hareket kaydedilemedi: %w", err)
	}

	if err := tx.Model(&models.Account{}).Where("id = ?", acct.ID).
		Update("balance", mov.Balance).Error; err != nil {
		return fmt.Errorf("bakiye güncellenemedi: %w", err)
	}

	return nil
}

// RecalculateBalance: Hesabın tüm hareketlerini tarih sırasına göre
// (aynı tarihte kayıt sırasına göre) baştan yürütür. Araya tarih atılmış
// düzeltme, hareket güncelleme ve silme sonrasında çağrılır.
func RecalculateBalance(tx *gorm.DB, accountID uint) error {
	var movs []models.AccountMovement
	if err := tx.Where("account_id = ?", accountID).
		Order("date asc, id asc").
		Find(&movs).Error; err != nil {
		return fmt.Errorf("hareketler okunamadı: %w", err)
	}

	changed := applyRunningBalances(movs)
	for _, m := range changed {
		if err := tx.Model(&models.AccountMovement{}).
			Where("id = ?", m.ID).
			Update("balance", m.Balance).Error; err != nil {
			return fmt.Errorf("hareket bakiyesi güncellenemedi: %w", err)
		}
	}

	running := 0.0
	if len(movs) > 0 {
		running = movs[len(movs)-1].Balance
	}

	if err := tx.Model(&models.Account{}).Where("id = ?", accountID).
		Update("balance", running).Error; err != nil {
		return fmt.Errorf("hesap bakiyesi güncellenemedi: %w", err)
	}

	return nil
}

// applyRunningBalances: Sıralı hareket listesinde yürüyen bakiyeyi
// yeniden kurar, bakiyesi değişen hareketleri döndürür.
func applyRunningBalances(movs []models.AccountMovement) []models.AccountMovement {
	running := 0.0
	var changed []models.AccountMovement
	for i := range movs {
		running += movs[i].Credit - movs[i].Debit
		if movs[i].Balance != running {
			movs[i].Balance = running
			changed = append(changed, movs[i])
		}
	}
	return changed
}

// RemoveCommissionMovements: Prim silinirken primin ürettiği cari
// hareketleri kaldırır ve etkilenen hesapları yeniden hesaplar.
func RemoveCommissionMovements(tx *gorm.DB, commissionID uint) error {
	var movs []models.AccountMovement
	if err := tx.Where("commission_id = ?", commissionID).Find(&movs).Error; err != nil {
		return fmt.Errorf("prim hareketleri okunamadı: %w", err)
	}
	if len(movs) == 0 {
		return nil
	}

	if err := tx.Where("commission_id = ?", commissionID).
		Delete(&models.AccountMovement{}).Error; err != nil {
		return fmt.Errorf("prim hareketleri silinemedi: %w", err)
	}

	seen := map[uint]bool{}
	for _, m := range movs {
		if seen[m.AccountID] {
			continue
		}
		seen[m.AccountID] = true
		if err := RecalculateBalance(tx, m.AccountID); err != nil {
			return err
		}
	}

	return nil
}

// ActiveDoctorAccount: Hekim+şube için aktif cari eşleştirmesini döndürür.
// Eşleştirme yoksa (nil, nil) döner.
func ActiveDoctorAccount(tx *gorm.DB, doctorID, branchID uint) (*models.Account, error) {
	var link models.DoctorAccountLink
	err := tx.Where("doctor_id = ? AND branch_id = ? AND is_active = ?", doctorID, branchID, true).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hekim cari eşleştirmesi okunamadı: %w", err)
	}

	var acct models.Account
	if err := tx.First(&acct, "id = ?", link.AccountID).Error; err != nil {
		return nil, fmt.Errorf("cari hesap bulunamadı: %w", err)
	}
	return &acct, nil
}

// NextAccountCode: Verilen önek için sıradaki cari kodunu üretir (CH-0001 gibi).
func NextAccountCode(tx *gorm.DB, prefix string) (string, error) {
	var count int64
	if err := tx.Model(&models.Account{}).
		Where("code LIKE ?", prefix+"-%").
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("cari kodu üretilemedi: %w", err)
	}
	return fmt.Sprintf("%s-%04d", prefix, count+1), nil
}
