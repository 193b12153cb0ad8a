package models

import "time"

type UserRole string

const (
	RoleSuperAdmin  UserRole = "super_admin"  // tüm şubeler
	RoleBranchAdmin UserRole = "branch_admin" // kendi şubesiyle sınırlı
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	BranchID     *uint // super_admin için boş
	Branch       *Branch
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
