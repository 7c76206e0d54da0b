package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminModel struct {
	AdminID        uuid.UUID `json:"admin_id"         gorm:"column:admin_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AdminUsername  string    `json:"admin_username"   gorm:"column:admin_username;type:varchar(50);not null;uniqueIndex:uq_admins_username"`
	AdminPassword  string    `json:"-"                gorm:"column:admin_password;type:text;not null"`
	AdminName      string    `json:"admin_name"       gorm:"column:admin_name;type:text;not null"`
	AdminRole      string    `json:"admin_role"       gorm:"column:admin_role;type:varchar(20);not null;default:'admin'"`
	AdminCreatedAt time.Time `json:"admin_created_at" gorm:"column:admin_created_at;type:timestamptz;not null;autoCreateTime"`
	AdminUpdatedAt time.Time `json:"admin_updated_at" gorm:"column:admin_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (AdminModel) TableName() string {
	return "admins"
}

// BeforeSave meng-hash password plain text; hash bcrypt yang sudah ada dibiarkan.
func (a *AdminModel) BeforeSave(tx *gorm.DB) error {
	return a.HashPassword()
}

func (a *AdminModel) HashPassword() error {
	if a.AdminPassword == "" || IsBcryptHash(a.AdminPassword) {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(a.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.AdminPassword = string(hashed)
	return nil
}

func (a *AdminModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.AdminPassword), []byte(plain)) == nil
}

func IsBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
