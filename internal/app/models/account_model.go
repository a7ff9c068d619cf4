package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRole string

const (
	AccountRoleConsumer AccountRole = "CONSUMER"
	AccountRoleMerchant AccountRole = "MERCHANT"
	AccountRoleAdmin    AccountRole = "ADMIN"
)

type Account struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email       string         `gorm:"uniqueIndex" json:"email"`
	DisplayName string         `json:"display_name"`
	Role        AccountRole    `json:"role"`
	APIKey      string         `gorm:"uniqueIndex" json:"-"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (a *Account) IsMerchant() bool {
	return a.Role == AccountRoleMerchant || a.Role == AccountRoleAdmin
}

func (a *Account) IsAdmin() bool {
	return a.Role == AccountRoleAdmin
}

type AccountCreateRequest struct {
	Email       string      `json:"email" validate:"required,email"`
	DisplayName string      `json:"display_name" validate:"required,max=255"`
	Role        AccountRole `json:"role" validate:"required,oneof=CONSUMER MERCHANT ADMIN"`
}

type AccountUpdateRequest struct {
	DisplayName *string      `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Role        *AccountRole `json:"role,omitempty" validate:"omitempty,oneof=CONSUMER MERCHANT ADMIN"`
}

// AccountProvisionResponse is returned once on account creation. The API key
// is not retrievable afterwards.
type AccountProvisionResponse struct {
	Account *Account `json:"account"`
	APIKey  string   `json:"api_key"`
}
