package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a customer account. Email is the sole login identifier,
// there is no separate username.
type User struct {
	BaseModel
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName    string      `gorm:"type:varchar(30)" json:"first_name"`
	LastName     string      `gorm:"type:varchar(30)" json:"last_name"`
	PhoneNumber  string      `gorm:"type:varchar(20)" json:"phone_number"`
	Country      string      `gorm:"type:varchar(50)" json:"country"`
	Avatar       string      `gorm:"type:varchar(255)" json:"avatar"`
	IsStaff      bool        `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool        `gorm:"default:false" json:"is_superuser"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	RoleID       *uint       `gorm:"index" json:"role_id"`
	Role         *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Privileges   []Privilege `gorm:"many2many:user_privileges;" json:"privileges,omitempty"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasPrivilege checks if the user has a specific privilege
func (u *User) HasPrivilege(code string) bool {
	for _, p := range u.Privileges {
		if p.Code == code {
			return true
		}
	}
	return false
}

// GetPrivilegeCodes returns a slice of all privilege codes for this user
func (u *User) GetPrivilegeCodes() []string {
	codes := make([]string, len(u.Privileges))
	for i, p := range u.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	PhoneNumber string      `json:"phone_number"`
	Country     string      `json:"country"`
	Avatar      string      `json:"avatar"`
	IsStaff     bool        `json:"is_staff"`
	IsActive    bool        `json:"is_active"`
	RoleID      *uint       `json:"role_id,omitempty"`
	Role        *Role       `json:"role,omitempty"`
	Privileges  []Privilege `json:"privileges"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Country:     u.Country,
		Avatar:      u.Avatar,
		IsStaff:     u.IsStaff,
		IsActive:    u.IsActive,
		RoleID:      u.RoleID,
		Role:        u.Role,
		Privileges:  u.Privileges,
	}
}
