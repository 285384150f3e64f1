package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole defines the role of a user
type UserRole string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"
)

// User is the stored user model. Users sign in via the OTP email flow,
// so there is no password column.
type User struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email       string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"type:varchar(255)"`
	Role        UserRole   `json:"role" gorm:"type:varchar(20);default:'member'"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User entity
func NewUser(email, name string) *User {
	return &User{
		ID:    uuid.New(),
		Email: email,
		Name:  name,
		Role:  UserRoleMember,
	}
}
