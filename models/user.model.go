package models

import "gorm.io/gorm"

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAssessor   = "ASSESSOR"
	RoleAdmin      = "ADMIN"
)

// User represents a platform account (student, instructor, assessor or admin)
type User struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role" gorm:"default:'STUDENT'"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	IsDeleted bool   `gorm:"default:false"`
}
