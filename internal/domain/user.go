package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, true
	}
	return "", false
}

type User struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Email     string     `gorm:"size:140;uniqueIndex" json:"email"`
	FirstName string     `gorm:"size:80" json:"first_name"`
	LastName  string     `gorm:"size:80" json:"last_name"`
	Avatar    string     `gorm:"size:255" json:"avatar,omitempty"`
	Role      Role       `gorm:"type:varchar(10);not null" json:"role"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
