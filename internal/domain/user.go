package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleReviewer  Role = "REVIEWER"
	RoleAuthor    Role = "AUTHOR"
	RoleAttendee  Role = "ATTENDEE"
)

func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleOrganizer, RoleReviewer, RoleAuthor, RoleAttendee:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
