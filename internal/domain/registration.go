package domain

import "time"

type RegistrationType string

const (
	RegistrationTypeRegular RegistrationType = "REGULAR"
	RegistrationTypeStudent RegistrationType = "STUDENT"
	RegistrationTypeVirtual RegistrationType = "VIRTUAL"
)

type Registration struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userID"`
	Type      RegistrationType `json:"type"`
	IsPaid    bool             `json:"isPaid"`
	BadgeURL  *string          `json:"badgeUrl"`
	CreatedAt time.Time        `json:"createdAt"`
	Version   int32            `json:"-"`
}
