package domain

import "time"

// User holds the account credentials plus the profile attributes extracted
// from the resume uploaded at registration, if any.
type User struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	Email            string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"size:255;not null" json:"-"`
	Name             string     `gorm:"size:255" json:"name"`
	Skills           StringList `gorm:"type:json" json:"skills"`
	Education        string     `gorm:"size:255" json:"education"`
	Experience       string     `gorm:"size:255" json:"experience"`
	Responsibilities string     `gorm:"type:text" json:"responsibilities"`
	CreatedAt        time.Time  `json:"created_at"`
}
