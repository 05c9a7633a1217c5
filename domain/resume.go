package domain

import "time"

// Resume holds the attributes extracted from an uploaded resume PDF plus the
// raw text the extraction ran over. Created once at upload time.
type Resume struct {
	ID               uint       `gorm:"primaryKey" json:"-"`
	Name             string     `gorm:"size:255" json:"name"`
	Skills           StringList `gorm:"type:json" json:"skills"`
	Education        string     `gorm:"size:255" json:"education"`
	Experience       string     `gorm:"size:255" json:"experience"`
	Responsibilities string     `gorm:"type:text" json:"responsibilities"`
	RawText          string     `gorm:"type:longtext" json:"-"`
	FileName         string     `gorm:"size:255" json:"file"`
	CreatedAt        time.Time  `json:"created_at"`
}
