package domain

import "time"

// JobDescription is created once at upload time and never modified.
type JobDescription struct {
	ID                uint       `gorm:"primaryKey" json:"-"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	Description       string     `gorm:"type:longtext;not null" json:"description"`
	RequiredSkills    StringList `gorm:"type:json" json:"required_skills"`
	Education         string     `gorm:"size:255" json:"education"`
	Responsibilities  string     `gorm:"type:text" json:"responsibilities"`
	YearsOfExperience string     `gorm:"size:255" json:"years_of_experience"`
	FileName          string     `gorm:"size:255" json:"file"`
	CreatedAt         time.Time  `json:"created_at"`
}
