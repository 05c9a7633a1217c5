package domain

import "time"

// Match records the outcome of scoring one job description against one
// resume. References are by id only and multiple matches may exist for the
// same pair.
type Match struct {
	ID                      uint       `gorm:"primaryKey" json:"-"`
	JobDescID               string     `gorm:"size:64;not null" json:"job_desc_id"`
	ResumeID                string     `gorm:"size:64;not null" json:"resume_id"`
	MatchScore              float64    `json:"match_score"`
	MatchedSkills           StringList `gorm:"type:json" json:"matched_skills"`
	MissingSkills           StringList `gorm:"type:json" json:"missing_skills"`
	MatchedResponsibilities StringList `gorm:"type:json" json:"matched_responsibilities"`
	MissingResponsibilities StringList `gorm:"type:json" json:"missing_responsibilities"`
	JobEducation            string     `gorm:"size:255" json:"job_education"`
	ResumeEducation         string     `gorm:"size:255" json:"resume_education"`
	EducationMatch          bool       `json:"education_match"`
	Feedback                string     `gorm:"type:text" json:"feedback"`
	CreatedAt               time.Time  `json:"created_at"`
}
