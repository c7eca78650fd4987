package model

import (
	"strings"
	"time"
)

// JobPostingStatus is the lifecycle state of a posting.
type JobPostingStatus string

const (
	JobPostingOpen   JobPostingStatus = "open"
	JobPostingClosed JobPostingStatus = "closed"
	JobPostingDraft  JobPostingStatus = "draft"
)

// EmploymentType values accepted on postings.
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// JobPosting is an open role published by a recruiter.
type JobPosting struct {
	ID             string           `json:"id"`
	RecruiterID    string           `json:"recruiter_id,omitempty"`
	Title          string           `json:"title" validate:"required,max=200"`
	Description    string           `json:"description" validate:"required"`
	Company        string           `json:"company" validate:"required,max=200"`
	Location       string           `json:"location,omitempty"`
	EmploymentType string           `json:"employment_type,omitempty" validate:"omitempty,oneof=full_time part_time contract internship"`
	SkillsRequired []string         `json:"skills_required"`
	MinExperience  *int             `json:"min_experience,omitempty" validate:"omitempty,min=0,max=50"`
	SalaryMin      *int             `json:"salary_min,omitempty" validate:"omitempty,min=0"`
	SalaryMax      *int             `json:"salary_max,omitempty" validate:"omitempty,min=0"`
	Status         JobPostingStatus `json:"status" validate:"omitempty,oneof=open closed draft"`
	Embedding      []float64        `json:"-"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// HasEmbedding reports whether the posting has been embedded.
func (j *JobPosting) HasEmbedding() bool {
	return len(j.Embedding) > 0
}

// IsOpen reports whether the posting accepts applications.
func (j *JobPosting) IsOpen() bool {
	return j.Status == JobPostingOpen
}

// EmbeddingText is the text a posting is embedded from.
func (j *JobPosting) EmbeddingText() string {
	return strings.Join([]string{j.Title, j.Description, strings.Join(j.SkillsRequired, " ")}, " ")
}

// ScoringText is the text candidates are lexically scored against.
func (j *JobPosting) ScoringText() string {
	return j.Title + " " + j.Description
}

// Document flattens the posting into searchable fields.
func (j *JobPosting) Document() Document {
	doc := Document{
		"documentID":      j.ID,
		"recruiter_id":    j.RecruiterID,
		"title":           j.Title,
		"description":     j.Description,
		"company":         j.Company,
		"location":        strings.ToLower(strings.TrimSpace(j.Location)),
		"employment_type": j.EmploymentType,
		"skills_required": lowerAll(j.SkillsRequired),
		"status":          string(j.Status),
		"created_at":      j.CreatedAt,
	}
	if j.MinExperience != nil {
		doc["min_experience"] = float64(*j.MinExperience)
	}
	if j.HasEmbedding() {
		doc["embedding"] = j.Embedding
	}
	return doc
}
