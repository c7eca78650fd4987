package model

import (
	"time"
)

// ApplicationStatus tracks where a seeker is in the hiring funnel.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationScreening   ApplicationStatus = "screening"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationOffered     ApplicationStatus = "offered"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a known status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationApplied, ApplicationScreening, ApplicationShortlisted,
		ApplicationInterviewed, ApplicationOffered, ApplicationRejected:
		return true
	}
	return false
}

// Application links a seeker to a posting and records the score at apply time.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	SeekerID    string            `json:"seeker_id"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Scores      *ScoreComponents  `json:"scores,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FinalScore returns the stored final score or 0 when unscored.
func (a *Application) FinalScore() float64 {
	if a.Scores == nil {
		return 0
	}
	return a.Scores.Final
}

// Document flattens the application into filterable fields.
func (a *Application) Document() Document {
	return Document{
		"documentID": a.ID,
		"job_id":     a.JobID,
		"seeker_id":  a.SeekerID,
		"status":     string(a.Status),
		"score":      a.FinalScore(),
		"created_at": a.CreatedAt,
	}
}
