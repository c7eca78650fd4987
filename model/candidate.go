package model

import (
	"strings"
	"time"
)

// Candidate is a job seeker profile.
type Candidate struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name" validate:"required,max=200"`
	Email           string    `json:"email,omitempty" validate:"omitempty,email"`
	Headline        string    `json:"headline,omitempty" validate:"max=300"`
	ResumeText      string    `json:"resume_text,omitempty"`
	Skills          []string  `json:"skills"`
	ExperienceYears *int      `json:"experience_years,omitempty" validate:"omitempty,min=0,max=80"`
	Location        string    `json:"location,omitempty"`
	Embedding       []float64 `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasEmbedding reports whether the profile has been embedded.
func (c *Candidate) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// Document flattens the candidate into searchable fields.
func (c *Candidate) Document() Document {
	doc := Document{
		"documentID":  c.ID,
		"full_name":   c.FullName,
		"headline":    c.Headline,
		"resume_text": c.ResumeText,
		"skills":      lowerAll(c.Skills),
		"location":    strings.ToLower(strings.TrimSpace(c.Location)),
		"created_at":  c.CreatedAt,
	}
	if c.ExperienceYears != nil {
		doc["experience_years"] = float64(*c.ExperienceYears)
	}
	if c.HasEmbedding() {
		doc["embedding"] = c.Embedding
	}
	return doc
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
