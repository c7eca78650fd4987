package api

// ScoreRequest scores one candidate/job pair without touching storage.
// Missing embeddings are computed from the texts.
type ScoreRequest struct {
	CandidateText       string    `json:"candidate_text"`
	CandidateEmbedding  []float64 `json:"candidate_embedding,omitempty"`
	JobText             string    `json:"job_text"`
	JobEmbedding        []float64 `json:"job_embedding,omitempty"`
	CandidateSkills     []string  `json:"candidate_skills"`
	JobSkills           []string  `json:"job_skills"`
	CandidateExperience *int      `json:"candidate_experience_years" binding:"omitempty,min=0"`
	JobMinExperience    *int      `json:"job_min_experience" binding:"omitempty,min=0"`
	CandidateLocation   string    `json:"candidate_location"`
	JobLocation         string    `json:"job_location"`
	SameLocation        *bool     `json:"same_location,omitempty"` // overrides the location comparison
}

type EmbeddingsRequest struct {
	Texts []string `json:"texts" binding:"required,min=1,max=256"`
}

type ApplyRequest struct {
	SeekerID    string `json:"seeker_id" binding:"required"`
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type RankRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CandidateQuery are the query parameters of a candidate search.
type CandidateQuery struct {
	Text          string `form:"q"`
	Skills        string `form:"skills"` // comma separated
	Location      string `form:"location"`
	MinExperience *int   `form:"min_experience" binding:"omitempty,min=0"`
}

// JobQuery are the query parameters of a posting search.
type JobQuery struct {
	Text           string `form:"q"`
	Location       string `form:"location"`
	EmploymentType string `form:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
}
