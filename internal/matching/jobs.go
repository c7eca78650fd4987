package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/model"
	"github.com/ShreekarSeelavantula/career-compass/store"
)

// Fields a posting patch may change.
var patchableFields = map[string]bool{
	"title":           true,
	"description":     true,
	"company":         true,
	"location":        true,
	"employment_type": true,
	"skills_required": true,
	"min_experience":  true,
	"salary_min":      true,
	"salary_max":      true,
	"status":          true,
}

// changing any of these invalidates the embedding
var embeddedFields = []string{"title", "description", "skills_required"}

// CreateJobPosting validates, embeds and stores a new posting. Postings
// without a status are opened.
func (s *Service) CreateJobPosting(ctx context.Context, j *model.JobPosting) (*model.JobPosting, error) {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	j.Location = strings.TrimSpace(j.Location)
	if j.Status == "" {
		j.Status = model.JobPostingOpen
	}
	if j.SkillsRequired == nil {
		j.SkillsRequired = []string{}
	}
	if err := s.validatePosting(j); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	j.ID = uuid.New().String()
	j.CreatedAt = now
	j.UpdatedAt = now

	vec, err := s.embed(ctx, j.EmbeddingText())
	if err != nil {
		return nil, err
	}
	j.Embedding = vec

	if err := s.stores.Jobs.Put(ctx, j); err != nil {
		return nil, err
	}
	s.logger.Debug("job posting created", zap.String(logger.FieldJobID, j.ID))
	return j, nil
}

func (s *Service) validatePosting(j *model.JobPosting) error {
	if err := s.validateStruct(j); err != nil {
		return err
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMax < *j.SalaryMin {
		return apperrors.NewValidationError("salary_max", "must not be below salary_min")
	}
	return nil
}

func (s *Service) GetJobPosting(ctx context.Context, id string) (*model.JobPosting, error) {
	return s.stores.Jobs.Get(ctx, id)
}

// UpdateJobPosting applies patch to a posting. Unknown keys are ignored; a
// patch with no known key is rejected. The posting is re-embedded when its
// title, description or skills change.
func (s *Service) UpdateJobPosting(ctx context.Context, id string, patch map[string]any) (*model.JobPosting, error) {
	unlock := s.locks.Lock(jobKey(id))
	defer unlock()

	job, err := s.stores.Jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]any, len(patch))
	for key, value := range patch {
		if patchableFields[key] {
			allowed[key] = value
		}
	}
	if len(allowed) == 0 {
		return nil, apperrors.NewValidationError("", "no fields to update")
	}

	updated := *job
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &updated,
		WeaklyTypedInput: true,
		// replace slices instead of merging element-wise; null clears a field
		ZeroFields: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(allowed); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	updated.Title = strings.TrimSpace(updated.Title)
	updated.Company = strings.TrimSpace(updated.Company)
	updated.Location = strings.TrimSpace(updated.Location)
	if updated.Status == "" {
		updated.Status = job.Status
	}
	if updated.SkillsRequired == nil {
		updated.SkillsRequired = []string{}
	}
	if err := s.validatePosting(&updated); err != nil {
		return nil, err
	}

	for _, field := range embeddedFields {
		if _, ok := allowed[field]; ok {
			vec, err := s.embed(ctx, updated.EmbeddingText())
			if err != nil {
				return nil, err
			}
			updated.Embedding = vec
			break
		}
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.stores.Jobs.Put(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteJobPosting removes a posting and its applications.
func (s *Service) DeleteJobPosting(ctx context.Context, id string) error {
	if err := s.stores.Jobs.Delete(ctx, id); err != nil {
		return err
	}
	results, err := s.stores.Applications.Query(ctx, retrieval.ApplicationsByJob(id))
	if err != nil {
		return err
	}
	for _, app := range store.Records(results) {
		if err := s.stores.Applications.Delete(ctx, app.ID); err != nil {
			return err
		}
	}
	return nil
}

// JobsByRecruiter lists a recruiter's postings, newest first.
func (s *Service) JobsByRecruiter(ctx context.Context, recruiterID string) ([]*model.JobPosting, error) {
	results, err := s.stores.Jobs.Query(ctx, retrieval.JobsByRecruiter(recruiterID))
	if err != nil {
		return nil, err
	}
	return store.Records(results), nil
}

// SearchJobs runs a posting search. When seekerID names a candidate with an
// embedding, every embedded result carries that candidate's scores; the
// retrieval order is kept either way.
func (s *Service) SearchJobs(ctx context.Context, seekerID string, search retrieval.JobSearch) ([]model.RankedJob, error) {
	var seeker *model.Candidate
	if seekerID != "" {
		c, err := s.stores.Candidates.Get(ctx, seekerID)
		if err != nil {
			return nil, err
		}
		seeker = c
	}

	results, err := s.stores.Jobs.Query(ctx, retrieval.SearchJobs(search))
	if err != nil {
		return nil, err
	}

	ranked := make([]model.RankedJob, len(results))
	for i, r := range results {
		ranked[i] = model.RankedJob{Job: *r.Record}
	}
	if seeker == nil || !seeker.HasEmbedding() {
		return ranked, nil
	}

	err = s.fanOut(ctx, len(ranked), func(_ context.Context, i int) error {
		scores, ok, err := s.scorePair(seeker, &ranked[i].Job)
		if err != nil || !ok {
			return err
		}
		match := scores.MatchScore()
		ranked[i].Scores = &scores
		ranked[i].MatchScore = &match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

// RecommendJobs returns the best open postings for a seeker. Seekers without
// an embedding get the most recent postings, unscored.
func (s *Service) RecommendJobs(ctx context.Context, seekerID string) ([]model.RankedJob, error) {
	seeker, err := s.stores.Candidates.Get(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	results, err := s.stores.Jobs.Query(ctx, retrieval.OpenJobs())
	if err != nil {
		return nil, err
	}
	jobs := store.Records(results)

	if !seeker.HasEmbedding() {
		if len(jobs) > s.recommendationLimit {
			jobs = jobs[:s.recommendationLimit]
		}
		ranked := make([]model.RankedJob, len(jobs))
		for i, j := range jobs {
			ranked[i] = model.RankedJob{Job: *j}
		}
		return ranked, nil
	}

	scored := make([]*model.RankedJob, len(jobs))
	err = s.fanOut(ctx, len(jobs), func(_ context.Context, i int) error {
		scores, ok, err := s.scorePair(seeker, jobs[i])
		if err != nil || !ok {
			return err
		}
		match := scores.MatchScore()
		scored[i] = &model.RankedJob{Job: *jobs[i], Scores: &scores, MatchScore: &match}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]model.RankedJob, 0, len(scored))
	for _, r := range scored {
		if r != nil {
			ranked = append(ranked, *r)
		}
	}
	sortByScore(ranked,
		func(r model.RankedJob) float64 { return r.Scores.Final },
		func(r model.RankedJob) string { return r.Job.ID })
	if len(ranked) > s.recommendationLimit {
		ranked = ranked[:s.recommendationLimit]
	}
	return ranked, nil
}
