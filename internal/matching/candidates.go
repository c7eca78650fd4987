package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/internal/extraction"
	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// UpsertCandidate validates and stores a profile. Skills and experience
// missing from the profile are read from the resume text, which is then
// embedded. A profile without resume text is stored without an embedding.
func (s *Service) UpsertCandidate(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Location = strings.TrimSpace(c.Location)
	if err := s.validateStruct(c); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	existingID := c.ID != ""
	if !existingID {
		c.ID = uuid.New().String()
	}
	unlock := s.locks.Lock(candidateKey(c.ID))
	defer unlock()

	c.CreatedAt = now
	if existingID {
		if existing, err := s.stores.Candidates.Get(ctx, c.ID); err == nil {
			c.CreatedAt = existing.CreatedAt
		}
	}
	c.UpdatedAt = now

	if strings.TrimSpace(c.ResumeText) != "" {
		profile := extraction.Parse(c.ResumeText, now)
		if len(c.Skills) == 0 {
			c.Skills = profile.Skills
		}
		if c.ExperienceYears == nil {
			c.ExperienceYears = profile.ExperienceYears
		}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}

	vec, err := s.embed(ctx, c.ResumeText)
	if err != nil {
		return nil, err
	}
	c.Embedding = vec

	if err := s.stores.Candidates.Put(ctx, c); err != nil {
		return nil, err
	}
	s.corpus.Put(c.ID, c.ResumeText)

	s.logger.Debug("candidate stored",
		zap.String(logger.FieldCandidateID, c.ID),
		zap.Int("skills", len(c.Skills)),
		zap.Bool("embedded", c.HasEmbedding()))
	return c, nil
}

func (s *Service) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	return s.stores.Candidates.Get(ctx, id)
}

// DeleteCandidate removes the profile and its applications.
func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	if err := s.stores.Candidates.Delete(ctx, id); err != nil {
		return err
	}
	s.corpus.Remove(id)

	apps, err := s.ApplicationsForSeeker(ctx, id)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if err := s.stores.Applications.Delete(ctx, app.ID); err != nil {
			return err
		}
	}
	return nil
}
