package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/model"
	"github.com/ShreekarSeelavantula/career-compass/store"
)

// Apply records a seeker's application to an open posting along with the
// score at apply time. Unscorable pairs are stored with zero scores.
func (s *Service) Apply(ctx context.Context, jobID, seekerID, coverLetter string) (*model.Application, error) {
	job, err := s.stores.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsOpen() {
		return nil, apperrors.NewJobClosedError(jobID, string(job.Status))
	}
	seeker, err := s.stores.Candidates.Get(ctx, seekerID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(applyKey(jobID, seekerID))
	defer unlock()

	existing, err := s.stores.Applications.Query(ctx, retrieval.ApplicationByJobAndSeeker(jobID, seekerID))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.NewAlreadyAppliedError(jobID, seekerID)
	}

	scores, _, err := s.scorePair(seeker, job)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	app := &model.Application{
		ID:          uuid.New().String(),
		JobID:       jobID,
		SeekerID:    seekerID,
		Status:      model.ApplicationApplied,
		CoverLetter: strings.TrimSpace(coverLetter),
		Scores:      &scores,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stores.Applications.Put(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("application received",
		zap.String(logger.FieldJobID, jobID),
		zap.String(logger.FieldCandidateID, seekerID),
		zap.Float64("final", scores.Final))
	return app, nil
}

// ApplicationsForJob lists a posting's applications, best final score first
// and by id among equals.
func (s *Service) ApplicationsForJob(ctx context.Context, jobID string) ([]*model.Application, error) {
	if _, err := s.stores.Jobs.Get(ctx, jobID); err != nil {
		return nil, err
	}
	results, err := s.stores.Applications.Query(ctx, retrieval.ApplicationsByJob(jobID))
	if err != nil {
		return nil, err
	}
	return store.Records(results), nil
}

// ApplicationsForSeeker lists a seeker's applications, newest first.
func (s *Service) ApplicationsForSeeker(ctx context.Context, seekerID string) ([]*model.Application, error) {
	results, err := s.stores.Applications.Query(ctx, retrieval.ApplicationsBySeeker(seekerID))
	if err != nil {
		return nil, err
	}
	return store.Records(results), nil
}

func (s *Service) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error) {
	if !model.ValidApplicationStatus(status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("invalid status '%s'", status))
	}
	unlock := s.locks.Lock(applicationKey(id))
	defer unlock()

	app, err := s.stores.Applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Status = status
	app.UpdatedAt = s.now().UTC()
	if err := s.stores.Applications.Put(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// RerankApplications recomputes and stores the scores of every application
// to a posting, reporting progress after each one. It returns the number of
// applications updated. Applications whose seeker is gone are skipped.
func (s *Service) RerankApplications(ctx context.Context, jobID string, progress func(current, total int, message string)) (int, error) {
	job, err := s.stores.Jobs.Get(ctx, jobID)
	if err != nil {
		return 0, err
	}
	apps, err := s.ApplicationsForJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if progress == nil {
		progress = func(int, int, string) {}
	}

	total := len(apps)
	updated := make([]bool, total)
	done := make(chan struct{}, total)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for i := 1; i <= total; i++ {
			if _, ok := <-done; !ok {
				return
			}
			progress(i, total, "reranked application")
		}
	}()

	err = s.fanOut(ctx, total, func(ctx context.Context, i int) error {
		defer func() { done <- struct{}{} }()

		seeker, err := s.stores.Candidates.Get(ctx, apps[i].SeekerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrDocumentNotFound) {
				return nil
			}
			return err
		}
		scores, _, err := s.scorePair(seeker, job)
		if err != nil {
			return err
		}
		ok, err := s.storeScores(ctx, apps[i].ID, scores)
		updated[i] = ok
		return err
	})
	close(done)
	<-progressDone
	if err != nil {
		return 0, err
	}

	count := 0
	for _, ok := range updated {
		if ok {
			count++
		}
	}
	s.logger.Info("applications reranked", zap.String(logger.FieldJobID, jobID), zap.Int("count", count))
	return count, nil
}

// storeScores writes scores onto the current stored application, leaving
// fields changed since it was listed intact. It reports false when the
// application has been deleted.
func (s *Service) storeScores(ctx context.Context, id string, scores model.ScoreComponents) (bool, error) {
	unlock := s.locks.Lock(applicationKey(id))
	defer unlock()

	app, err := s.stores.Applications.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	app.Scores = &scores
	app.UpdatedAt = s.now().UTC()
	if err := s.stores.Applications.Put(ctx, app); err != nil {
		return false, err
	}
	return true, nil
}
