package matching

import (
	"context"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/model"
	"github.com/ShreekarSeelavantula/career-compass/store"
)

// RankCandidates ranks candidates against a posting, best first. An empty
// candidateIDs ranks every stored candidate. Candidates without an embedding
// are left out.
func (s *Service) RankCandidates(ctx context.Context, jobID string, candidateIDs []string) ([]model.RankedCandidate, error) {
	job, err := s.stores.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var candidates []*model.Candidate
	if len(candidateIDs) == 0 {
		candidates, err = s.stores.Candidates.List(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		for _, id := range candidateIDs {
			c, err := s.stores.Candidates.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, c)
		}
	}
	return s.rank(ctx, job, candidates)
}

// SearchCandidates filters candidates with search, then ranks the matches
// against the posting.
func (s *Service) SearchCandidates(ctx context.Context, jobID string, search retrieval.CandidateSearch) ([]model.RankedCandidate, error) {
	job, err := s.stores.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	results, err := s.stores.Candidates.Query(ctx, retrieval.SearchCandidates(search))
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, job, store.Records(results))
}

func (s *Service) rank(ctx context.Context, job *model.JobPosting, candidates []*model.Candidate) ([]model.RankedCandidate, error) {
	if !job.HasEmbedding() {
		return []model.RankedCandidate{}, nil
	}

	scored := make([]*model.RankedCandidate, len(candidates))
	err := s.fanOut(ctx, len(candidates), func(_ context.Context, i int) error {
		scores, ok, err := s.scorePair(candidates[i], job)
		if err != nil || !ok {
			return err
		}
		scored[i] = &model.RankedCandidate{Candidate: *candidates[i], Scores: scores, MatchScore: scores.MatchScore()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]model.RankedCandidate, 0, len(scored))
	for _, r := range scored {
		if r != nil {
			ranked = append(ranked, *r)
		}
	}
	sortByScore(ranked,
		func(r model.RankedCandidate) float64 { return r.Scores.Final },
		func(r model.RankedCandidate) string { return r.Candidate.ID })
	return ranked, nil
}

// Explain scores one seeker against one posting and describes the result.
func (s *Service) Explain(ctx context.Context, jobID, seekerID string) (model.ScoreExplanation, error) {
	job, err := s.stores.Jobs.Get(ctx, jobID)
	if err != nil {
		return model.ScoreExplanation{}, err
	}
	seeker, err := s.stores.Candidates.Get(ctx, seekerID)
	if err != nil {
		return model.ScoreExplanation{}, err
	}
	if !job.HasEmbedding() {
		return model.ScoreExplanation{}, apperrors.NewValidationError("job", "posting has no embedding")
	}
	if !seeker.HasEmbedding() {
		return model.ScoreExplanation{}, apperrors.NewValidationError("candidate", "candidate has no resume embedding")
	}
	return s.ranker.Explain(scoreInput(seeker, job))
}
