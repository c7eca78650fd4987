package matching

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
)

// EmbedTexts embeds a batch of texts, on the batcher's pool when one is set.
func (s *Service) EmbedTexts(ctx context.Context, texts []string) ([]embedding.Vector, error) {
	if s.batcher != nil {
		return s.batcher.EmbedBatch(ctx, texts)
	}
	return s.embedder.EmbedTexts(ctx, texts)
}

// ReembedCandidates recomputes every candidate embedding, for example after
// switching embedding providers. It returns the number of candidates stored.
func (s *Service) ReembedCandidates(ctx context.Context, progress func(current, total int, message string)) (int, error) {
	candidates, err := s.stores.Candidates.List(ctx)
	if err != nil {
		return 0, err
	}
	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.ResumeText
	}
	vectors, err := s.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding candidates: %w", err)
	}

	stored := 0
	for i, c := range candidates {
		ok, err := s.storeCandidateEmbedding(ctx, c.ID, texts[i], vectors[i])
		if err != nil {
			return stored, err
		}
		if ok {
			stored++
		}
		report(progress, i+1, len(candidates), "re-embedded candidate")
	}
	s.logger.Info("candidates re-embedded", zap.Int("count", stored))
	return stored, nil
}

// ReembedJobs recomputes every posting embedding.
func (s *Service) ReembedJobs(ctx context.Context, progress func(current, total int, message string)) (int, error) {
	jobs, err := s.stores.Jobs.List(ctx)
	if err != nil {
		return 0, err
	}
	texts := make([]string, len(jobs))
	for i, j := range jobs {
		texts[i] = j.EmbeddingText()
	}
	vectors, err := s.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding job postings: %w", err)
	}

	stored := 0
	for i, j := range jobs {
		ok, err := s.storeJobEmbedding(ctx, j.ID, texts[i], vectors[i])
		if err != nil {
			return stored, err
		}
		if ok {
			stored++
		}
		report(progress, i+1, len(jobs), "re-embedded job posting")
	}
	s.logger.Info("job postings re-embedded", zap.Int("count", stored))
	return stored, nil
}

// storeCandidateEmbedding sets the embedding on the current stored profile.
// It skips profiles deleted since listing or whose resume no longer matches
// the embedded text; the edit that changed it embedded the new text.
func (s *Service) storeCandidateEmbedding(ctx context.Context, id, text string, vec embedding.Vector) (bool, error) {
	unlock := s.locks.Lock(candidateKey(id))
	defer unlock()

	c, err := s.stores.Candidates.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	if c.ResumeText != text {
		return false, nil
	}
	c.Embedding = nonZero(vec)
	if err := s.stores.Candidates.Put(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

// storeJobEmbedding is storeCandidateEmbedding for postings.
func (s *Service) storeJobEmbedding(ctx context.Context, id, text string, vec embedding.Vector) (bool, error) {
	unlock := s.locks.Lock(jobKey(id))
	defer unlock()

	j, err := s.stores.Jobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			return false, nil
		}
		return false, err
	}
	if j.EmbeddingText() != text {
		return false, nil
	}
	j.Embedding = nonZero(vec)
	if err := s.stores.Jobs.Put(ctx, j); err != nil {
		return false, err
	}
	return true, nil
}

func nonZero(v embedding.Vector) []float64 {
	if embedding.IsZero(v) {
		return nil
	}
	return v
}

func report(progress func(int, int, string), current, total int, message string) {
	if progress != nil {
		progress(current, total, message)
	}
}
