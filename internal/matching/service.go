// Package matching ties storage, embeddings and the ranking core together:
// it keeps candidate and posting embeddings current and ranks one side of the
// market against the other.
package matching

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ShreekarSeelavantula/career-compass/index"
	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
	"github.com/ShreekarSeelavantula/career-compass/internal/ranking"
	"github.com/ShreekarSeelavantula/career-compass/model"
	"github.com/ShreekarSeelavantula/career-compass/store"
)

const (
	DefaultConcurrency         = 8
	DefaultTimeout             = 30 * time.Second
	DefaultRecommendationLimit = 10
)

// Service is the matching orchestration layer. It is safe for concurrent use.
type Service struct {
	stores   *store.Stores
	embedder embedding.Embedder
	batcher  *embedding.Batcher
	ranker   *ranking.Service
	corpus   *index.InvertedIndex
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
	locks    keyedMutex

	concurrency         int
	timeout             time.Duration
	recommendationLimit int
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logger.OrNop(l) }
}

// WithConcurrency bounds how many pairs are scored at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTimeout bounds a whole scoring batch.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithRecommendationLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recommendationLimit = n
		}
	}
}

// WithBatcher embeds bulk re-embedding work on the batcher's pool instead of
// sequentially through the embedder.
func WithBatcher(b *embedding.Batcher) Option {
	return func(s *Service) { s.batcher = b }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the layer together. The embedder must produce vectors of
// the dimension the ranker expects.
func NewService(stores *store.Stores, embedder embedding.Embedder, ranker *ranking.Service, opts ...Option) (*Service, error) {
	if embedder.Dimension() != ranker.EmbeddingDimension() {
		return nil, apperrors.NewConfigurationError("embedding_dimension",
			fmt.Sprintf("embedder produces %d dimensions but ranking expects %d", embedder.Dimension(), ranker.EmbeddingDimension()))
	}

	corpus := index.New(ranking.NewBM25Calculator(ranker.Settings()).Tokenizer())
	s := &Service{
		stores:              stores,
		embedder:            embedder,
		ranker:              ranker.WithCorpus(corpus),
		corpus:              corpus,
		validate:            newValidator(),
		logger:              zap.NewNop(),
		now:                 time.Now,
		concurrency:         DefaultConcurrency,
		timeout:             DefaultTimeout,
		recommendationLimit: DefaultRecommendationLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ranker returns the ranking service used for scoring.
func (s *Service) Ranker() *ranking.Service {
	return s.ranker
}

// Embedder returns the embedder used for new documents.
func (s *Service) Embedder() embedding.Embedder {
	return s.embedder
}

// RebuildCorpus reloads resume term statistics from storage and returns the
// number of candidates indexed.
func (s *Service) RebuildCorpus(ctx context.Context) (int, error) {
	candidates, err := s.stores.Candidates.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range candidates {
		s.corpus.Put(c.ID, c.ResumeText)
	}
	s.logger.Info("resume corpus rebuilt", zap.Int("candidates", len(candidates)))
	return len(candidates), nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct reports the first failing field as a *errors.ValidationError.
func (s *Service) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), validationMessage(fe))
	}
	return apperrors.NewValidationError("", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "failed '" + fe.Tag() + "' validation"
	}
}

// embed returns the embedding of text, or nil when the text carries no signal.
func (s *Service) embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	vec, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if embedding.IsZero(vec) {
		return nil, nil
	}
	return vec, nil
}

func scoreInput(c *model.Candidate, j *model.JobPosting) ranking.ScoreInput {
	return ranking.ScoreInput{
		CandidateText:      c.ResumeText,
		CandidateEmbedding: c.Embedding,
		JobText:            j.ScoringText(),
		JobEmbedding:       j.Embedding,
		CandidateSkills:    c.Skills,
		JobSkills:          j.SkillsRequired,
		CandidateExp:       c.ExperienceYears,
		JobMinExp:          j.MinExperience,
		SameLocation:       ranking.SameLocation(c.Location, j.Location),
	}
}

// scorePair scores one pair. ok is false when either side has no embedding.
func (s *Service) scorePair(c *model.Candidate, j *model.JobPosting) (scores model.ScoreComponents, ok bool, err error) {
	if !c.HasEmbedding() || !j.HasEmbedding() {
		return model.ScoreComponents{}, false, nil
	}
	scores, err = s.ranker.Score(scoreInput(c, j))
	if err != nil {
		return model.ScoreComponents{}, false, fmt.Errorf("scoring candidate %s against job %s: %w", c.ID, j.ID, err)
	}
	return scores, true, nil
}

// fanOut runs fn for 0..n-1 with bounded concurrency under the batch
// timeout. The first error cancels the rest.
func (s *Service) fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// sortByScore orders by final score descending, then id ascending.
func sortByScore[T any](items []T, final func(T) float64, id func(T) string) {
	sort.SliceStable(items, func(a, b int) bool {
		fa, fb := final(items[a]), final(items[b])
		if fa != fb {
			return fa > fb
		}
		return id(items[a]) < id(items[b])
	})
}
