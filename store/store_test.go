package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	testutil "github.com/ShreekarSeelavantula/career-compass/internal/testing"
	"github.com/ShreekarSeelavantula/career-compass/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	testutil.RunBackendSuite(t, func(t *testing.T) testutil.Backend {
		return NewMemoryBackend()
	})
}

func TestMemoryBackend_Snapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.gob")

	mb, err := OpenMemoryBackend(path)
	require.NoError(t, err)
	require.NoError(t, mb.Put(ctx, CollectionJobs, "j1", []byte("job")))
	require.NoError(t, mb.Close())

	reopened, err := OpenMemoryBackend(path)
	require.NoError(t, err)
	data, err := reopened.Get(ctx, CollectionJobs, "j1")
	require.NoError(t, err)
	assert.Equal(t, []byte("job"), data)
}

func TestMemoryBackend_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	mb := NewMemoryBackend()

	data := []byte("abc")
	require.NoError(t, mb.Put(ctx, CollectionJobs, "j1", data))
	data[0] = 'x'

	got, err := mb.Get(ctx, CollectionJobs, "j1")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestRepository_RoundTripKeepsZeroExperienceAndEmbedding(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(NewMemoryBackend())

	candidate := testutil.NewCandidate("Ada", []string{"go"}, testutil.Years(0), "Berlin")
	candidate.Embedding = []float64{0.6, 0.8}
	require.NoError(t, stores.Candidates.Put(ctx, candidate))

	got, err := stores.Candidates.Get(ctx, candidate.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ExperienceYears)
	assert.Equal(t, 0, *got.ExperienceYears)
	assert.Equal(t, []float64{0.6, 0.8}, got.Embedding)
	assert.True(t, candidate.CreatedAt.Equal(got.CreatedAt))

	unknown := testutil.NewCandidate("Bob", nil, nil, "")
	require.NoError(t, stores.Candidates.Put(ctx, unknown))
	got, err = stores.Candidates.Get(ctx, unknown.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ExperienceYears)
	assert.False(t, got.HasEmbedding())
}

func TestRepository_RequiresID(t *testing.T) {
	stores := NewStores(NewMemoryBackend())
	err := stores.Jobs.Put(context.Background(), &model.JobPosting{Title: "no id"})
	assert.Error(t, err)
}

func TestRepository_GetMissing(t *testing.T) {
	stores := NewStores(NewMemoryBackend())
	_, err := stores.Applications.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
}

func TestRepository_Query(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(NewMemoryBackend())

	open := testutil.NewJobPosting("Golang Engineer", []string{"go"}, testutil.Years(2), "Berlin")
	open.CreatedAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := testutil.NewJobPosting("Python Engineer", []string{"python"}, nil, "Remote")
	newer.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	closed := testutil.NewJobPosting("Golang Lead", []string{"go"}, nil, "Berlin")
	closed.Status = model.JobPostingClosed

	for _, j := range []*model.JobPosting{open, newer, closed} {
		require.NoError(t, stores.Jobs.Put(ctx, j))
	}

	results, err := stores.Jobs.Query(ctx, retrieval.OpenJobs())
	require.NoError(t, err)
	jobs := Records(results)
	require.Len(t, jobs, 2)
	assert.Equal(t, newer.ID, jobs[0].ID)
	assert.Equal(t, open.ID, jobs[1].ID)

	results, err = stores.Jobs.Query(ctx, retrieval.SearchJobs(retrieval.JobSearch{Text: "golang"}))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, open.ID, results[0].Record.ID)
	assert.Greater(t, results[0].Relevance, 0.0)
}

func TestRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(NewMemoryBackend())

	app := &model.Application{ID: "a1", JobID: "j1", SeekerID: "s1", Status: model.ApplicationApplied,
		Scores: &model.ScoreComponents{BM25: 0, Semantic: 0.9, RuleBoost: 0.6, Final: 0.51}}
	require.NoError(t, stores.Applications.Put(ctx, app))

	apps, err := stores.Applications.List(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.Scores, apps[0].Scores)

	require.NoError(t, stores.Applications.Delete(ctx, "a1"))
	apps, err = stores.Applications.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
}
