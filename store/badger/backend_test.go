package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	testutil "github.com/ShreekarSeelavantula/career-compass/internal/testing"
	"github.com/ShreekarSeelavantula/career-compass/store"
)

func TestBackend(t *testing.T) {
	testutil.RunBackendSuite(t, func(t *testing.T) testutil.Backend {
		b, err := Open("", true, zap.NewNop())
		require.NoError(t, err)
		return b
	})
}

func TestBackend_PersistsOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := Open(dir, false, nil)
	require.NoError(t, err)
	stores := store.NewStores(b)
	job := testutil.NewJobPosting("Golang Engineer", []string{"go"}, testutil.Years(0), "Berlin")
	job.Embedding = []float64{1, 0}
	require.NoError(t, stores.Jobs.Put(ctx, job))
	require.NoError(t, stores.Close())

	reopened, err := Open(dir, false, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := store.NewStores(reopened).Jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Title, got.Title)
	assert.Equal(t, 0, *got.MinExperience)
	assert.Equal(t, []float64{1, 0}, got.Embedding)
}
