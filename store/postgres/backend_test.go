package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	testutil "github.com/ShreekarSeelavantula/career-compass/internal/testing"
)

const databaseURLEnv = "CAREER_COMPASS_TEST_DATABASE_URL"

func TestBackend(t *testing.T) {
	url := os.Getenv(databaseURLEnv)
	if url == "" {
		t.Skipf("%s not set", databaseURLEnv)
	}

	testutil.RunBackendSuite(t, func(t *testing.T) testutil.Backend {
		ctx := context.Background()
		b, err := Connect(ctx, url)
		require.NoError(t, err)
		_, err = b.pool.Exec(ctx, `TRUNCATE documents`)
		require.NoError(t, err)
		return b
	})
}
