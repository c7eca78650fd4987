// Package testing provides fixtures and shared suites for the matching engine tests.
package testing

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// Backend mirrors store.Backend so the suite can run against every
// implementation without an import cycle.
type Backend interface {
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Put(ctx context.Context, collection, id string, data []byte) error
	Delete(ctx context.Context, collection, id string) error
	Scan(ctx context.Context, collection string, fn func(id string, data []byte) error) error
	Close() error
}

// RunBackendSuite exercises the Backend contract. newBackend must return an
// empty backend; the suite closes it.
func RunBackendSuite(t *testing.T, newBackend func(t *testing.T) Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing returns not found", func(t *testing.T) {
		b := newBackend(t)
		defer b.Close()

		_, err := b.Get(ctx, "candidates", "missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
	})

	t.Run("put then get", func(t *testing.T) {
		b := newBackend(t)
		defer b.Close()

		require.NoError(t, b.Put(ctx, "candidates", "c1", []byte("one")))
		data, err := b.Get(ctx, "candidates", "c1")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), data)

		require.NoError(t, b.Put(ctx, "candidates", "c1", []byte("two")))
		data, err = b.Get(ctx, "candidates", "c1")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), data)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		b := newBackend(t)
		defer b.Close()

		require.NoError(t, b.Put(ctx, "candidates", "x", []byte("candidate")))
		require.NoError(t, b.Put(ctx, "jobs", "x", []byte("job")))

		data, err := b.Get(ctx, "jobs", "x")
		require.NoError(t, err)
		assert.Equal(t, []byte("job"), data)

		// "job" is a prefix of "jobs" and must not leak into it.
		require.NoError(t, b.Put(ctx, "job", "y", []byte("other")))
		var seen []string
		require.NoError(t, b.Scan(ctx, "jobs", func(id string, _ []byte) error {
			seen = append(seen, id)
			return nil
		}))
		assert.Equal(t, []string{"x"}, seen)
	})

	t.Run("delete", func(t *testing.T) {
		b := newBackend(t)
		defer b.Close()

		require.NoError(t, b.Put(ctx, "jobs", "j1", []byte("job")))
		require.NoError(t, b.Delete(ctx, "jobs", "j1"))

		_, err := b.Get(ctx, "jobs", "j1")
		assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))

		err = b.Delete(ctx, "jobs", "j1")
		assert.True(t, errors.Is(err, apperrors.ErrDocumentNotFound))
	})

	t.Run("scan is ordered by id", func(t *testing.T) {
		b := newBackend(t)
		defer b.Close()

		want := []string{"a", "b", "c", "d"}
		for _, id := range []string{"c", "a", "d", "b"} {
			require.NoError(t, b.Put(ctx, "applications", id, []byte(id)))
		}

		var got []string
		require.NoError(t, b.Scan(ctx, "applications", func(id string, data []byte) error {
			assert.Equal(t, id, string(data))
			got = append(got, id)
			return nil
		}))
		assert.True(t, sort.StringsAreSorted(got))
		assert.Equal(t, want, got)
	})

	t.Run("scan stops on callback error", func(t *testing.T) {
		b := newBackend(t)
		defer b.Close()

		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, b.Put(ctx, "jobs", id, []byte(id)))
		}

		stop := errors.New("stop")
		calls := 0
		err := b.Scan(ctx, "jobs", func(string, []byte) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})
}

// NewCandidate returns a valid candidate with a fresh id.
func NewCandidate(name string, skills []string, experience *int, location string) *model.Candidate {
	now := time.Now().UTC()
	return &model.Candidate{
		ID:              uuid.New().String(),
		FullName:        name,
		Headline:        name + " profile",
		ResumeText:      name + " has worked with " + joinSkills(skills),
		Skills:          skills,
		ExperienceYears: experience,
		Location:        location,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NewJobPosting returns a valid open posting with a fresh id.
func NewJobPosting(title string, skills []string, minExperience *int, location string) *model.JobPosting {
	now := time.Now().UTC()
	return &model.JobPosting{
		ID:             uuid.New().String(),
		RecruiterID:    "recruiter-1",
		Title:          title,
		Description:    title + " role requiring " + joinSkills(skills),
		Company:        "Acme",
		Location:       location,
		EmploymentType: model.EmploymentFullTime,
		SkillsRequired: skills,
		MinExperience:  minExperience,
		Status:         model.JobPostingOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Years returns a pointer to v.
func Years(v int) *int {
	return &v
}

func joinSkills(skills []string) string {
	out := ""
	for i, s := range skills {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
