package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/config"
	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := &config.AppConfig{
		Storage:   config.StorageConfig{Backend: config.StorageMemory, DataDir: t.TempDir()},
		Embedding: config.EmbeddingConfig{Provider: config.EmbeddingProviderHash, PoolSize: 2},
		Matching:  config.MatchingConfig{Concurrency: 2},
	}
	cfg.Ranking.ApplyDefaults()
	return cfg
}

func TestNewEmbedder(t *testing.T) {
	cfg := testConfig(t)

	e, err := newEmbedder(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &embedding.HashEmbedder{}, e)
	assert.Equal(t, 384, e.Dimension())

	cfg.Embedding.Provider = "word2vec"
	_, err = newEmbedder(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildMatching_MemorySnapshotSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	svc, cleanup, err := buildMatching(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	created, err := svc.UpsertCandidate(ctx, &model.Candidate{FullName: "Ada", ResumeText: "Go developer"})
	require.NoError(t, err)
	cleanup()

	assert.FileExists(t, filepath.Join(cfg.Storage.DataDir, snapshotFile))

	svc, cleanup, err = buildMatching(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	got, err := svc.GetCandidate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)
	assert.True(t, got.HasEmbedding())
}

func TestScoreCommand(t *testing.T) {
	appConfig = testConfig(t)
	log = zap.NewNop()

	dir := t.TempDir()
	candidatePath := filepath.Join(dir, "candidate.json")
	jobPath := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(candidatePath, []byte(`{
		"full_name": "Ada",
		"resume_text": "Python developer with 4 years of experience in Django and SQL",
		"location": "Berlin"
	}`), 0o600))
	require.NoError(t, os.WriteFile(jobPath, []byte(`{
		"title": "Python Engineer",
		"description": "Django services backed by SQL",
		"company": "Acme",
		"skills_required": ["python", "django", "aws"],
		"min_experience": 3,
		"location": "berlin"
	}`), 0o600))

	scoreCandidateFile, scoreJobFile = candidatePath, jobPath
	var out bytes.Buffer
	scoreCmd.SetOut(&out)
	scoreCmd.SetContext(context.Background())
	require.NoError(t, runScore(scoreCmd, nil))

	var explanation model.ScoreExplanation
	require.NoError(t, json.Unmarshal(out.Bytes(), &explanation))
	assert.ElementsMatch(t, []string{"django", "python"}, explanation.Factors.MatchingSkills)
	assert.Equal(t, []string{"aws"}, explanation.Factors.MissingSkills)
	assert.True(t, explanation.Factors.LocationMatch)
	assert.Greater(t, explanation.FinalScore, 0.0)
}
