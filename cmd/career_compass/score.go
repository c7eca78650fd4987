package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShreekarSeelavantula/career-compass/internal/extraction"
	"github.com/ShreekarSeelavantula/career-compass/internal/ranking"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate against a job posting",
	Long: "Reads a candidate and a job posting from JSON files, scores the pair with the configured " +
		"ranking settings and prints the explanation as JSON. Nothing is stored.",
	RunE: runScore,
}

var (
	scoreCandidateFile string
	scoreJobFile       string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCandidateFile, "candidate", "c", "", "Path to a candidate JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "J", "", "Path to a job posting JSON file (required)")

	if err := scoreCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func readJSON(path string, target interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	var (
		candidate model.Candidate
		job       model.JobPosting
	)
	if err := readJSON(scoreCandidateFile, &candidate); err != nil {
		return err
	}
	if err := readJSON(scoreJobFile, &job); err != nil {
		return err
	}

	profile := extraction.Parse(candidate.ResumeText, nowFunc())
	if len(candidate.Skills) == 0 {
		candidate.Skills = profile.Skills
	}
	if candidate.ExperienceYears == nil {
		candidate.ExperienceYears = profile.ExperienceYears
	}

	ranker, err := ranking.NewService(appConfig.Ranking)
	if err != nil {
		return err
	}
	embedder, err := newEmbedder(appConfig, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	candidateVec, err := embedder.EmbedText(ctx, candidate.ResumeText)
	if err != nil {
		return fmt.Errorf("embedding candidate: %w", err)
	}
	jobVec, err := embedder.EmbedText(ctx, job.EmbeddingText())
	if err != nil {
		return fmt.Errorf("embedding job: %w", err)
	}

	explanation, err := ranker.Explain(ranking.ScoreInput{
		CandidateText:      candidate.ResumeText,
		CandidateEmbedding: candidateVec,
		JobText:            job.ScoringText(),
		JobEmbedding:       jobVec,
		CandidateSkills:    candidate.Skills,
		JobSkills:          job.SkillsRequired,
		CandidateExp:       candidate.ExperienceYears,
		JobMinExp:          job.MinExperience,
		SameLocation:       ranking.SameLocation(candidate.Location, job.Location),
	})
	if err != nil {
		return err
	}

	return printJSON(cmd, explanation)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
