package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hari10031/CodeSync-sub001/internal/scoring"
)

var (
	scoreResumePath string
	scoreJobPath    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description offline",
	Long:  "Runs the deterministic lexical scorer over a resume and a job description from local files and prints the breakdown as JSON. No network or database access.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumePath, "resume", "r", "", "Path to the resume text file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobPath, "job", "j", "", "Path to the job description file (required)")

	if err := scoreCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	resume, err := os.ReadFile(scoreResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	job, err := os.ReadFile(scoreJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	breakdown := scoring.Score(string(resume), string(job))

	out, err := json.MarshalIndent(breakdown, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode breakdown: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stdout, string(out))

	return nil
}
