package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/applicant-selector/internal/observability"
	"github.com/jonathan/applicant-selector/internal/pipeline"
	"github.com/jonathan/applicant-selector/internal/scoring"
	"github.com/jonathan/applicant-selector/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score [RESUME...]",
	Short: "Score resumes and print the results as JSON",
	Long: `Extracts profile fields from each resume, scores it and prints one JSON result per file.
A cover letter given with --cover-letter is scored alongside every resume, or on its own when no
resume is given. With --save each applicant is stored and announced as if it had been uploaded.`,
	RunE: runScore,
}

var (
	scoreCoverLetter string
	scoreAssessment  int
	scoreSave        bool
	scoreConcurrency int
	scoreOutput      string
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCoverLetter, "cover-letter", "c", "", "Path to a cover letter scored with each resume")
	scoreCmd.Flags().IntVarP(&scoreAssessment, "assessment", "a", 0, "Assessment score (0-100); defaults to DEFAULT_ASSESSMENT_SCORE or 80")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "Persist each scored applicant to the database")
	scoreCmd.Flags().IntVar(&scoreConcurrency, "concurrency", 4, "Number of files scored in parallel")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Write the JSON results to this file instead of stdout")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a readable summary of each result to stderr")

	rootCmd.AddCommand(scoreCmd)
}

// scoreResult is the outcome for one input file
type scoreResult struct {
	File      string                  `json:"file"`
	Applicant *types.ScoredApplicant  `json:"applicant,omitempty"`
	Extracted *types.ExtractedProfile `json:"extracted,omitempty"`
	Breakdown *scoring.Breakdown      `json:"breakdown,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && scoreCoverLetter == "" {
		return fmt.Errorf("at least one resume or --cover-letter is required")
	}
	if scoreConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var assessment *int
	switch {
	case cmd.Flags().Changed("assessment"):
		if scoreAssessment < 0 || scoreAssessment > 100 {
			return fmt.Errorf("--assessment must be between 0 and 100")
		}
		assessment = &scoreAssessment
	case cfg.DefaultAssessmentScore != nil:
		assessment = cfg.DefaultAssessmentScore
	}

	var cover *pipeline.Upload
	if scoreCoverLetter != "" {
		if cover, err = readUpload(scoreCoverLetter); err != nil {
			return err
		}
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, appOptions{persist: scoreSave})
	if err != nil {
		return err
	}
	defer a.Close()

	// A lone cover letter is scored as one entry
	files := args
	if len(files) == 0 {
		files = []string{""}
	}

	results := scoreFiles(ctx, a.processor, files, cover, assessment, scoreSave, scoreConcurrency)
	if scoreVerbose {
		printSummary(observability.NewPrinter(cmd.ErrOrStderr()), results)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	if scoreOutput != "" {
		if err := os.WriteFile(scoreOutput, append(out, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", scoreOutput, err)
		}
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// scoreFiles scores every file with at most limit in flight. Results keep the input order.
// An empty file name scores the cover letter alone.
func scoreFiles(ctx context.Context, p *pipeline.Processor, files []string, cover *pipeline.Upload, assessment *int, save bool, limit int) []scoreResult {
	results := make([]scoreResult, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			results[i] = scoreFile(gCtx, p, file, cover, assessment, save)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func scoreFile(ctx context.Context, p *pipeline.Processor, file string, cover *pipeline.Upload, assessment *int, save bool) scoreResult {
	result := scoreResult{File: file}
	if file == "" && cover != nil {
		result.File = cover.Filename
	}

	sub := pipeline.Submission{CoverLetter: cover, AssessmentScore: assessment}
	if file != "" {
		resume, err := readUpload(file)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		sub.Resume = resume
	}

	var (
		res *pipeline.Result
		err error
	)
	if save {
		res, err = p.Process(ctx, sub)
	} else {
		res, err = p.Evaluate(ctx, sub)
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Applicant = res.Applicant
	result.Extracted = res.Extracted
	result.Breakdown = &res.Breakdown
	return result
}

func printSummary(p *observability.Printer, results []scoreResult) {
	var scored []types.ScoredApplicant
	for _, r := range results {
		if r.Applicant == nil {
			continue
		}
		p.PrintProfile(r.File, r.Extracted)
		p.PrintScores(r.Applicant)
		scored = append(scored, *r.Applicant)
	}
	if len(scored) > 1 {
		p.PrintRanking(scored)
	}
}

func readUpload(path string) (*pipeline.Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &pipeline.Upload{Filename: filepath.Base(path), Data: data}, nil
}
