package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cutoutshort/cutout/internal/config"
	"github.com/cutoutshort/cutout/internal/jobs"
	"github.com/cutoutshort/cutout/internal/logging"
	"github.com/cutoutshort/cutout/internal/pipeline"
)

func run(cmd *cobra.Command, inputs []string) error {
	cfg := config.Load()
	if problems := cfg.Validate(); len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	defer func() { _ = log.Sync() }()

	outDir, _ := cmd.Flags().GetString("out")
	clips, _ := cmd.Flags().GetInt("clips")
	minSec, _ := cmd.Flags().GetInt("min")
	maxSec, _ := cmd.Flags().GetInt("max")
	titleHint, _ := cmd.Flags().GetString("title-hint")
	ruleOnly, _ := cmd.Flags().GetBool("rule-only")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noSubs, _ := cmd.Flags().GetBool("no-subs")

	if outDir == "" {
		outDir = cfg.OutDir
	}
	if clips == 0 {
		clips = cfg.TargetCount
	}
	if minSec == 0 {
		minSec = cfg.MinSec
	}
	if maxSec == 0 {
		maxSec = cfg.MaxSec
	}

	deps := pipeline.BuildDeps(pipeline.ToolConfig{
		FFmpegPath:    cfg.FFmpegPath,
		FFprobePath:   cfg.FFprobePath,
		WhisperBin:    cfg.WhisperBin,
		WhisperModel:  cfg.WhisperModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		GeminiBaseURL: cfg.GeminiBaseURL,
	}, log)
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, using rule-based selection only")
	}

	pcfg := func(input string) (pipeline.Config, error) {
		abs, err := filepath.Abs(input)
		if err != nil {
			return pipeline.Config{}, err
		}
		return pipeline.Config{
			InputMP4:          abs,
			OutDir:            outDir,
			TargetCount:       clips,
			MinSec:            minSec,
			MaxSec:            maxSec,
			TitleHint:         titleHint,
			ForceRuleBased:    ruleOnly,
			DryRun:            dryRun,
			BurnSubtitles:     !noSubs,
			TranscribeTimeout: cfg.TranscribeTimeout,
			RenderTimeout:     cfg.RenderTimeout,
		}, nil
	}

	ctx := context.Background()

	if dryRun {
		return runDry(ctx, cmd, deps, inputs, pcfg, log)
	}

	store := jobs.NewStore(cfg.JobRetention)
	defer store.Stop()
	worker := jobs.NewWorker(store, deps, cfg.MaxConcurrentJobs, log)

	var submitted []*jobs.Job
	for _, input := range inputs {
		c, err := pcfg(input)
		if err != nil {
			return err
		}
		submitted = append(submitted, worker.Submit(ctx, c))
	}
	worker.Wait()

	failed := 0
	for _, j := range submitted {
		snap := j.Snapshot()
		if snap.Status != jobs.StatusDone {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", snap.Input, snap.Message)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", snap.Input, snap.RunDir)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(submitted))
	}
	return nil
}

func runDry(
	ctx context.Context,
	cmd *cobra.Command,
	deps pipeline.Deps,
	inputs []string,
	pcfg func(string) (pipeline.Config, error),
	log *zap.Logger,
) error {
	for _, input := range inputs {
		c, err := pcfg(input)
		if err != nil {
			return err
		}
		res, err := pipeline.Run(ctx, c, deps, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d segments\n", input, len(res.Segments))
		for _, s := range res.Segments {
			fmt.Fprintf(cmd.OutOrStdout(), "  %7.1fs - %7.1fs  score=%.2f  method=%s  %s\n",
				s.Start, s.End, s.Score, s.Method, s.Reason)
		}
	}
	return nil
}
