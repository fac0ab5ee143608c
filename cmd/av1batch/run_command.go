package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"av1batch/internal/config"
	"av1batch/internal/confirm"
	"av1batch/internal/media/ffprobe"
	"av1batch/internal/services/ffmpeg"
	"av1batch/internal/workflow"
)

type runOptions struct {
	output          string
	temp            string
	encoder         string
	exclusionPolicy string
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [DIR]",
		Short: "Transcode every eligible file in a directory to AV1",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.SourceDir
			if len(args) == 1 {
				dir = args[0]
			}
			if err := opts.apply(cfg); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			confirmer, interactive, err := confirm.New(confirm.Policy(cfg.Audio.ExclusionPolicy), os.Stdin, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cfg.Audio.ExclusionPolicy == string(confirm.PolicyPrompt) && !interactive {
				fmt.Fprintln(cmd.ErrOrStderr(), "stdin is not a terminal; flagged audio tracks will be kept")
			}

			orch := workflow.New(workflow.SettingsFromConfig(cfg), logger,
				workflow.WithInvoker(ffmpeg.NewCommandInvoker(cfg.Tools.FFmpeg)),
				workflow.WithProber(ffprobe.CommandProber{Binary: cfg.Tools.FFprobe}),
				workflow.WithConfirmer(confirmer),
			)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, runErr := orch.Run(runCtx, dir)
			if summary.Total > 0 && len(summary.Results) > 0 {
				printSummary(cmd.OutOrStdout(), summary)
			}
			if runErr != nil {
				if errors.Is(runErr, context.Canceled) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Interrupted after %d/%d files\n", len(summary.Results), summary.Total)
				}
				return runErr
			}
			if summary.HasFailures() {
				return &batchFailedError{failed: summary.Failed, total: summary.Total}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (overrides paths.output_dir)")
	cmd.Flags().StringVar(&opts.temp, "temp", "", "Temp directory (overrides paths.temp_dir)")
	cmd.Flags().StringVar(&opts.encoder, "encoder", "", "Video encoder: av1_nvenc or drapto")
	cmd.Flags().StringVar(&opts.exclusionPolicy, "exclusion-policy", "", "Flagged audio tracks: keep, drop, or prompt")
	return cmd
}

// apply layers command-line overrides onto cfg and revalidates it.
func (o runOptions) apply(cfg *config.Config) error {
	if v := strings.TrimSpace(o.output); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if v := strings.TrimSpace(o.temp); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return fmt.Errorf("resolve --temp: %w", err)
		}
		cfg.Paths.TempDir = expanded
	}
	if v := strings.TrimSpace(o.encoder); v != "" {
		cfg.Video.Encoder = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.exclusionPolicy); v != "" {
		cfg.Audio.ExclusionPolicy = strings.ToLower(v)
	}
	return cfg.Validate()
}

func printSummary(out io.Writer, summary workflow.Summary) {
	color := shouldColorize(out)
	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		status := "OK"
		detail := result.Output
		size := "-"
		if result.Succeeded() {
			if info, err := os.Stat(result.Output); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
		} else {
			status = "FAILED"
			detail = fmt.Sprintf("%s: %v", result.Stage, result.Err)
		}
		rows = append(rows, []string{
			filepath.Base(result.Source),
			colorize(status, jobStatusKind(result), color),
			size,
			result.Duration.Round(time.Second).String(),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(tableLayout{
		Headers: []string{"File", "Status", "Size", "Elapsed", "Detail"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		Footer:  []string{"Processed", fmt.Sprintf("%d/%d", summary.Processed, summary.Total)},
	}))
}
