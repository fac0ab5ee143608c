package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"av1batch/internal/config"
	"av1batch/internal/media/ffprobe"
	"av1batch/internal/media/streaminfo"
	"av1batch/internal/services/ffmpeg"
	"av1batch/internal/subtitles"
)

func newExtractSubtitlesCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var format string

	cmd := &cobra.Command{
		Use:   "extract-subtitles <file>",
		Short: "Extract text subtitle tracks to sidecar files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			source, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve source: %w", err)
			}
			target := strings.TrimSpace(outDir)
			if target != "" {
				if target, err = config.ExpandPath(target); err != nil {
					return fmt.Errorf("resolve --out: %w", err)
				}
			}
			if strings.TrimSpace(format) == "" {
				format = cfg.Subtitles.ExtractFormat
			}

			probe, err := ffprobe.CommandProber{Binary: cfg.Tools.FFprobe}.Probe(cmd.Context(), source, ffprobe.SelectSubtitle, ffprobe.SubtitleEntries)
			if err != nil {
				return err
			}
			streams := streaminfo.SubtitlesFromProbe(probe)

			written, err := subtitles.Extract(cmd.Context(), ffmpeg.NewCommandInvoker(cfg.Tools.FFmpeg), subtitles.ExtractRequest{
				Source:     source,
				OutputDir:  target,
				Streams:    streams,
				Format:     strings.ToLower(format),
				TextCodecs: cfg.Subtitles.TextCodecs,
			}, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintf(out, "No text subtitle tracks in %s\n", filepath.Base(source))
				return nil
			}
			rows := make([][]string, 0, len(written))
			for _, item := range written {
				rows = append(rows, []string{fmt.Sprintf("%d", item.SourceIndex), item.Path})
			}
			fmt.Fprintln(out, renderTable(tableLayout{
				Headers: []string{"Stream", "Sidecar"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignRight, alignLeft},
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for sidecar files (defaults to the source directory)")
	cmd.Flags().StringVar(&format, "format", "", "Sidecar format: srt, ass, or webvtt (defaults to subtitles.extract_format)")
	return cmd
}
