package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"av1batch/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check external tools and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			failures := 0

			lines := renderSectionHeader("Dependencies", color)
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				kind := statusOK
				detail := status.Command
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					} else {
						failures++
					}
					detail = status.Detail
				}
				if desc := strings.TrimSpace(status.Description); desc != "" && status.Available {
					detail = fmt.Sprintf("%s (%s)", detail, desc)
				}
				lines = append(lines, renderStatusLine(status.Name, kind, detail, color))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", color)...)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failures++
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, color))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Settings", color)...)
			lines = append(lines,
				renderStatusLine("Video encoder", statusInfo, cfg.Video.Encoder, color),
				renderStatusLine("Exclusion policy", statusInfo, cfg.Audio.ExclusionPolicy, color),
				renderStatusLine("Stage timeout", statusInfo, timeoutLabel(cfg.StageTimeout().String(), cfg.Tools.StageTimeoutMinutes > 0), color),
				renderStatusLine("Stale sweep", statusInfo, yesNo(cfg.StaleArtifactAge() > 0), color),
			)

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			return nil
		},
	}
}

func timeoutLabel(value string, enabled bool) string {
	if !enabled {
		return "disabled"
	}
	return value
}
