package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gerunddev/todotree/internal/render"
)

func newLogCmd(a *app) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent log lines and the last scan summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.LogFile == "" {
				return fmt.Errorf("no log_file configured")
			}

			recent, lastScan, filesScanned := ParseLogFile(a.cfg.LogFile, lines)

			out := cmd.OutOrStdout()
			plain := a.plainOutput(out)
			label := func(s string) string {
				if plain {
					return s
				}
				return render.DimStyle.Render(s)
			}

			if lastScan.IsZero() {
				fmt.Fprintln(out, label("No scan recorded"))
			} else {
				fmt.Fprintf(out, "%s %s (%d files)\n", label("Last scan:"), lastScan.Format(time.DateTime), filesScanned)
			}
			fmt.Fprintln(out)
			for _, line := range recent {
				if line != "" {
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "number of log lines to show")
	return cmd
}

// ParseLogFile reads the last N lines from the log file and extracts scan info
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if maxLines > 0 && len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastScan time.Time
	filesScanned := 0

	// Look for most recent "scan completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "scan completed") {
			// Format: 2025-11-27 14:11:57 INFO scan completed files_scanned=3
			if len(line) > 19 {
				if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
					lastScan = t
				}
			}

			if idx := strings.Index(line, "files_scanned="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "files_scanned=%d", &filesScanned) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastScan, filesScanned
}
