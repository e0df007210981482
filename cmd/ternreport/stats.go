package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tern/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <dump.trd>...",
	Short: "Aggregate severity and category counts over report dumps",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	statsCmd.Flags().String("policy", "", "path to a TOML severity policy")
	statsCmd.Flags().StringArray("as-error", nil, "report kind to treat as an error (repeatable)")
	statsCmd.Flags().StringArray("as-warning", nil, "report kind to treat as a warning (repeatable)")
	statsCmd.Flags().Bool("warnings-as-errors", false, "treat all default-warning kinds as errors")
	statsCmd.Flags().Int("jobs", 0, "max parallel workers for loading dumps (0=auto)")
}

type ledgerStats struct {
	Total      int            `json:"total"`
	Severities map[string]int `json:"severities"`
	Categories map[string]int `json:"categories"`
}

func collectStats(dumps []loadedDump, asError, asWarning report.KindSet) ledgerStats {
	stats := ledgerStats{
		Severities: make(map[string]int),
		Categories: make(map[string]int),
	}
	for _, d := range dumps {
		for _, r := range d.Ledger.Reports() {
			sev := report.SeverityOf(r, asError, asWarning)
			stats.Severities[strings.ToLower(sev.String())]++
			stats.Categories[r.Category().String()]++
			stats.Total++
		}
	}
	return stats
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	pol, err := buildPolicy(cmd)
	if err != nil {
		return err
	}

	dumps, err := loadDumps(cmd, args, jobs)
	if err != nil {
		return err
	}

	stats := collectStats(dumps, pol.AsError, pol.AsWarning)

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	case "pretty":
		fmt.Fprintf(os.Stdout, "reports: %d\n", stats.Total)
		fmt.Fprintln(os.Stdout, "by severity:")
		for sev := report.SevFatal; ; sev-- {
			if n := stats.Severities[strings.ToLower(sev.String())]; n > 0 {
				fmt.Fprintf(os.Stdout, "  %-8s %d\n", strings.ToLower(sev.String()), n)
			}
			if sev == report.SevDebug {
				break
			}
		}
		fmt.Fprintln(os.Stdout, "by category:")
		for _, cat := range report.Categories() {
			if n := stats.Categories[cat.String()]; n > 0 {
				fmt.Fprintf(os.Stdout, "  %-8s %d\n", cat, n)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
