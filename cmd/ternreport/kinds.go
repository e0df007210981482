package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tern/internal/report"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds [flags]",
	Short: "List the report kind taxonomy",
	Long:  `List every registered report kind with its category, ID and default severity`,
	Args:  cobra.NoArgs,
	RunE:  runKinds,
}

func init() {
	kindsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	kindsCmd.Flags().String("category", "", "only list kinds of one category (lexer|parser|sem|cmd|debug|internal|backend|external)")
}

type kindPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
}

func categoryByName(name string) (report.Category, bool) {
	for _, cat := range report.Categories() {
		if cat.String() == name {
			return cat, true
		}
	}
	return 0, false
}

func runKinds(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	categoryName, err := cmd.Flags().GetString("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}

	var only report.Category
	filtered := false
	if categoryName != "" {
		only, filtered = categoryByName(strings.ToLower(categoryName))
		if !filtered {
			return fmt.Errorf("unknown category: %s", categoryName)
		}
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	kinds := make([]report.Kind, 0, 64)
	for _, k := range report.Kinds() {
		cat, ok := report.CategoryOf(k)
		if !ok {
			continue
		}
		if filtered && cat != only {
			continue
		}
		kinds = append(kinds, k)
	}

	if format == "json" {
		payload := make([]kindPayload, 0, len(kinds))
		for _, k := range kinds {
			cat, _ := report.CategoryOf(k)
			payload = append(payload, kindPayload{
				ID:       k.ID(),
				Name:     k.Name(),
				Category: cat.String(),
				Severity: strings.ToLower(report.DefaultSeverity(k).String()),
				Title:    k.Title(),
			})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}
	if format != "pretty" {
		return fmt.Errorf("unknown format: %s", format)
	}

	heading := color.New(color.Bold)
	if useColor {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}

	var prev report.Category
	first := true
	for _, k := range kinds {
		cat, _ := report.CategoryOf(k)
		if first || cat != prev {
			if !first {
				fmt.Fprintln(os.Stdout)
			}
			lo, hi := cat.Range()
			heading.Fprintf(os.Stdout, "%s (%d..%d)\n", cat, lo, hi)
			prev, first = cat, false
		}
		fmt.Fprintf(os.Stdout, "  %-8s %-28s %-8s %s\n",
			k.ID(), k.Name(), strings.ToLower(report.DefaultSeverity(k).String()), k.Title())
	}
	return nil
}
