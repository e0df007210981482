package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tern/internal/policy"
	"tern/internal/report"
	"tern/internal/reportfmt"
	"tern/internal/reportstore"
	"tern/internal/source"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <dump.trd>...",
	Short: "Render report dumps produced by the compiler",
	Long:  `Render one or more report dumps in a human- or machine-readable format, re-deriving severities under the requested policy`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

// init registers CLI flags for the render command used by runRender.
func init() {
	renderCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	renderCmd.Flags().String("policy", "", "path to a TOML severity policy")
	renderCmd.Flags().StringArray("as-error", nil, "report kind to treat as an error (repeatable)")
	renderCmd.Flags().StringArray("as-warning", nil, "report kind to treat as a warning (repeatable)")
	renderCmd.Flags().Bool("warnings-as-errors", false, "treat all default-warning kinds as errors")
	renderCmd.Flags().String("min-severity", "hint", "drop reports below this severity (debug|trace|hint|warning|error|fatal)")
	renderCmd.Flags().Bool("with-contexts", false, "include instantiation contexts in output")
	renderCmd.Flags().Bool("show-site", false, "include compiler-internal report sites in output")
	renderCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	renderCmd.Flags().Int("jobs", 0, "max parallel workers for loading dumps (0=auto)")
}

// loadedDump — один загруженный дамп вместе со своим FileSet.
type loadedDump struct {
	Path   string
	Ledger *report.Ledger
	Files  *source.FileSet
}

// loadDumps reads every dump in parallel. Results keep the argument
// order regardless of which worker finished first.
func loadDumps(cmd *cobra.Command, paths []string, jobs int) ([]loadedDump, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]loadedDump, len(paths))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				ledger, fs, err := reportstore.Load(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = loadedDump{Path: path, Ledger: ledger, Files: fs}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildPolicy merges the config-file policy with the flag overrides.
func buildPolicy(cmd *cobra.Command) (policy.Policy, error) {
	policyPath, err := cmd.Flags().GetString("policy")
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to get policy flag: %w", err)
	}

	asError, err := cmd.Flags().GetStringArray("as-error")
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to get as-error flag: %w", err)
	}

	asWarning, err := cmd.Flags().GetStringArray("as-warning")
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to get as-warning flag: %w", err)
	}

	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return policy.Policy{}, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	pol, err := policy.FromNames(asError, asWarning)
	if err != nil {
		return policy.Policy{}, err
	}

	if policyPath != "" {
		filePol, err := policy.Load(policyPath)
		if err != nil {
			return policy.Policy{}, err
		}
		pol = filePol.Merge(pol)
	}

	if warningsAsErrors {
		pol = pol.PromoteWarnings()
	}
	return pol, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	minSevName, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	minSev, ok := report.SeverityByName(minSevName)
	if !ok {
		return fmt.Errorf("unknown severity: %s", minSevName)
	}

	withContexts, err := cmd.Flags().GetBool("with-contexts")
	if err != nil {
		return fmt.Errorf("failed to get with-contexts flag: %w", err)
	}

	showSite, err := cmd.Flags().GetBool("show-site")
	if err != nil {
		return fmt.Errorf("failed to get show-site flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	maxReports, err := cmd.Root().PersistentFlags().GetInt("max-reports")
	if err != nil {
		return fmt.Errorf("failed to get max-reports flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	pol, err := buildPolicy(cmd)
	if err != nil {
		return err
	}

	pathMode := reportfmt.PathModeAuto
	if fullPath {
		pathMode = reportfmt.PathModeAbsolute
	}

	opts := reportfmt.Options{
		PathMode:        pathMode,
		MinSeverity:     minSev,
		Max:             maxReports,
		IncludeContexts: withContexts,
		AsError:         pol.AsError,
		AsWarning:       pol.AsWarning,
	}

	dumps, err := loadDumps(cmd, args, jobs)
	if err != nil {
		return err
	}

	hasErrors := false
	for _, d := range dumps {
		if d.Ledger.HasErrors(pol.AsError, pol.AsWarning) {
			hasErrors = true
		}
	}

	switch format {
	case "pretty":
		prettyOpts := reportfmt.PrettyOpts{
			Options:  opts,
			Color:    useColor,
			ShowSite: showSite,
		}
		for _, d := range dumps {
			if len(dumps) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", d.Path)
			}
			if err := reportfmt.Pretty(os.Stdout, d.Ledger, d.Files, prettyOpts); err != nil {
				return fmt.Errorf("failed to format reports: %w", err)
			}
		}
	case "short":
		for _, d := range dumps {
			output := reportfmt.Short(d.Ledger, d.Files, opts)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		}
	case "json":
		jsonOpts := reportfmt.JSONOpts{
			Options:          opts,
			IncludePositions: true,
		}
		if len(dumps) == 1 {
			if err := reportfmt.JSON(os.Stdout, dumps[0].Ledger, dumps[0].Files, jsonOpts); err != nil {
				return fmt.Errorf("failed to format reports: %w", err)
			}
			break
		}
		output := make(map[string]reportfmt.LedgerOutput, len(dumps))
		for _, d := range dumps {
			output[d.Path] = reportfmt.BuildLedgerOutput(d.Ledger, d.Files, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode report output: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if hasErrors {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - reports already printed
	}
	return nil
}
