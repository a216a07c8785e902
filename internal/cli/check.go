package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lorecheck/lorecheck/chronotext"
	"github.com/lorecheck/lorecheck/internal/config"
	"github.com/lorecheck/lorecheck/internal/llm"
	"github.com/lorecheck/lorecheck/internal/loader"
	"github.com/lorecheck/lorecheck/internal/parsecache"
	"github.com/lorecheck/lorecheck/internal/report"
	"github.com/lorecheck/lorecheck/timeline"
)

var (
	outJSON     string
	outMD       string
	refDateStr  string
	timezone    string
	localeFlag  string
	forwardDate bool
	strict      bool
	noCache     bool
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <timeline.yaml>",
	Short: "Check a timeline file for narrative inconsistencies",
	Long: `Check loads a timeline document, parses every date expression, and runs
the conflict detectors:

- location: a character in two places at the same written date
- death: a deceased character attending events after their death
- causality: an effect starting before its cause

Example:
  lorecheck check saga.yaml
  lorecheck check saga.yaml --json report.json --md report.md
  lorecheck check saga.yaml --ref 2024-03-01 --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path")
	checkCmd.Flags().StringVar(&refDateStr, "ref", "", "reference date for relative expressions (RFC3339 or yyyy-MM-dd; default: now)")
	checkCmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for offset-less dates")
	checkCmd.Flags().StringVar(&localeFlag, "locale", "", "display locale (default: en-US)")
	checkCmd.Flags().BoolVar(&forwardDate, "forward", false, "bias ambiguous relative phrases toward the future")
	checkCmd.Flags().BoolVar(&strict, "strict", false, "exit nonzero when critical conflicts are found")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse-result caching")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := buildConfig()
	opts, err := parserOptions(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", path)
		fmt.Fprintf(os.Stderr, "Reference date: %s\n", opts.ReferenceDate.Format(time.RFC3339))
		fmt.Fprintln(os.Stderr)
	}

	doc, err := loader.Load(path)
	if err != nil {
		return err
	}

	rep, err := checkDocument(path, doc, cfg, opts)
	if err != nil {
		return err
	}

	if llmEnabled {
		if err := attachSummary(cmd.Context(), rep, cfg); err != nil {
			// A failed summary never blocks the report.
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		}
	}

	printReport(rep)

	if outJSON != "" {
		if err := rep.WriteJSON(outJSON); err != nil {
			return err
		}
	}
	if outMD != "" {
		if err := rep.WriteMarkdown(outMD, cfg.Output.IncludeFooter); err != nil {
			return err
		}
	}

	if strict && rep.Summary.Critical > 0 {
		return fmt.Errorf("%d critical conflicts found", rep.Summary.Critical)
	}
	return nil
}

// checkDocument runs detection over a loaded document and builds a report.
func checkDocument(source string, doc *loader.Document, cfg *config.Config, opts chronotext.Options) (*report.Report, error) {
	var detectorOpts []timeline.Option
	if cfg.Cache.Enabled {
		cache := parsecache.New(cfg.Cache.TTL, cfg.Cache.TTL)
		detectorOpts = append(detectorOpts, timeline.WithParseFunc(cache.ParseFunc()))
	}

	detector := timeline.NewDetector(opts, detectorOpts...)
	conflicts := detector.DetectConflicts(doc.Events, doc.Characters, doc.Locations, doc.Causality)

	return report.Build(source, doc.Title, len(doc.Events), len(doc.Characters), len(doc.Locations), conflicts), nil
}

// buildConfig merges defaults, config file/env values, and flags.
func buildConfig() *config.Config {
	cfg := config.DefaultConfig()

	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	if noCache {
		cfg.Cache.Enabled = false
	}
	if timezone != "" {
		cfg.Parser.Timezone = timezone
	}
	if localeFlag != "" {
		cfg.Parser.Locale = localeFlag
	}
	if forwardDate {
		cfg.Parser.ForwardDate = true
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); cfg.LLM.Provider == "ollama" && baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg
}

// parserOptions builds chronotext options. The reference anchor is always
// explicit: either the --ref flag or the process start time captured here,
// never a clock hidden inside the parser.
func parserOptions(cfg *config.Config) (chronotext.Options, error) {
	ref := time.Now()
	if refDateStr != "" {
		parsed, err := parseReference(refDateStr)
		if err != nil {
			return chronotext.Options{}, err
		}
		ref = parsed
	}

	return chronotext.Options{
		ForwardDate:   cfg.Parser.ForwardDate,
		Timezone:      cfg.Parser.Timezone,
		ReferenceDate: ref,
		Locale:        cfg.Parser.Locale,
	}, nil
}

func parseReference(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reference date %q (want RFC3339 or yyyy-MM-dd)", s)
}

func attachSummary(ctx context.Context, rep *report.Report, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.LLM.Provider == "openai" && cfg.LLM.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	summarizer, err := llm.NewSummarizer(llm.ConfigFrom(cfg.LLM))
	if err != nil {
		return err
	}
	summary, err := summarizer.GenerateSummary(ctx, rep)
	if err != nil {
		return err
	}
	rep.LLM = summary
	return nil
}

func printReport(rep *report.Report) {
	fmt.Printf("Checked %s: %d events, %d characters, %d locations\n",
		rep.Source, rep.Events, rep.Characters, rep.Locations)

	if rep.Summary.Total == 0 {
		fmt.Println("No conflicts detected.")
		return
	}

	fmt.Printf("%d conflicts (%d critical):\n\n", rep.Summary.Total, rep.Summary.Critical)
	for _, c := range rep.Conflicts {
		fmt.Printf("%s [%s] %s\n", timeline.ConflictIcon(c.Type), c.Severity, c.Description)
		if c.Suggestion != "" {
			fmt.Printf("   ↳ %s\n", c.Suggestion)
		}
	}

	if rep.LLM != nil && rep.LLM.Enabled {
		fmt.Printf("\nSummary (%s/%s):\n%s\n", rep.LLM.Provider, rep.LLM.Model, rep.LLM.SummaryMD)
	}
}
