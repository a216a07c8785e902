package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lorecheck/lorecheck/internal/llm"
	"github.com/lorecheck/lorecheck/internal/loader"
	"github.com/lorecheck/lorecheck/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|file...>",
	Short: "Check multiple timeline files in parallel",
	Long: `Batch checks every timeline file under the given directories (or the
listed files) concurrently and writes one report per file.

Example:
  lorecheck batch ./timelines
  lorecheck batch ./timelines --concurrency 8 --output-dir ./reports
  lorecheck batch a.yaml b.yaml --llm openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lorecheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&refDateStr, "ref", "", "reference date for relative expressions (RFC3339 or yyyy-MM-dd; default: now)")
	batchCmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for offset-less dates")
	batchCmd.Flags().BoolVar(&forwardDate, "forward", false, "bias ambiguous relative phrases toward the future")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable parse-result caching")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	_, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	files, err := collectTimelineFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no timeline files found under %s", strings.Join(args, ", "))
	}

	cfg := buildConfig()
	opts, err := parserOptions(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Checking %d timeline files with %d workers\n", len(files), concurrency)

	var summarizer *llm.Summarizer
	var limiter *worker.Limiter
	if llmEnabled {
		summarizer, err = llm.NewSummarizer(llm.ConfigFrom(cfg.LLM))
		if err != nil {
			return err
		}
		limiter = worker.NewLimiter(cfg.LLM.RequestsPerMinute, 1)
	}

	pool := worker.NewPool(concurrency)
	pool.Start()

	for _, path := range files {
		path := path
		pool.Submit(func(ctx context.Context) worker.Outcome {
			outcome := worker.Outcome{Path: path}

			doc, err := loader.Load(path)
			if err != nil {
				outcome.Err = err
				return outcome
			}

			rep, err := checkDocument(path, doc, cfg, opts)
			if err != nil {
				outcome.Err = err
				return outcome
			}

			if summarizer != nil && summarizer.IsEnabled() {
				if err := limiter.Wait(ctx, summarizer.ProviderName()); err == nil {
					if summary, err := summarizer.GenerateSummary(ctx, rep); err == nil {
						rep.LLM = summary
					} else if verbose {
						fmt.Fprintf(os.Stderr, "Warning: summary for %s failed: %v\n", path, err)
					}
				}
			}

			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			jsonPath := filepath.Join(outputDir, base+".json")
			mdPath := filepath.Join(outputDir, base+".md")
			if err := rep.WriteJSON(jsonPath); err != nil {
				outcome.Err = err
				return outcome
			}
			if err := rep.WriteMarkdown(mdPath, cfg.Output.IncludeFooter); err != nil {
				outcome.Err = err
				return outcome
			}

			outcome.Conflicts = rep.Summary.Total
			outcome.Critical = rep.Summary.Critical
			return outcome
		})
	}

	outcomes := pool.Wait()

	var failed, conflicted int
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.Path, o.Err)
		case o.Conflicts > 0:
			conflicted++
			fmt.Fprintf(os.Stderr, "! %s: %d conflicts (%d critical)\n", o.Path, o.Conflicts, o.Critical)
		default:
			fmt.Fprintf(os.Stderr, "✓ %s: clean\n", o.Path)
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d files, %d with conflicts, %d failed. Reports in %s\n",
		len(outcomes), conflicted, failed, outputDir)

	if failed > 0 {
		return fmt.Errorf("%d files failed to check", failed)
	}
	return nil
}

// collectTimelineFiles expands directories into their .yaml/.yml files.
func collectTimelineFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return files, nil
}
