package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/use-agent/sitelens/analyzer"
	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/engine"
	"github.com/use-agent/sitelens/export"
	"github.com/use-agent/sitelens/models"
	"github.com/use-agent/sitelens/screenshot"
)

// maxDisplayedHeadings bounds the summary output only; the result keeps all headings.
const maxDisplayedHeadings = 10

// Flag variables.
var (
	flagJSON        bool
	flagOutputDir   string
	flagMaxPages    int
	flagScreenshots bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a website's structure",
	Long: `Analyze fetches a page through the proxy and direct strategies, extracts
its structure and prints a summary. Configuration is read from SITELENS_*
environment variables and an optional .env file.

Examples:
  sitelensctl analyze example.com
  sitelensctl analyze https://example.com --json
  sitelensctl analyze example.com --out ./report --screenshots`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the full result as JSON")
	analyzeCmd.Flags().StringVar(&flagOutputDir, "out", "", "Write result.json and the page source to this directory")
	analyzeCmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "Maximum same-domain pages to list (default: SITELENS_MAX_PAGES or 15)")
	analyzeCmd.Flags().BoolVar(&flagScreenshots, "screenshots", false, "Also download the screenshots into --out")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := config.Load()
	if flagMaxPages > 0 {
		cfg.Discovery.MaxPages = flagMaxPages
	}
	if flagScreenshots && flagOutputDir == "" {
		return fmt.Errorf("--screenshots requires --out")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	dispatcher := engine.NewDispatcher(engine.NewDefaultEngines(cfg.Fetch), cfg.Fetch.MinContentLength)
	an := analyzer.New(dispatcher, screenshot.New(cfg.Screenshot),
		analyzer.WithMaxPages(cfg.Discovery.MaxPages),
	)

	result, err := an.Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		printSummary(out, result)
	}

	if flagOutputDir == "" {
		return nil
	}
	return writeOutputs(ctx, out, result)
}

func writeOutputs(ctx context.Context, out io.Writer, result *models.AnalysisResult) error {
	w, err := export.NewWriter(flagOutputDir)
	if err != nil {
		return err
	}
	paths, err := w.WriteBundle(result)
	if err != nil {
		return err
	}
	if flagScreenshots {
		client := &http.Client{Timeout: 60 * time.Second}
		shotPaths, err := w.DownloadScreenshots(ctx, client, result)
		paths = append(paths, shotPaths...)
		if err != nil {
			return err
		}
	}
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "wrote %s\n", p)
	}
	return nil
}

// printSummary writes a human-readable report. Only the first
// maxDisplayedHeadings headings are listed.
func printSummary(w io.Writer, r *models.AnalysisResult) {
	fmt.Fprintf(w, "URL:         %s\n", r.URL)
	fmt.Fprintf(w, "Title:       %s\n", r.Title)
	fmt.Fprintf(w, "Description: %s\n", r.Description)
	fmt.Fprintf(w, "Source:      %s\n", r.Source)
	fmt.Fprintf(w, "Analyzed:    %s\n\n", r.Timestamp.Format(time.RFC3339))

	fmt.Fprintf(w, "Links: %d  Images: %d  Forms: %d  Headings: %d\n",
		r.Elements.Links, r.Elements.Images, r.Elements.Forms, len(r.Elements.Headings))

	if n := len(r.Elements.Headings); n > 0 {
		fmt.Fprintln(w, "\nHeadings:")
		for i, h := range r.Elements.Headings {
			if i == maxDisplayedHeadings {
				fmt.Fprintf(w, "  ... and %d more\n", n-maxDisplayedHeadings)
				break
			}
			fmt.Fprintf(w, "  %d. %s\n", i+1, h)
		}
	}

	if len(r.AdditionalPages) > 0 {
		fmt.Fprintf(w, "\nSame-domain pages (%d):\n", len(r.AdditionalPages))
		for _, p := range r.AdditionalPages {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}

	fmt.Fprintln(w, "\nScreenshots:")
	fmt.Fprintf(w, "  full page: %s\n", r.Screenshots.FullPage)
	fmt.Fprintf(w, "  desktop:   %s\n", r.Screenshots.Desktop)
	fmt.Fprintf(w, "  mobile:    %s\n", r.Screenshots.Mobile)
}
