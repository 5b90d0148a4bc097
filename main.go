package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"afterschool-planner/bellsched"
	"afterschool-planner/config"
	"afterschool-planner/crawler"
	"afterschool-planner/exporter"
	"afterschool-planner/noschool"
	"afterschool-planner/oracle"
	"afterschool-planner/planner"
)

var (
	configPath string
	rosterPath string
	outDir     string
	noAI       bool
	noRender   bool
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "afterschool",
		Short:         "Plan after-school program sessions from school websites",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (defaults used when omitted)")
	root.PersistentFlags().BoolVar(&noAI, "no-ai", false, "disable the AI oracle even when GEMINI_API_KEY is set")
	root.PersistentFlags().BoolVar(&noRender, "no-render", false, "disable the headless-browser fetch fallback")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Plan sessions for every school in the roster",
		RunE:  runPlan,
	}
	runCmd.Flags().StringVar(&rosterPath, "roster", "", "roster CSV (required)")
	runCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	runCmd.MarkFlagRequired("roster")

	crawlCmd := &cobra.Command{
		Use:   "crawl <homepage-url>",
		Short: "Crawl one school homepage and print the resolved URLs",
		Args:  cobra.ExactArgs(1),
		RunE:  runCrawl,
	}

	root.AddCommand(runCmd, crawlCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log.Sugar(), nil
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// newOracle returns the Gemini oracle, or nil when disabled or
// unconfigured. A nil oracle leaves every stage on its heuristics.
func newOracle(cmd *cobra.Command, cfg *config.Config, log *zap.SugaredLogger) *oracle.Gemini {
	if noAI || !cfg.Crawler.UseAI {
		return nil
	}
	g, err := oracle.NewGemini(cmd.Context(), os.Getenv("GEMINI_API_KEY"), cfg.Crawler.AIModel)
	if err != nil {
		log.Infow("AI oracle unavailable, using heuristics", "err", err)
		return nil
	}
	return g
}

func newFetcher(cfg *config.Config, log *zap.SugaredLogger) *crawler.Fetcher {
	var renderer crawler.Renderer
	if cfg.Crawler.RenderFallback && !noRender {
		renderer = crawler.NewRodRenderer()
	}
	return crawler.NewFetcher(renderer, log)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schools, err := planner.LoadRoster(rosterPath)
	if err != nil {
		return err
	}
	if len(schools) == 0 {
		return fmt.Errorf("roster %s has no usable rows", rosterPath)
	}

	fetcher := newFetcher(cfg, log)
	gemini := newOracle(cmd, cfg, log)

	var picker crawler.LinkPicker
	var dismissal bellsched.DismissalPicker
	var classifier noschool.DateClassifier
	if gemini != nil {
		picker = gemini
		dismissal = gemini
		classifier = gemini
	}

	cr := crawler.New(fetcher, picker, crawler.Options{
		MaxAnchors:    cfg.Crawler.MaxAnchors,
		MaxChildPages: cfg.Crawler.MaxChildPages,
		Delay:         time.Duration(cfg.Crawler.DelayBetweenSchools) * time.Second,
	}, log)
	extractor := noschool.NewExtractor(fetcher, classifier, log)
	p := planner.New(cfg, cr, fetcher, extractor, dismissal, log)

	sessions, results, err := p.Run(cmd.Context(), schools)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			log.Warnw("school not planned", "school", r.School, "err", r.Err)
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	rows, err := exporter.Rows(sessions, exporter.Options{
		Columns:       cfg.Export.Columns,
		TitleTemplate: cfg.Export.TitleTemplate,
		NotesTemplate: cfg.Export.NotesTemplate,
	})
	if err != nil {
		return err
	}
	csvPath := filepath.Join(outDir, "sessions.csv")
	if err := exporter.WriteCSV(csvPath, rows); err != nil {
		return err
	}

	icsPath := filepath.Join(outDir, "sessions.ics")
	if err := exporter.WriteICS(icsPath, sessions); err != nil {
		return err
	}

	summaries := exporter.Summarize(sessions, planner.NoClassBySchool(results), cfg.Schedule.TargetSessions, cfg.Schedule.MinSessions)
	fmt.Print(exporter.RenderReport(summaries))

	log.Infow("run complete", "schools", len(schools), "sessions", len(sessions), "csv", csvPath, "ics", icsPath)
	return nil
}

func runCrawl(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := newFetcher(cfg, log)
	var picker crawler.LinkPicker
	if gemini := newOracle(cmd, cfg, log); gemini != nil {
		picker = gemini
	}

	cr := crawler.New(fetcher, picker, crawler.Options{
		MaxAnchors:    cfg.Crawler.MaxAnchors,
		MaxChildPages: cfg.Crawler.MaxChildPages,
	}, log)

	result := cr.Crawl(cmd.Context(), args[0])
	fmt.Println("Bell schedule:", orDash(result.BellURL))
	fmt.Println("Calendar page:", orDash(result.CalURL))
	fmt.Println("Calendar feed:", orDash(result.FeedURL))
	for k, v := range result.Debug {
		fmt.Printf("  %s: %s\n", k, v)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
