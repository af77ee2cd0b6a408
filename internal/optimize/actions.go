// Package optimize implements the batch optimize command: read rendered
// pages from disk or over HTTP, run the LCP pipeline on each, and write
// the results out.
package optimize

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/urfave/cli/v2"

	"github.com/speedkit/lcpboost/internal/common"
	"github.com/speedkit/lcpboost/pkg/db"
	"github.com/speedkit/lcpboost/pkg/fetcher"
	"github.com/speedkit/lcpboost/pkg/injector"
	"github.com/speedkit/lcpboost/pkg/storage"
)

// Job is one page to optimize.
type Job struct {
	Source string // file path or URL
	IsURL  bool
	Path   string // request path for the page identity
}

// Result holds the outcome of a processed job.
type Result struct {
	Source   string
	FilePath string
	Changed  bool
	Error    error
}

// OptimizeAction runs the worker pool over the requested inputs.
func OptimizeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if cfg.HomeURL == "" {
		return fmt.Errorf("home_url must be set in the config")
	}

	jobsList, err := collectJobs(c)
	if err != nil {
		return err
	}
	if len(jobsList) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no inputs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  lcpboost optimize --files "page.html" --path /about`)
		fmt.Fprintln(os.Stderr, `  lcpboost optimize --urls "https://example.com/,https://example.com/about"`)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	opt := common.NewOptimizer(cfg, database)
	s := &storage.Storage{}
	f := fetcher.NewFetcher()
	isMobile := c.Bool("mobile")
	outputDir := c.String("output-dir")

	workerCount := cfg.Workers
	if workerCount <= 0 {
		workerCount = 4
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(jobsList))
	results := make(chan Result, len(jobsList))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(w, logger, opt, s, f, isMobile, outputDir, &wg, jobs, results)
	}
	for _, job := range jobsList {
		jobs <- job
	}
	close(jobs)
	wg.Wait()
	close(results)

	var failed, changed int
	for result := range results {
		if result.Error != nil {
			failed++
			continue
		}
		if result.Changed {
			changed++
		}
	}

	fmt.Printf("%d/%d pages optimized, %d changed\n", len(jobsList)-failed, len(jobsList), changed)
	if failed == len(jobsList) {
		os.Exit(2)
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

// worker processes jobs until the channel closes.
func worker(id int, logger *slog.Logger, opt *injector.Optimizer, s *storage.Storage, f *fetcher.Fetcher, isMobile bool, outputDir string, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("worker started job", "worker", id, "source", job.Source)
		result := Result{Source: job.Source}

		var doc []byte
		var err error
		if job.IsURL {
			doc, err = f.GetHTML(job.Source)
		} else {
			doc, err = s.ReadFile(job.Source)
		}
		if err != nil {
			logger.Error("failed to read input", "worker", id, "source", job.Source, "error", err)
			result.Error = err
			results <- result
			continue
		}

		out := opt.Optimize(string(doc), injector.Request{Path: job.Path, IsMobile: isMobile})
		result.Changed = out != string(doc)

		fn := savePath(outputDir, job)
		if err := s.SaveFile(fn, []byte(out)); err != nil {
			logger.Error("failed to save output", "worker", id, "path", fn, "error", err)
			result.Error = err
			results <- result
			continue
		}

		result.FilePath = fn
		results <- result
		logger.Info("worker finished job", "worker", id, "source", job.Source, "changed", result.Changed, "output", fn)
	}
}

// collectJobs turns the --files and --urls flags into jobs with derived
// request paths.
func collectJobs(c *cli.Context) ([]Job, error) {
	if c.IsSet("files") && c.IsSet("urls") {
		return nil, fmt.Errorf("cannot use both --files and --urls")
	}

	var out []Job
	for _, file := range common.SplitList(c.String("files")) {
		path := c.String("path")
		if path == "" {
			path = common.RequestPath(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
		}
		out = append(out, Job{Source: file, Path: path})
	}
	for _, raw := range common.SplitList(c.String("urls")) {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("malformed URL %q", raw)
		}
		out = append(out, Job{Source: raw, IsURL: true, Path: u.Path})
	}
	return out, nil
}

// savePath derives a filesystem-friendly output location for one job.
func savePath(outputDir string, job Job) string {
	name := filepath.Base(job.Source)
	if job.IsURL {
		name = sanitizeName(job.Source) + ".html"
	}
	if outputDir == "" {
		outputDir = "optimized"
	}
	return filepath.Join(outputDir, name)
}

// sanitizeName flattens a URL into a single path segment.
func sanitizeName(rawURL string) string {
	name := rawURL
	for _, prefix := range []string{"https://", "http://"} {
		name = strings.TrimPrefix(name, prefix)
	}
	name = strings.TrimSuffix(name, "/")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
