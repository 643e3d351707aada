package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/export"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
	"github.com/hyunsoo-an/purchase-review/internal/review"
)

func main() {
	var (
		dir        = flag.String("dir", "", "directory of per-case extraction JSON files (required)")
		out        = flag.String("out", "", "output directory for XLSX reports (defaults to -dir)")
		policyPath = flag.String("policy", "", "policy JSON file (defaults to the built-in policy)")
		workers    = flag.Int("workers", 4, "number of concurrent reviews")
	)
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir is required")
		os.Exit(1)
	}
	if *out == "" {
		*out = *dir
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pol := policy.Default()
	if *policyPath != "" {
		loaded, err := policy.Load(*policyPath)
		if err != nil {
			logger.Error("failed to load policy", "path", *policyPath, "error", err)
			os.Exit(1)
		}
		pol = loaded
	}

	svc, err := review.NewService(pol, logger)
	if err != nil {
		logger.Error("failed to build review service", "error", err)
		os.Exit(1)
	}

	cases, err := loadCases(*dir)
	if err != nil {
		logger.Error("failed to load cases", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(cases) == 0 {
		logger.Warn("no case files found", "dir", *dir)
		return
	}
	logger.Info("starting batch review", "cases", len(cases), "workers", *workers)

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", *out, "error", err)
		os.Exit(1)
	}

	pool := review.NewPool(svc, *workers, logger)
	outcomes := pool.Run(ctx, cases)

	exporter := export.NewService(logger)
	reviewed, failures := 0, 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures++
			continue
		}
		reviewed++

		data, err := exporter.ReportXLSX(outcome.Result)
		if err != nil {
			logger.Error("failed to build report", "case_id", outcome.Result.CaseID, "error", err)
			failures++
			continue
		}
		path := filepath.Join(*out, fmt.Sprintf("review-%s.xlsx", outcome.Result.CaseID))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Error("failed to write report", "path", path, "error", err)
			failures++
		}
	}

	logger.Info("batch review complete",
		"cases", len(cases),
		"reviewed", reviewed,
		"failures", failures,
		"output_dir", *out)

	fmt.Printf("Batch review complete!\n")
	fmt.Printf("- Cases: %d\n", len(cases))
	fmt.Printf("- Reviewed: %d\n", reviewed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Reports: %s\n", *out)

	if failures > 0 {
		os.Exit(1)
	}
}

// loadCases reads every .json file in dir as one CaseInput, in name order.
func loadCases(dir string) ([]entity.CaseInput, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var cases []entity.CaseInput
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var input entity.CaseInput
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if input.CaseID == uuid.Nil {
			input.CaseID = uuid.New()
		}
		if input.DisplayName == "" {
			input.DisplayName = strings.TrimSuffix(name, filepath.Ext(name))
		}
		cases = append(cases, input)
	}
	return cases, nil
}
