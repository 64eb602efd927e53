// Command export-csv dumps one user's expense records as CSV on stdout,
// optionally narrowed by the same filters the API accepts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shivthakur007/expense/internal/backend"
	"github.com/shivthakur007/expense/internal/config"
	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/engine"
	"github.com/shivthakur007/expense/internal/export"
	"github.com/shivthakur007/expense/internal/repository"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	uid := flag.String("uid", "", "user id owning the collection (empty selects the shared collection)")
	categories := flag.String("categories", "", "comma-separated category filter")
	modes := flag.String("modes", "", "comma-separated payment mode filter")
	from := flag.String("from", "", "inclusive start date (YYYY-MM-DD)")
	to := flag.String("to", "", "inclusive end date (YYYY-MM-DD)")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	if err := run(logger, *uid, *categories, *modes, *from, *to, *out); err != nil {
		fmt.Fprintln(os.Stderr, "export-csv:", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, uid, categories, modes, from, to, out string) error {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return err
	}
	defer func() {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
	}()

	docs, err := repository.New(result.Store, uid).ListAll(ctx)
	if err != nil {
		return err
	}

	records := engine.Normalize(docs)
	engine.SortByDateDesc(records)
	records = buildFilter(records, categories, modes, from, to).Apply(records)

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return export.Write(w, records)
}

// buildFilter mirrors the API's query semantics: no narrowing keeps the
// full snapshot, partial narrowing widens the other dimensions to every
// observed value.
func buildFilter(records []core.Expense, categories, modes, from, to string) engine.Filter {
	if categories == "" && modes == "" && from == "" && to == "" {
		return engine.Filter{ShowAll: true}
	}

	f := engine.DefaultFilter(records)
	if categories != "" {
		f.Categories = splitList(categories)
	}
	if modes != "" {
		f.PaymentModes = splitList(modes)
	}
	if from != "" {
		if t, err := core.ParseDate(from); err == nil {
			f.From = t
		}
	}
	if to != "" {
		if t, err := core.ParseDate(to); err == nil {
			f.To = t
		}
	}
	return f
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
