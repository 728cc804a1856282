// allot runs the invigilator allocation for the configured exam dates and
// prints a duty roster per date.
//
// Usage:
//
//	allot [--config allot.yaml] [--date 2024-03-08 ...] [--format text|csv|json] [--seed N] [--dry-run]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/app"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/internal/config"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/report"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
)

func main() {
	logLevel := slog.LevelWarn
	if os.Getenv("ALLOT_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if err := run(os.Args[1:], os.Stdout, os.Stderr, logger); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	dates      []string
	format     string
	seed       int64
	dryRun     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("allot", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "YAML config file (default: $ALLOT_CONFIG or allot.yaml)")
	flagSet.StringSliceVar(&opts.dates, "date", nil, "exam date to allot, YYYY-MM-DD (repeatable; default: every configured date)")
	flagSet.StringVar(&opts.format, "format", "text", "output format: text, csv or json")
	flagSet.Int64Var(&opts.seed, "seed", 0, "shuffle seed; 0 picks a random one")
	flagSet.BoolVar(&opts.dryRun, "dry-run", false, "print the allotment without saving it")

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	switch opts.format {
	case "text", "csv", "json":
	default:
		return opts, fmt.Errorf("unknown format %q (want text, csv or json)", opts.format)
	}
	for _, d := range opts.dates {
		if _, err := models.ParseDate(d); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	config.LoadDotEnv()
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	configs, err := selectDates(a.Configs.Snapshot(), opts.dates)
	if err != nil {
		return err
	}

	staff, err := a.Repo.LoadStaff(ctx)
	if err != nil {
		return err
	}
	pool := scheduler.FilterExcluded(staff, a.Exclusions.Snapshot())
	logger.Debug("allocating", "dates", len(configs), "staff", len(staff), "pool", len(pool))

	sched := scheduler.NewScheduler(nil)
	if opts.seed != 0 {
		sched = scheduler.NewSeededScheduler(opts.seed)
	}
	allotment, shortfalls, err := sched.AllocateAll(pool, configs)
	if err != nil {
		return err
	}

	if err := writeAllotment(stdout, opts.format, allotment, configs); err != nil {
		return err
	}
	printShortfalls(stderr, shortfalls)

	if opts.dryRun {
		return nil
	}
	if err := a.Repo.SaveAllotment(ctx, allotment); err != nil {
		return err
	}
	filled, short := seatTotals(allotment, shortfalls)
	if err := a.Repo.RecordRun(ctx, len(allotment), filled, short); err != nil {
		logger.Warn("could not record run", "error", err)
	}
	return nil
}

// selectDates narrows configs to the requested dates; none requested means all.
func selectDates(configs map[string]models.DateConfig, dates []string) (map[string]models.DateConfig, error) {
	if len(dates) == 0 {
		if len(configs) == 0 {
			return nil, errors.New("no exam dates configured")
		}
		return configs, nil
	}
	out := make(map[string]models.DateConfig, len(dates))
	for _, d := range dates {
		cfg, ok := configs[d]
		if !ok {
			return nil, fmt.Errorf("date %s is not configured", d)
		}
		out[d] = cfg
	}
	return out, nil
}

func writeAllotment(w io.Writer, format string, allotment models.Allotment, configs map[string]models.DateConfig) error {
	if format == "json" {
		data, err := report.AllotmentJSON(allotment)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	dates := make([]string, 0, len(allotment))
	for d := range allotment {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for i, d := range dates {
		roster := report.BuildRoster(d, configs[d].Settings, allotment[d])
		if i > 0 {
			fmt.Fprintln(w)
		}
		if format == "csv" {
			fmt.Fprintf(w, "# %s\n", d)
			if err := roster.WriteCSV(w); err != nil {
				return err
			}
			continue
		}
		if _, err := io.WriteString(w, roster.Text()); err != nil {
			return err
		}
	}
	return nil
}

func printShortfalls(w io.Writer, shortfalls []models.Shortfall) {
	if len(shortfalls) == 0 {
		return
	}
	fmt.Fprintf(w, "%d room(s) short of invigilators:\n", len(shortfalls))
	for _, s := range shortfalls {
		fmt.Fprintf(w, "  %s room %s: needs %d, got %d\n", s.Date, s.RoomNo, s.Required, s.Assigned)
	}
}

func seatTotals(allotment models.Allotment, shortfalls []models.Shortfall) (filled, short int) {
	for _, assignments := range allotment {
		for _, a := range assignments {
			filled += len(a.Staff)
		}
	}
	for _, s := range shortfalls {
		short += s.Required - s.Assigned
	}
	return filled, short
}
