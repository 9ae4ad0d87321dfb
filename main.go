package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sarzhann/clarify-dater/pkg"
	"go.uber.org/zap"
)

func main() {
	server := flag.String("server", "local", "choose environment. Stored under envs/<server>.env")
	item := flag.String("item", "data", "signal to which write data. Default:'data'")
	date := flag.String("date", "", "German date of a single value, e.g. '3. Januar 2024'")
	value := flag.Float64("value", 0, "value for the single insert")
	file := flag.String("file", "", "file with '<date>;<value>' rows, inserted as one bucket")
	locale := flag.String("locale", "de_DE", "locale of the month names, de_DE or de_AT")
	openai := flag.Bool("openai", false, "export "+pkg.KeyFile+" as "+pkg.KeyEnv+" before running")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, options{
		server: *server,
		item:   *item,
		date:   *date,
		value:  *value,
		file:   *file,
		locale: *locale,
		openai: *openai,
	}); err != nil {
		logger.Error("failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

type options struct {
	server, item, date, file string
	locale                   string
	value                    float64
	openai                   bool
}

func run(ctx context.Context, logger *zap.Logger, opts options) error {
	loc, err := pkg.LookupLocale(opts.locale)
	if err != nil {
		return err
	}

	if opts.openai {
		key, err := pkg.LoadKey()
		if err != nil {
			return err
		}
		logger.Info("key exported", zap.String("env", pkg.KeyEnv), zap.Int("length", len(key)))
	}

	if err := pkg.LoadEnv(opts.server); err != nil {
		return err
	}
	creds, err := pkg.LoadCreds()
	if err != nil {
		return err
	}

	inserter := &pkg.Inserter{
		Backend:  pkg.ClarifyBackend{Client: creds.Client(ctx)},
		Logger:   logger,
		SignalID: opts.item,
	}

	if opts.file != "" {
		readings, err := readFile(loc, opts.file)
		if err != nil {
			return err
		}
		return inserter.Bucket(ctx, readings)
	}

	if opts.date == "" {
		return errors.New("either -date or -file is required")
	}
	t, err := pkg.ParseDateIn(loc, opts.date)
	if err != nil {
		return err
	}
	return inserter.Single(ctx, t, opts.value)
}

func readFile(loc pkg.Locale, path string) ([]pkg.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	readings, err := pkg.ReadReadingsIn(loc, f)
	return readings, errors.Wrap(err, path)
}
