package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/mapty/internal/cli"
	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/config"
	"github.com/alexanderramin/mapty/internal/db"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/logging"
	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/alexanderramin/mapty/internal/metrics"
	"github.com/alexanderramin/mapty/internal/persistence"
	"github.com/alexanderramin/mapty/internal/repository"
	"github.com/alexanderramin/mapty/internal/service"
	"github.com/alexanderramin/mapty/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	conf, err := config.Load(configFlag(args))
	if err != nil {
		return err
	}

	logger, logCloser := logging.New(logging.SetupParams{
		LogFileName:   conf.LogPath(),
		LogToStderr:   conf.Log.Stderr,
		LogLevel:      conf.Log.Level,
		LogFormatJSON: conf.Log.JSON,
	})
	defer func() { err = multierr.Append(err, logCloser.Close()) }()

	entry := logger.WithFields(logrus.Fields{
		"backend": conf.Storage.Backend,
		"path":    conf.StoragePath(),
	})
	if conf.File != "" {
		entry = entry.WithField("config", conf.File)
	}
	entry.Debug("starting mapty")

	slots, slotsCloser, err := openSlots(conf)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, slotsCloser.Close()) }()

	var recorder metrics.Recorder = metrics.Noop()
	var textfile *metrics.PrometheusRecorder
	if conf.Metrics.Textfile != "" {
		textfile = metrics.NewPrometheusRecorder()
		recorder = textfile
	}

	st := store.New()
	service.SubscribeStoreMetrics(st, recorder)
	svc := service.NewWorkoutService(
		st,
		persistence.NewBridge(slots, conf.Storage.SlotKey),
		service.NewLogUseCaseObserver(logger),
		service.NewMetricsUseCaseObserver(recorder),
	)

	ctx := context.Background()
	logSlotInfo(ctx, logger, slots, conf.Storage.SlotKey)
	loaded := svc.Startup(ctx)

	app := &cli.App{
		Workouts: svc,
		Position: mapview.ConfiguredPosition{
			Enabled: conf.Map.Home.Enabled,
			Coords:  domain.Coordinates{Lat: conf.Map.Home.Lat, Lng: conf.Map.Home.Lng},
		},
		Zoom:       conf.Map.Zoom,
		Logger:     logger,
		LoadNotice: formatter.FormatLoadNotice(loaded),
	}

	// Detect interactive terminal for forms and the browse view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(ctx)

	if textfile != nil {
		if werr := textfile.WriteTextfile(conf.Metrics.Textfile); werr != nil {
			logger.WithError(werr).Warn("writing metrics textfile")
		}
	}
	return err
}

// logSlotInfo reports what the backend holds under key before it is read.
func logSlotInfo(ctx context.Context, logger logrus.FieldLogger, slots repository.SlotRepo, key string) {
	inspector, ok := slots.(repository.SlotInspector)
	if !ok {
		return
	}
	info, err := inspector.Info(ctx, key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.WithField("slot", key).Debug("no stored workouts")
	case err != nil:
		logger.WithError(err).WithField("slot", key).Debug("slot info unavailable")
	default:
		logger.WithFields(logrus.Fields{
			"slot":       info.Key,
			"bytes":      info.Bytes,
			"generation": info.Generation,
			"updated_at": info.UpdatedAt.Format(time.RFC3339),
		}).Debug("stored workouts found")
	}
}

// configFlag picks --config out of args before cobra runs, since the
// config decides how the App is built. Every other flag is left to cobra.
func configFlag(args []string) string {
	fs := pflag.NewFlagSet("mapty", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *path
}

// openSlots builds the configured slot backend and whatever must be closed
// with it.
func openSlots(conf *config.Config) (repository.SlotRepo, io.Closer, error) {
	switch conf.Storage.Backend {
	case config.BackendFile:
		compressor, err := repository.NewZstdCompressor()
		if err != nil {
			return nil, nil, err
		}
		slots, err := repository.NewFileSlotRepo(conf.StoragePath(), compressor)
		if err != nil {
			compressor.Close()
			return nil, nil, err
		}
		return slots, slots, nil
	default:
		database, err := db.OpenDB(conf.StoragePath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteSlotRepo(database), database, nil
	}
}
