package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"pipenet/internal/codec"
	"pipenet/internal/config"
	"pipenet/internal/console"
	"pipenet/internal/repository"
	"pipenet/internal/repository/file"
	"pipenet/internal/repository/sqlite"
	"pipenet/internal/service"
	"pipenet/internal/watcher"
)

const usage = `Usage: pipenet [flags] [command]

Commands:
  menu      interactive console (default)
  order     print the topological order of the stored network
  export    write the stored network to stdout (-format csv|json|yaml)
  watch     print the order again whenever the data file changes (file backend)
  config    print the effective configuration (-write PATH saves it)

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pipenet: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pipenet", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "config file path (default: search standard locations)")
	backend := fs.String("backend", "", "storage backend: file or sqlite")
	format := fs.String("format", "", "file format: csv, json or yaml")
	dataPath := fs.String("data", "", "data file or database path")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, source, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	err = cfg.Apply(config.Overrides{
		Backend:  *backend,
		Format:   *format,
		Path:     *dataPath,
		LogLevel: *logLevel,
	})
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, stderr)
	logger.Debug("configuration loaded", "source", source, "summary", cfg.Summary())

	cmd := "menu"
	if fs.NArg() > 0 {
		cmd = fs.Arg(0)
	}
	if cmd == "config" {
		return runConfig(cfg, source, fs.Args()[1:], stdout, stderr)
	}

	repo, err := openRepository(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	eventBus := service.NewEventBus()
	eventBus.Subscribe(service.LogEvents(logger))
	svc := service.NewNetworkService(repo, eventBus, logger)

	switch cmd {
	case "menu":
		return console.NewMenu(svc, stdin, stdout, logger).Run(ctx)
	case "order":
		if err := svc.Load(ctx); err != nil {
			return err
		}
		console.PrintOrder(stdout, svc.OrderedStations())
		return nil
	case "export":
		return runExport(ctx, svc, fs.Args()[1:], stdout, stderr)
	case "watch":
		fileRepo, ok := repo.(*file.Repository)
		if !ok {
			return fmt.Errorf("watch requires the %s backend", config.BackendFile)
		}
		return runWatch(ctx, svc, fileRepo, stdout, logger)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runExport(ctx context.Context, svc *service.NetworkService, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", codec.FormatYAML, "output format: csv, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	exp, err := codec.ForFormat(*format)
	if err != nil {
		return err
	}
	if err := svc.Load(ctx); err != nil {
		return err
	}
	return exp.Export(svc.Snapshot(), stdout)
}

func runWatch(ctx context.Context, svc *service.NetworkService, repo *file.Repository, stdout io.Writer, logger *slog.Logger) error {
	path := repo.Path()
	printOrder := func() {
		if err := svc.Load(ctx); err != nil {
			logger.Error("reload failed", "path", path, "error", err)
			return
		}
		console.PrintOrder(stdout, svc.OrderedStations())
	}

	printOrder()
	err := watcher.New(path, printOrder, logger).Watch(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// runConfig prints where the configuration came from and, with -write,
// saves it with an absolute storage path so the file works from any directory.
func runConfig(cfg *config.Config, source string, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	writePath := fs.String("write", "", "save the effective configuration to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(stdout, "Source: %s\n%s\n", source, cfg.Summary())
	if *writePath == "" {
		return nil
	}

	abs, err := filepath.Abs(cfg.Storage.Path)
	if err != nil {
		return err
	}
	cfg.Storage.Path = abs
	if err := cfg.Save(*writePath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(stdout, "Configuration written to %s\n", *writePath)
	return nil
}

func loadConfig(path string) (*config.Config, string, error) {
	var (
		cfg    *config.Config
		source string
		err    error
	)
	if path != "" {
		cfg, source, err = config.LoadFromPath(path)
	} else {
		cfg, source, err = config.Load()
	}
	if err != nil {
		return nil, source, fmt.Errorf("load config: %w", err)
	}
	return cfg, source, nil
}

func openRepository(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (repository.Repository, error) {
	if cfg.Backend != config.BackendSQLite {
		return file.New(cfg.Path, cfg.Format)
	}

	repo, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if ts, err := repo.LastSaved(ctx); err != nil {
		logger.Warn("read last save time", "error", err)
	} else if ts != nil {
		logger.Info("database opened", "path", cfg.Path, "last_save", ts.Format(time.RFC3339))
	}
	return repo, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
