package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/quantumfamily/archetype/internal/api"
	"github.com/quantumfamily/archetype/internal/config"
	"github.com/quantumfamily/archetype/internal/db"
	"github.com/quantumfamily/archetype/internal/httputil"
	"github.com/quantumfamily/archetype/internal/render"
	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/scene"
	"github.com/quantumfamily/archetype/internal/survey"
	"github.com/quantumfamily/archetype/internal/timeutil"
	"github.com/quantumfamily/archetype/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to JSON config file (defaults built in when empty)")
	listen      = flag.String("listen", "", "Listen address (overrides config and PORT)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags]\n", os.Args[0])
	fmt.Fprintf(out, "       %s migrate <command> [args]\n\n", os.Args[0])
	flag.PrintDefaults()
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.EmptyConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app holds everything main wires together.
type app struct {
	handler http.Handler
	close   func() error
}

// newApp builds the row source, role catalog, scene and HTTP handler from cfg.
func newApp(cfg *config.Config) (*app, error) {
	catalog, err := roles.NewCatalog(cfg.GetRoleOrder())
	if err != nil {
		return nil, fmt.Errorf("role catalog: %w", err)
	}

	sc, err := scene.Build(cfg.Scene, catalog.Names())
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}

	renderer, err := render.NewRenderer(render.DefaultTemplates(), render.Options{
		ParentOrigin: cfg.GetParentOrigin(),
		Chart:        scene.ChartOptions{AssetsHost: cfg.GetAssetsHost()},
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	var (
		src      survey.Source
		database *db.DB
		closer   = func() error { return nil }
	)
	switch cfg.GetSource() {
	case config.SourceSheet:
		if cfg.GetSheetURL() == "" {
			return nil, errors.New("sheet source requires sheet_url or ARCHETYPE_SHEET_URL")
		}
		src = survey.NewSheetSource(cfg.GetSheetURL(), httputil.NewStandardClient(cfg.GetFetchTimeout()))
		log.Printf("reading survey rows from sheet endpoint")
	case config.SourceSQLite:
		database, err = db.NewDB(cfg.GetDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		src = database
		closer = database.Close
		log.Printf("reading survey rows from %s", cfg.GetDBPath())
	}

	cached := survey.NewCachedSource(src, cfg.GetCacheTTL(), timeutil.RealClock{})
	server := api.NewServer(cached, catalog, sc, renderer, cfg.GetParentOrigin())
	mux := server.ServeMux()

	if database != nil {
		if err := database.AttachAdminRoutes(mux); err != nil {
			closer()
			return nil, err
		}
	}

	return &app{handler: server.Handler(mux), close: closer}, nil
}

func runMigrate(args []string, out io.Writer) error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	return db.RunMigrateCommand(args, cfg.GetDBPath(), out)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() > 0 {
		switch flag.Arg(0) {
		case "migrate":
			if err := runMigrate(flag.Args()[1:], os.Stdout); err != nil {
				log.Fatalf("migrate: %v", err)
			}
			return
		default:
			usage()
			os.Exit(2)
		}
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	addr := cfg.GetListen()
	if *listen != "" {
		addr = *listen
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer func() {
		if err := a.close(); err != nil {
			log.Printf("close source: %v", err)
		}
	}()

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		server := &http.Server{
			Addr:              addr,
			Handler:           a.handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Printf("archetype %s listening on %s", version.Version, addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			// Force close the server if graceful shutdown fails
			if err := server.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
