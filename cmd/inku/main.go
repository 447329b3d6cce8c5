package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	identityadapter "github.com/Juliorubiodev/inku-go/internal/adapter/driven/identity"
	restadapter "github.com/Juliorubiodev/inku-go/internal/adapter/driven/rest"
	sqliteadapter "github.com/Juliorubiodev/inku-go/internal/adapter/driven/sqlite"
	storageadapter "github.com/Juliorubiodev/inku-go/internal/adapter/driven/storage"
	"github.com/Juliorubiodev/inku-go/internal/application"
	"github.com/Juliorubiodev/inku-go/internal/cli"
	"github.com/Juliorubiodev/inku-go/internal/config"
	"github.com/Juliorubiodev/inku-go/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		var reqErr *driven.RequestError
		if errors.As(err, &reqErr) {
			fmt.Fprintln(os.Stderr, reqErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run() error {
	// 1. Quiet structured logging by default; INKU_DEBUG turns it up.
	level := slog.LevelWarn
	if os.Getenv("INKU_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// 2. Load configuration. Missing identity credentials do not fail
	// here; commands that need them surface the aggregated error.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Setup signal-based context (SIGINT, SIGTERM) so in-flight
	// requests are cancelled on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Open the local state database and apply migrations.
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	// 5. Wire the token provider and one request pipeline per backend.
	sessions := identityadapter.NewClient(cfg.FirebaseAPIKey)
	catalogAPI := restadapter.NewCatalogService(restadapter.NewClient(cfg.APIBaseURL, sessions, cfg.HTTPTimeout))
	listAPI := restadapter.NewListService(restadapter.NewClient(cfg.ListAPIURL, sessions, cfg.HTTPTimeout))
	authAPI := restadapter.NewAuthService(restadapter.NewClient(cfg.AuthAPIURL, sessions, cfg.HTTPTimeout))

	// 6. Wire application services.
	app := &cli.App{
		Config:  cfg,
		Auth:    application.NewAuthFlow(sessions, sqliteadapter.NewSessionRepo(db, cfg.SecretKey), authAPI),
		Library: application.NewLibrary(catalogAPI, sqliteadapter.NewCatalogCacheRepo(db)),
		Lists:   application.NewLists(listAPI),
		Uploads: application.NewUploads(catalogAPI, storageadapter.NewUploader()),
	}

	// 7. Run the command tree.
	return cli.NewRootCommand(app).ExecuteContext(ctx)
}
