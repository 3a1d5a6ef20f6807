// Package cli implements the interactive creatorsync client: a small REPL
// over the per-domain sync engines. It is a consumer of the engine — all
// consistency guarantees live below it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/creatorsync/creatorsync/internal/config"
	"github.com/creatorsync/creatorsync/internal/creator"
	"github.com/creatorsync/creatorsync/internal/localstore"
	"github.com/creatorsync/creatorsync/internal/logging"
	"github.com/creatorsync/creatorsync/internal/media"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/remote/dynamo"
	"github.com/creatorsync/creatorsync/internal/remote/memory"
	"github.com/creatorsync/creatorsync/internal/remote/postgres"
	"github.com/creatorsync/creatorsync/internal/session"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	workspace *creator.Workspace
	uploader  *media.Uploader
	sess      *session.Session
	reader    *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	local, err := localstore.InitDatabase(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local database: %w", err)
	}

	rs, err := newRemoteStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	uploader, err := media.NewUploader(ctx, media.Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.AWSRegion,
		BaseEndpoint: cfg.S3BaseEndpoint,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
	})
	if err != nil {
		// Media uploads are optional; clips stay metadata-only without them.
		logger.Warn(ctx, "media uploader unavailable", "error", err)
		uploader = nil
	}

	return &App{
		config:    cfg,
		logger:    logger,
		workspace: creator.NewWorkspace(local, rs, logger),
		uploader:  uploader,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func newRemoteStore(ctx context.Context, cfg *config.Config) (remote.Store, error) {
	switch cfg.RemoteBackend {
	case config.BackendDynamo:
		return dynamo.NewFromRegion(ctx, cfg.AWSRegion, cfg.DynamoTable)
	case config.BackendPostgres:
		return postgres.InitDatabase(ctx, cfg.DatabaseDSN)
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown remote backend: %q", cfg.RemoteBackend)
	}
}

func (a *App) isLoggedIn() bool {
	return a.sess != nil
}

func (a *App) Run(ctx context.Context) {
	// Initial load works offline; with no session the merge pass simply
	// falls back to the local view.
	if err := a.workspace.LoadAll(ctx, a.sess); err != nil {
		a.logger.Error(ctx, "initial load failed", "error", err)
	}
	a.Root(ctx)
}
