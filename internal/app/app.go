package app

import (
	"context"

	"github.com/avc-dev/tag-registry/internal/config"
	"github.com/avc-dev/tag-registry/internal/handler"
	"go.uber.org/zap"
)

// App представляет приложение реестра тегов
type App struct {
	config  *config.Config
	logger  *zap.Logger
	handler *handler.Handler
	closers []func()
}

// New создает новый экземпляр приложения
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	h, closers, err := initDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		handler: h,
		closers: closers,
	}, nil
}

// Run запускает приложение
func Run() error {
	app, err := New(context.Background())
	if err != nil {
		return err
	}
	defer app.logger.Sync()
	defer app.close()

	return app.start()
}

// close освобождает ресурсы в обратном порядке создания
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
