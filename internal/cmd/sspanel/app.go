package sspanel

import (
	"context"

	"github.com/iyouport-org/sspanel/pkg/config"
	"github.com/iyouport-org/sspanel/pkg/store"
	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
)

func NewRepository(lc fx.Lifecycle, conf *config.ConfigGo) *store.Repository {
	repo := store.New(conf.DB.DB, conf.Panel)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Debug("closing database")
			return conf.DB.Close()
		},
	})
	return repo
}

func newApp(opts ...fx.Option) *fx.App {
	base := []fx.Option{
		fx.Provide(
			config.NewConf,
			NewRepository,
		),
		fx.Logger(log.StandardLogger()),
		fx.Invoke(config.InitLog),
	}
	return fx.New(append(base, opts...)...)
}

// withRepository starts a short-lived app, hands its repository to fn and
// shuts the app down again.
func withRepository(fn func(ctx context.Context, repo *store.Repository) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var repo *store.Repository
	app := newApp(fx.Populate(&repo))
	if err := app.Start(ctx); err != nil {
		log.Error(err)
		return err
	}
	defer func() {
		if err := app.Stop(ctx); err != nil {
			log.Error(err)
		}
	}()
	return fn(ctx, repo)
}
