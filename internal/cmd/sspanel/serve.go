package sspanel

import (
	"github.com/iyouport-org/sspanel/pkg/server"
	"github.com/iyouport-org/sspanel/pkg/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  serveExec,
}

var serveMigrate bool

func init() {
	ServeCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "create or update tables before serving")
}

func serveExec(cmd *cobra.Command, args []string) error {
	app := newApp(
		fx.Provide(server.NewServer),
		fx.Invoke(func(repo *store.Repository) error {
			if !serveMigrate {
				return nil
			}
			if err := repo.Migrate(); err != nil {
				log.Error(err)
				return err
			}
			return nil
		}),
		fx.Invoke(func(*server.Server) {}),
	)
	if err := app.Err(); err != nil {
		log.Error(err)
		return err
	}
	app.Run()
	return nil
}
