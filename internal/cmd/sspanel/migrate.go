package sspanel

import (
	"context"

	"github.com/iyouport-org/sspanel/pkg/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the panel tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(ctx context.Context, repo *store.Repository) error {
			if err := repo.Migrate(); err != nil {
				return err
			}
			log.Info("migration done")
			return nil
		})
	},
}
