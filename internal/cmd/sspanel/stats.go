package sspanel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iyouport-org/sspanel/pkg/store"
	"github.com/iyouport-org/sspanel/pkg/webapi"
	"github.com/spf13/cobra"
)

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print account and node statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(ctx context.Context, repo *store.Repository) error {
			stats, err := repo.Stats(ctx, time.Now())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(webapi.GetStats(stats), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		})
	},
}
