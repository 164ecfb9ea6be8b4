package sspanel

import (
	"github.com/iyouport-org/sspanel/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a config file holding the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := "sspanel.toml"
		if len(args) == 1 {
			filename = args[0]
		}
		if err := config.WriteDefault(filename); err != nil {
			return err
		}
		log.WithField("file", filename).Info("config written")
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
}
