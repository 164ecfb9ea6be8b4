package sspanel

import "github.com/spf13/cobra"

var RootCmd = &cobra.Command{
	Use:           "sspanel",
	Short:         "Shadowsocks panel data service",
	Long:          "sspanel keeps proxy accounts, nodes and their traffic logs, and serves them over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "config file (default ./sspanel.toml or /etc/sspanel/sspanel.toml)")
	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(MigrateCmd)
	RootCmd.AddCommand(AccountCmd)
	RootCmd.AddCommand(StatsCmd)
	RootCmd.AddCommand(ConfigCmd)
}
