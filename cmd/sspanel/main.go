package main

import (
	"os"

	"github.com/iyouport-org/sspanel/internal/cmd/sspanel"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func main() {
	if err := sspanel.RootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	err := viper.BindPFlag("config", sspanel.RootCmd.PersistentFlags().Lookup("config"))
	if err != nil {
		log.Error(err)
	}
	log.SetReportCaller(true)
}
