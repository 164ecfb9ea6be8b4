package config

import (
	"github.com/iyouport-org/sspanel/pkg/model"
	log "github.com/sirupsen/logrus"
)

type PanelTOML struct {
	DefaultTraffic  int64  `mapstructure:"default_traffic" toml:"default_traffic" validate:"gte=0"`
	DefaultMethod   string `mapstructure:"default_method" toml:"default_method" validate:"required"`
	DefaultProtocol string `mapstructure:"default_protocol" toml:"default_protocol" validate:"required"`
	DefaultObfs     string `mapstructure:"default_obfs" toml:"default_obfs" validate:"required"`
	StartPort       int    `mapstructure:"start_port" toml:"start_port" validate:"gt=1024,lt=50000"`
	LegacyCheckIn   bool   `mapstructure:"legacy_check_in" toml:"legacy_check_in"`
}

func (pt *PanelTOML) Init() model.Settings {
	s := model.Settings{
		DefaultTraffic:        pt.DefaultTraffic,
		DefaultMethod:         model.Method(pt.DefaultMethod),
		DefaultProtocol:       model.Protocol(pt.DefaultProtocol),
		DefaultObfs:           model.Obfs(pt.DefaultObfs),
		StartPort:             pt.StartPort,
		LegacyCheckInDayMatch: pt.LegacyCheckIn,
	}
	if !s.DefaultMethod.Known() {
		log.WithField("panel.default_method", pt.DefaultMethod).Warn("unrecognized method, passing it through")
	}
	if !s.DefaultProtocol.Known() {
		log.WithField("panel.default_protocol", pt.DefaultProtocol).Warn("unrecognized protocol, passing it through")
	}
	if !s.DefaultObfs.Known() {
		log.WithField("panel.default_obfs", pt.DefaultObfs).Warn("unrecognized obfs, passing it through")
	}
	return s
}
