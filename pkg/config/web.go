package config

import "time"

type WebTOML struct {
	Listen   string        `mapstructure:"listen" toml:"listen" validate:"required,hostname_port"`
	Gzip     bool          `mapstructure:"gzip" toml:"gzip"`
	StatsTTL time.Duration `mapstructure:"stats_ttl" toml:"stats_ttl" validate:"gte=0"`
	Mode     string        `mapstructure:"mode" toml:"mode" validate:"omitempty,oneof=debug release test"`
}

type WebGo struct {
	Addr     string
	Gzip     bool
	StatsTTL time.Duration
	Mode     string
}

func (wt *WebTOML) Init() *WebGo {
	return &WebGo{
		Addr:     wt.Listen,
		Gzip:     wt.Gzip,
		StatsTTL: wt.StatsTTL,
		Mode:     wt.Mode,
	}
}
