package config

import (
	"errors"
	"io"
	"os"

	pkglog "github.com/iyouport-org/sspanel/pkg/log"
	log "github.com/sirupsen/logrus"
)

type LogTOML struct {
	File  string `mapstructure:"file" toml:"file" validate:"required"`
	Level string `mapstructure:"level" toml:"level" validate:"required,oneof=panic fatal error warn info debug trace"`
	// Format is text, json or xml.
	Format string `mapstructure:"format" toml:"format" validate:"required,oneof=text json xml"`
	// Persist is the lowest level also written to the panel_log table; empty disables it.
	Persist string `mapstructure:"persist" toml:"persist" validate:"omitempty,oneof=panic fatal error warn info"`
}

type LogGo struct {
	File      io.Writer
	Level     log.Level
	Formatter log.Formatter
	Persist   bool
	PersistAt log.Level
}

func (lt *LogTOML) Init() (lg *LogGo, err error) {
	lg = &LogGo{}
	switch lt.File {
	case "stdout":
		lg.File = os.Stdout
	case "stderr":
		lg.File = os.Stderr
	default:
		fi, err := os.Stat(lt.File)
		if err == nil && fi.IsDir() {
			err = errors.New("is directory")
			log.WithField("log.file", lt.File).Error(err)
			return nil, err
		}
		if err != nil && !os.IsNotExist(err) {
			log.WithField("log.file", lt.File).Error(err)
			return nil, err
		}
		lg.File, err = os.OpenFile(lt.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.WithField("log.file", lt.File).Error(err)
			return nil, err
		}
	}
	lg.Level, err = log.ParseLevel(lt.Level)
	if err != nil {
		log.WithField("log.level", lt.Level).Error(err)
		return nil, err
	}
	switch lt.Format {
	case "json":
		lg.Formatter = &log.JSONFormatter{}
	case "xml":
		lg.Formatter = pkglog.XMLFormatter{}
	default:
		lg.Formatter = &log.TextFormatter{FullTimestamp: true}
	}
	if lt.Persist != "" {
		lg.Persist = true
		lg.PersistAt, err = log.ParseLevel(lt.Persist)
		if err != nil {
			log.WithField("log.persist", lt.Persist).Error(err)
			return nil, err
		}
	}
	return lg, nil
}
