package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	pkglog "github.com/iyouport-org/sspanel/pkg/log"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBType string

const (
	DBTypeMySQL      DBType = "mysql"
	DBTypePostgreSQL DBType = "postgresql"
	DBTypeSQLite     DBType = "sqlite"
	DBTypeSQLServer  DBType = "sqlserver"
)

type DBTOML struct {
	Type     string `mapstructure:"type" toml:"type" validate:"required,oneof=mysql postgresql sqlite sqlserver"`
	Username string `mapstructure:"username" toml:"username"`
	Password string `mapstructure:"password" toml:"password"`
	Host     string `mapstructure:"host" toml:"host" validate:"required_unless=Type sqlite"`
	Port     int    `mapstructure:"port" toml:"port" validate:"gte=0,lte=65535"`
	Database string `mapstructure:"database" toml:"database" validate:"required"`
	LogLevel string `mapstructure:"log_level" toml:"log_level" validate:"omitempty,oneof=silent error warn info"`
}

type DBGo struct {
	Type DBType
	DB   *gorm.DB
}

func (dbt *DBTOML) dialector() (gorm.Dialector, DBType, error) {
	switch dbt.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			dbt.Username, dbt.Password, dbt.Host, dbt.Port, dbt.Database)), DBTypeMySQL, nil
	case "postgresql":
		return postgres.Open(fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
			dbt.Host, dbt.Port, dbt.Username, dbt.Database, dbt.Password)), DBTypePostgreSQL, nil
	case "sqlite":
		return sqlite.Open(dbt.Database), DBTypeSQLite, nil
	case "sqlserver":
		return sqlserver.Open(fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
			dbt.Username, dbt.Password, dbt.Host, dbt.Port, dbt.Database)), DBTypeSQLServer, nil
	default:
		return nil, "", errors.New("unknown db type: " + dbt.Type)
	}
}

func (dbt *DBTOML) logLevel() logger.LogLevel {
	switch dbt.LogLevel {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (dbt *DBTOML) Init() (dbg *DBGo, err error) {
	dialector, dbType, err := dbt.dialector()
	if err != nil {
		log.WithField("db.type", dbt.Type).Error(err)
		return nil, err
	}
	dbg = &DBGo{Type: dbType}
	dbg.DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         pkglog.NewDBLogger(log.StandardLogger()).LogMode(dbt.logLevel()),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		log.WithFields(log.Fields{
			"db.type": dbt.Type,
			"db.host": dbt.Host,
			"db.name": dbt.Database,
		}).Error(err)
		return nil, err
	}
	if dbType == DBTypeSQLite {
		// one writer at a time, otherwise concurrent requests fail with SQLITE_BUSY
		sqlDB, err := dbg.DB.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return dbg, nil
}

func (dbg *DBGo) Close() error {
	sqlDB, err := dbg.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
