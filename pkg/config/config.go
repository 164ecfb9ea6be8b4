package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	pkglog "github.com/iyouport-org/sspanel/pkg/log"
	"github.com/iyouport-org/sspanel/pkg/model"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ConfigTOML is the struct mapped from the configuration file
type ConfigTOML struct {
	Log   *LogTOML   `mapstructure:"log" toml:"log" validate:"required"`
	DB    *DBTOML    `mapstructure:"db" toml:"db" validate:"required"`
	Panel *PanelTOML `mapstructure:"panel" toml:"panel" validate:"required"`
	Web   *WebTOML   `mapstructure:"web" toml:"web" validate:"required"`
}

type ConfigGo struct {
	toml  *ConfigTOML
	Log   *LogGo
	DB    *DBGo
	Panel model.Settings
	Web   *WebGo
}

func SetDefaults(v *viper.Viper) {
	d := model.DefaultSettings()
	v.SetDefault("log.file", "stderr")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.persist", "")
	v.SetDefault("db.type", "sqlite")
	v.SetDefault("db.database", "sspanel.db")
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("panel.default_traffic", d.DefaultTraffic)
	v.SetDefault("panel.default_method", string(d.DefaultMethod))
	v.SetDefault("panel.default_protocol", string(d.DefaultProtocol))
	v.SetDefault("panel.default_obfs", string(d.DefaultObfs))
	v.SetDefault("panel.start_port", d.StartPort)
	v.SetDefault("panel.legacy_check_in", false)
	v.SetDefault("web.listen", "127.0.0.1:8080")
	v.SetDefault("web.gzip", true)
	v.SetDefault("web.stats_ttl", "30s")
	v.SetDefault("web.mode", "release")
}

// Validate checks the file contents without touching the database or the log file.
func (mc *ConfigTOML) Validate() error {
	return validator.New().Struct(mc)
}

func (mc *ConfigTOML) Init() (cg *ConfigGo, err error) {
	if err = mc.Validate(); err != nil {
		return nil, err
	}
	cg = &ConfigGo{toml: mc}
	cg.Log, err = mc.Log.Init()
	if err != nil {
		return nil, err
	}
	cg.DB, err = mc.DB.Init()
	if err != nil {
		return nil, err
	}
	cg.Panel = mc.Panel.Init()
	cg.Web = mc.Web.Init()
	return cg, nil
}

// Decode unmarshals v into a ConfigTOML, with defaults for every key the
// file leaves out.
func Decode(v *viper.Viper) (*ConfigTOML, error) {
	SetDefaults(v)
	var confTOML ConfigTOML
	if err := v.Unmarshal(&confTOML); err != nil {
		return nil, err
	}
	return &confTOML, nil
}

// ReadViper loads the file named by the "config" key, falling back to
// sspanel.toml in the working directory or /etc/sspanel. Environment
// variables such as SSPANEL_DB_TYPE override the file.
func ReadViper() (*viper.Viper, error) {
	v := viper.GetViper()
	if file := v.GetString("config"); file != "" {
		log.Debug(file)
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("sspanel")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/sspanel")
	}
	v.SetEnvPrefix("sspanel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warn("no config file found, using defaults")
	}
	log.Debug(v.ConfigFileUsed())
	return v, nil
}

func NewConf() (*ConfigGo, error) {
	v, err := ReadViper()
	if err != nil {
		log.Error(err)
		return nil, err
	}
	confTOML, err := Decode(v)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	return confTOML.Init()
}

// WriteDefault writes a configuration file holding every default value.
func WriteDefault(filename string) error {
	v := viper.New()
	SetDefaults(v)
	return v.WriteConfigAs(filename)
}

func InitLog(conf *ConfigGo) {
	log.SetFormatter(conf.Log.Formatter)
	log.SetOutput(conf.Log.File)
	log.SetLevel(conf.Log.Level)
	if conf.Log.Persist && conf.DB != nil {
		if err := conf.DB.DB.AutoMigrate(&model.Log{}); err != nil {
			log.Error(err)
			return
		}
		log.AddHook(pkglog.NewDBHook(conf.DB.DB, conf.Log.PersistAt))
	}
}
