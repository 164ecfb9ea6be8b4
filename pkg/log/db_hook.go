package log

import (
	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBHook stores log entries in the panel_log table.
type DBHook struct {
	db     *gorm.DB
	levels []logrus.Level
}

// NewDBHook persists entries at minLevel and above.
func NewDBHook(db *gorm.DB, minLevel logrus.Level) *DBHook {
	hook := &DBHook{db: db}
	for _, level := range logrus.AllLevels {
		if level <= minLevel {
			hook.levels = append(hook.levels, level)
		}
	}
	return hook
}

func (hook *DBHook) Levels() []logrus.Level {
	return hook.levels
}

// Fire skips entries emitted by DBLogger: those can be raised while a
// transaction holds the connection the insert would need.
func (hook *DBHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["sql"]; ok {
		return nil
	}
	return hook.db.Session(&gorm.Session{Logger: hook.db.Logger.LogMode(logger.Silent)}).Create(model.NewLog(entry)).Error
}
