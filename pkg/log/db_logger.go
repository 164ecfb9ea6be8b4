package log

import (
	"context"
	"errors"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// DBLogger routes gorm's logging through logrus.
type DBLogger struct {
	*log.Logger
	Level         logger.LogLevel
	SlowThreshold time.Duration
}

func NewDBLogger(l *log.Logger) *DBLogger {
	return &DBLogger{
		Logger:        l,
		Level:         logger.Warn,
		SlowThreshold: 200 * time.Millisecond,
	}
}

func (dbLog *DBLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *dbLog
	clone.Level = level
	return &clone
}

func (dbLog *DBLogger) fields(objs []interface{}) log.Fields {
	m := make(log.Fields, len(objs)+1)
	m["real_file"] = utils.FileWithLineNum()
	for i, b := range objs {
		m[strconv.Itoa(i+1)] = b
	}
	return m
}

func (dbLog *DBLogger) Info(ctx context.Context, msg string, objs ...interface{}) {
	if dbLog.Level >= logger.Info {
		dbLog.Logger.WithContext(ctx).WithFields(dbLog.fields(objs)).Info(msg)
	}
}

func (dbLog *DBLogger) Warn(ctx context.Context, msg string, objs ...interface{}) {
	if dbLog.Level >= logger.Warn {
		dbLog.Logger.WithContext(ctx).WithFields(dbLog.fields(objs)).Warn(msg)
	}
}

func (dbLog *DBLogger) Error(ctx context.Context, msg string, objs ...interface{}) {
	if dbLog.Level >= logger.Error {
		dbLog.Logger.WithContext(ctx).WithFields(dbLog.fields(objs)).Error(msg)
	}
}

func (dbLog *DBLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if dbLog.Level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := dbLog.Logger.WithContext(ctx).WithFields(log.Fields{
		"real_file": utils.FileWithLineNum(),
		"duration":  float64(elapsed.Nanoseconds()) / 1e6,
		"rows":      rows,
		"sql":       sql,
	})
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && dbLog.Level >= logger.Error:
		entry.Error(err)
	case dbLog.SlowThreshold != 0 && elapsed > dbLog.SlowThreshold && dbLog.Level >= logger.Warn:
		entry.Warn("slow query")
	case dbLog.Level >= logger.Info:
		entry.Trace("query")
	}
}
