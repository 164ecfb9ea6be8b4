package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/iyouport-org/sspanel/pkg/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestXMLFormatter(t *testing.T) {
	entry := logrus.NewEntry(logrus.New())
	entry.Time = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	entry.Level = logrus.WarnLevel
	entry.Message = "port collision"
	entry.Data = logrus.Fields{
		"port":    1025,
		"user_id": 7,
		"err":     errors.New("a < b"),
	}
	out, err := XMLFormatter{TimestampFormat: time.RFC3339}.Format(entry)
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<warning time="2024-03-15T09:00:00Z">`), s)
	assert.Contains(t, s, "<msg>port collision</msg>")
	assert.Contains(t, s, "<err>a &lt; b</err>")
	assert.Less(t, strings.Index(s, "<err>"), strings.Index(s, "<port>"))
	assert.Less(t, strings.Index(s, "<port>"), strings.Index(s, "<user_id>"))
	assert.True(t, strings.HasSuffix(s, "</warning>\n"))
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Log{}))
	return db
}

func TestDBHook(t *testing.T) {
	db := newTestDB(t)
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	l.AddHook(NewDBHook(db, logrus.WarnLevel))

	l.Info("not stored")
	l.WithField("user_id", 3).Warn("stored")
	l.WithError(errors.New("boom")).Error("failed")
	l.WithField("sql", "SELECT 1").Error("skipped")

	var logs []model.Log
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "stored", logs[0].Msg)
	assert.Equal(t, uint32(logrus.WarnLevel), logs[0].Level)
	assert.JSONEq(t, `{"user_id":3}`, logs[0].Fields)
	assert.Empty(t, logs[0].Stack)
	assert.JSONEq(t, `{"error":"boom"}`, logs[1].Fields)
	assert.NotEmpty(t, logs[1].Stack)
}

func TestDBLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.TraceLevel)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: NewDBLogger(l).LogMode(logger.Warn),
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Raw("SELECT 1").Scan(&n).Error)
	assert.NotContains(t, buf.String(), "SELECT 1")

	assert.Error(t, db.Exec("SELECT * FROM missing_table").Error)
	assert.Contains(t, buf.String(), "missing_table")
	assert.Contains(t, buf.String(), "level=error")

	var row model.Log
	buf.Reset()
	require.NoError(t, db.AutoMigrate(&model.Log{}))
	assert.ErrorIs(t, db.First(&row).Error, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "level=error")
}
