package model

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
)

// Log is a persisted logrus entry.
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Level     uint32    `gorm:"not null" json:"level"`
	Func      string    `json:"func"`
	File      string    `json:"file"`
	Msg       string    `json:"msg"`
	Stack     string    `json:"stack,omitempty"`
	Fields    string    `json:"fields"`
}

func NewLog(entry *logrus.Entry) *Log {
	fields := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fields[k] = v
	}
	data, err := json.Marshal(fields)
	if err != nil {
		data = []byte{}
	}
	record := &Log{
		CreatedAt: entry.Time.UTC(),
		Level:     uint32(entry.Level),
		Msg:       entry.Message,
		Fields:    string(data),
	}
	if entry.HasCaller() {
		record.Func = entry.Caller.Function
		record.File = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}
	if entry.Level <= logrus.ErrorLevel {
		record.Stack = string(debug.Stack())
	}
	return record
}

func (Log) TableName() string {
	return "panel_log"
}
