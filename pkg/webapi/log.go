package webapi

import (
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
)

type GetLogResponse struct {
	ID       uint      `json:"id"`
	CreateAt time.Time `json:"created_at"`
	Level    uint32    `json:"level"`
	Func     string    `json:"func"`
	File     string    `json:"file"`
	Msg      string    `json:"msg"`
	Fields   string    `json:"fields"`
}

func GetLogs(logs []model.Log) []GetLogResponse {
	ret := make([]GetLogResponse, len(logs))
	for k, v := range logs {
		ret[k] = GetLogResponse{
			ID:       v.ID,
			CreateAt: v.CreatedAt,
			Level:    v.Level,
			Func:     v.Func,
			File:     v.File,
			Msg:      v.Msg,
			Fields:   v.Fields,
		}
	}
	return ret
}
