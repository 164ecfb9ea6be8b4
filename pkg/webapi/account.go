package webapi

import (
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
)

type PostAccountRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Port     int    `json:"port" binding:"omitempty,gt=1024,lt=50000"`
	Password string `json:"password" binding:"omitempty,min=6,max=32"`
	Method   string `json:"method"`
	Protocol string `json:"protocol"`
	Obfs     string `json:"obfs"`
	Level    uint   `json:"level"`
}

// Apply copies the optional request fields over the defaults in acc.
func (req *PostAccountRequest) Apply(acc *model.Account) {
	acc.Port = req.Port
	if req.Password != "" {
		acc.Password = req.Password
	}
	if req.Method != "" {
		acc.Method = model.Method(req.Method)
	}
	if req.Protocol != "" {
		acc.Protocol = model.Protocol(req.Protocol)
	}
	if req.Obfs != "" {
		acc.Obfs = model.Obfs(req.Obfs)
	}
	acc.Level = req.Level
}

type Account struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Port            int       `json:"port"`
	Password        string    `json:"password"`
	Method          string    `json:"method"`
	Protocol        string    `json:"protocol"`
	Obfs            string    `json:"obfs"`
	Level           uint      `json:"level"`
	Enable          bool      `json:"enable"`
	UploadTraffic   int64     `json:"upload_traffic"`
	DownloadTraffic int64     `json:"download_traffic"`
	TransferEnable  int64     `json:"transfer_enable"`
	UsedGB          string    `json:"used_gb"`
	QuotaGB         string    `json:"quota_gb"`
	RemainingGB     string    `json:"remaining_gb"`
	UsedPercentage  string    `json:"used_percentage"`
	LastUseTime     time.Time `json:"last_use_time"`
	LastCheckInTime time.Time `json:"last_check_in_time"`
	CheckedInToday  bool      `json:"checked_in_today"`
}

func GetAccount(acc *model.Account, checkedIn bool) Account {
	return Account{
		ID:              acc.ID,
		UserID:          acc.UserID,
		Port:            acc.Port,
		Password:        acc.Password,
		Method:          string(acc.Method),
		Protocol:        string(acc.Protocol),
		Obfs:            string(acc.Obfs),
		Level:           acc.Level,
		Enable:          acc.Enable,
		UploadTraffic:   acc.UploadTraffic,
		DownloadTraffic: acc.DownloadTraffic,
		TransferEnable:  acc.TransferEnable,
		UsedGB:          acc.TotalUsedGB(),
		QuotaGB:         acc.TotalQuotaGB(),
		RemainingGB:     acc.RemainingGB(),
		UsedPercentage:  acc.UsedPercentage(),
		LastUseTime:     acc.LastUseAt().UTC(),
		LastCheckInTime: acc.LastCheckInTime,
		CheckedInToday:  checkedIn,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
