package model

import (
	"fmt"
	"time"
)

// Epoch is the check-in time of an account that never checked in.
var Epoch = time.Unix(0, 0).UTC()

// Account is the proxy credential and quota record of one panel user. Column
// names are shared with the proxy process and must not change.
type Account struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	LastCheckInTime time.Time `gorm:"column:last_check_in_time" json:"last_check_in_time"`
	Password        string    `gorm:"column:passwd;type:varchar(32);not null" json:"password" validate:"min=6,max=32"`
	Port            int       `gorm:"column:port;uniqueIndex;not null" json:"port" validate:"gt=1024,lt=50000"`
	LastUseTime     int64     `gorm:"column:t;not null;default:0" json:"last_use_time"`
	UploadTraffic   int64     `gorm:"column:u;not null;default:0" json:"upload_traffic" validate:"gte=0"`
	DownloadTraffic int64     `gorm:"column:d;not null;default:0" json:"download_traffic" validate:"gte=0"`
	TransferEnable  int64     `gorm:"column:transfer_enable;not null" json:"transfer_enable" validate:"gte=0"`
	Switch          bool      `gorm:"column:switch;not null" json:"switch"`
	Enable          bool      `gorm:"column:enable;not null" json:"enable"`
	Method          Method    `gorm:"column:method;type:varchar(32);not null" json:"method"`
	Protocol        Protocol  `gorm:"column:protocol;type:varchar(32);not null" json:"protocol"`
	Obfs            Obfs      `gorm:"column:obfs;type:varchar(32);not null" json:"obfs"`
	Level           uint      `gorm:"column:level;not null;default:0" json:"level"`
}

func (Account) TableName() string {
	return "user"
}

func (a *Account) LastUseAt() time.Time {
	return time.Unix(a.LastUseTime, 0)
}

func (a *Account) Used() int64 {
	return a.UploadTraffic + a.DownloadTraffic
}

func (a *Account) TotalUsedGB() string {
	return fmt.Sprintf("%.2f", float64(a.Used())/GB)
}

func (a *Account) TotalQuotaGB() string {
	return fmt.Sprintf("%.2f", float64(a.TransferEnable)/GB)
}

// RemainingGB goes negative once the account is over quota.
func (a *Account) RemainingGB() string {
	return fmt.Sprintf("%.2f", float64(a.TransferEnable-a.UploadTraffic-a.DownloadTraffic)/GB)
}

// UsedPercentage reports "100" for a zero quota.
func (a *Account) UsedPercentage() string {
	if a.TransferEnable == 0 {
		return "100"
	}
	return fmt.Sprintf("%.2f", float64(a.Used())/float64(a.TransferEnable)*100)
}

func (a *Account) NeverCheckedIn() bool {
	return !a.LastCheckInTime.After(Epoch)
}

func (a *Account) NeverUsed() bool {
	return a.LastUseTime == 0
}

// HasCheckedInToday compares calendar dates in now's location. With legacy
// set only the day of month is compared, which is what older panels did.
func (a *Account) HasCheckedInToday(now time.Time, legacy bool) bool {
	last := a.LastCheckInTime.In(now.Location())
	if legacy {
		return last.Day() == now.Day()
	}
	if a.NeverCheckedIn() {
		return false
	}
	y1, m1, d1 := last.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CheckedInToday applies the check-in rule selected by s.
func (s Settings) CheckedInToday(a *Account, now time.Time) bool {
	return a.HasCheckedInToday(now, s.LegacyCheckInDayMatch)
}
