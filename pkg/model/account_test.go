package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountTrafficReport(t *testing.T) {
	acc := &Account{
		UploadTraffic:   500000000,
		DownloadTraffic: 500000000,
		TransferEnable:  2000000000,
	}
	assert.Equal(t, "1.00", acc.TotalUsedGB())
	assert.Equal(t, "2.00", acc.TotalQuotaGB())
	assert.Equal(t, "1.00", acc.RemainingGB())
	assert.Equal(t, "50.00", acc.UsedPercentage())
}

func TestAccountOverQuota(t *testing.T) {
	acc := &Account{
		UploadTraffic:   2 * GB,
		DownloadTraffic: GB,
		TransferEnable:  2 * GB,
	}
	assert.Equal(t, "-1.00", acc.RemainingGB())
	assert.Equal(t, "150.00", acc.UsedPercentage())
}

func TestAccountZeroQuota(t *testing.T) {
	acc := &Account{UploadTraffic: 10}
	assert.Equal(t, "100", acc.UsedPercentage())
	assert.Equal(t, "0.00", acc.TotalQuotaGB())
}

func TestNewAccountDefaults(t *testing.T) {
	s := DefaultSettings()
	acc := s.NewAccount(42)
	assert.Equal(t, uint(42), acc.UserID)
	assert.Equal(t, int64(5*GB), acc.TransferEnable)
	assert.Equal(t, MethodAES256CFB, acc.Method)
	assert.Equal(t, ProtocolAuthChainA, acc.Protocol)
	assert.Equal(t, ObfsHTTPSimple, acc.Obfs)
	assert.Len(t, acc.Password, DefaultPasswordLength)
	assert.True(t, acc.Switch)
	assert.True(t, acc.Enable)
	assert.True(t, acc.NeverCheckedIn())
	assert.True(t, acc.NeverUsed())
	assert.Zero(t, acc.Port)
}

func TestRandomPassword(t *testing.T) {
	a := RandomPassword(16)
	b := RandomPassword(16)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	for _, c := range a {
		assert.True(t, (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'), "unexpected %q", c)
	}
}

func TestAccountValidate(t *testing.T) {
	valid := func() *Account {
		acc := DefaultSettings().NewAccount(1)
		acc.Port = 1025
		return acc
	}
	require.NoError(t, valid().Validate())

	cases := []struct {
		name   string
		mutate func(*Account)
		want   error
	}{
		{"port at lower bound", func(a *Account) { a.Port = 1024 }, ErrPortOutOfRange},
		{"port at upper bound", func(a *Account) { a.Port = 50000 }, ErrPortOutOfRange},
		{"short password", func(a *Account) { a.Password = "12345" }, ErrPasswordTooShort},
		{"long password", func(a *Account) { a.Password = "123456789012345678901234567890123" }, ErrPasswordTooLong},
		{"negative upload", func(a *Account) { a.UploadTraffic = -1 }, ErrNegativeValue},
		{"negative quota", func(a *Account) { a.TransferEnable = -1 }, ErrNegativeValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			acc := valid()
			c.mutate(acc)
			err := acc.Validate()
			assert.True(t, errors.Is(err, c.want), "got %v", err)
		})
	}

	acc := valid()
	acc.Port = 49999
	acc.Password = "123456"
	assert.NoError(t, acc.Validate())
}

func TestHasCheckedInToday(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, loc)
	acc := &Account{LastCheckInTime: Epoch}

	assert.False(t, acc.HasCheckedInToday(now, false))

	acc.LastCheckInTime = time.Date(2024, 3, 15, 0, 30, 0, 0, loc).UTC()
	assert.True(t, acc.HasCheckedInToday(now, false))

	// same day of month, different month
	acc.LastCheckInTime = time.Date(2024, 2, 15, 12, 0, 0, 0, loc)
	assert.False(t, acc.HasCheckedInToday(now, false))
	assert.True(t, acc.HasCheckedInToday(now, true))

	acc.LastCheckInTime = time.Date(2024, 3, 14, 23, 59, 0, 0, loc)
	assert.False(t, acc.HasCheckedInToday(now, false))
	assert.False(t, acc.HasCheckedInToday(now, true))
}

func TestCheckedInTodayLegacyEpoch(t *testing.T) {
	s := DefaultSettings()
	s.LegacyCheckInDayMatch = true
	acc := &Account{LastCheckInTime: Epoch}
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, s.CheckedInToday(acc, first))
	assert.False(t, DefaultSettings().CheckedInToday(acc, first))
}
