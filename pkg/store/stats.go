package store

import (
	"context"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
	"gorm.io/gorm"
)

const TopTrafficLimit = 10

type AccountTraffic struct {
	Account model.Account
	// UsedGB is Account.TotalUsedGB, kept alongside for rendering.
	UsedGB string
}

type Stats struct {
	Accounts       int64
	CheckedInToday int64
	NeverCheckedIn int64
	NeverUsed      int64
	OnlineUsers    int
	TopTraffic     []AccountTraffic
}

// checkInCounts walks the accounts in batches since the day comparison
// depends on the configured rule and cannot be expressed portably in SQL.
func (r *Repository) checkInCounts(ctx context.Context, now time.Time) (today, never int64, err error) {
	var batch []model.Account
	err = r.db.WithContext(ctx).
		Select("id", "last_check_in_time").
		FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				if r.settings.CheckedInToday(&batch[i], now) {
					today++
				}
				if batch[i].NeverCheckedIn() {
					never++
				}
			}
			return nil
		}).Error
	return today, never, err
}

func (r *Repository) CountCheckedInToday(ctx context.Context, now time.Time) (int64, error) {
	today, _, err := r.checkInCounts(ctx, now)
	return today, err
}

func (r *Repository) CountNeverCheckedIn(ctx context.Context) (int64, error) {
	_, never, err := r.checkInCounts(ctx, time.Now())
	return never, err
}

func (r *Repository) CountNeverUsed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).Where("t = ?", 0).Count(&count).Error
	return count, err
}

// TopTrafficAccounts ranks accounts that downloaded anything by total traffic.
func (r *Repository) TopTrafficAccounts(ctx context.Context, limit int) ([]AccountTraffic, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).
		Where("d > ?", 0).
		Order("u + d DESC").
		Order("id ASC").
		Limit(limit).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	top := make([]AccountTraffic, len(accounts))
	for i := range accounts {
		top[i] = AccountTraffic{
			Account: accounts[i],
			UsedGB:  accounts[i].TotalUsedGB(),
		}
	}
	return top, nil
}

func (r *Repository) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	var err error
	if err = r.db.WithContext(ctx).Model(&model.Account{}).Count(&stats.Accounts).Error; err != nil {
		return nil, err
	}
	if stats.CheckedInToday, stats.NeverCheckedIn, err = r.checkInCounts(ctx, now); err != nil {
		return nil, err
	}
	if stats.NeverUsed, err = r.CountNeverUsed(ctx); err != nil {
		return nil, err
	}
	if stats.OnlineUsers, err = r.TotalOnlineUsers(ctx, now); err != nil {
		return nil, err
	}
	if stats.TopTraffic, err = r.TopTrafficAccounts(ctx, TopTrafficLimit); err != nil {
		return nil, err
	}
	return stats, nil
}
