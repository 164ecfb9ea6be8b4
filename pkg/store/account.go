package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iyouport-org/sspanel/pkg/model"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MinPort = 1024
	MaxPort = 50000

	maxProvisionAttempts = 8
)

// Provision creates the account of userID with the configured defaults.
// A zero port is assigned automatically.
func (r *Repository) Provision(ctx context.Context, userID uint, port int) (*model.Account, error) {
	acc := r.settings.NewAccount(userID)
	acc.Port = port
	if err := r.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// CreateAccount inserts acc. An explicit port is validated and must be free;
// a zero port is allocated inside the insert transaction and the whole
// transaction is retried when a concurrent insert took the same port.
func (r *Repository) CreateAccount(ctx context.Context, acc *model.Account) error {
	if acc.Password == "" {
		acc.Password = model.RandomPassword(model.DefaultPasswordLength)
	}
	if acc.LastCheckInTime.IsZero() {
		acc.LastCheckInTime = model.Epoch
	}
	explicit := acc.Port != 0
	if explicit {
		if err := acc.Validate(); err != nil {
			return err
		}
	}
	for attempt := 1; attempt <= maxProvisionAttempts; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&model.Account{}).Where("user_id = ?", acc.UserID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrAccountExists
			}
			if !explicit {
				port, err := r.nextPort(tx)
				if err != nil {
					return err
				}
				acc.Port = port
			}
			if err := acc.Validate(); err != nil {
				return err
			}
			return tx.Create(acc).Error
		})
		if err == nil {
			log.WithFields(log.Fields{
				"user_id": acc.UserID,
				"port":    acc.Port,
			}).Info("account created")
			return nil
		}
		acc.ID = 0
		if !isUniqueViolation(err) {
			return err
		}
		if explicit {
			return r.conflict(ctx, acc)
		}
		log.WithFields(log.Fields{
			"user_id": acc.UserID,
			"port":    acc.Port,
			"attempt": attempt,
		}).Warn("port collision, retrying")
		acc.Port = 0
	}
	return ErrPortExhausted
}

// conflict tells apart the two unique columns after an insert lost a race:
// the user got an account meanwhile, or the port was taken.
func (r *Repository) conflict(ctx context.Context, acc *model.Account) error {
	_, err := r.GetAccountByUserID(ctx, acc.UserID)
	switch {
	case err == nil:
		return ErrAccountExists
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%w: %d", ErrPortTaken, acc.Port)
	default:
		return err
	}
}

// nextPort proposes max+2 or max+3, spacing out ports handed to requests that
// race each other, or the start port for the first account.
func (r *Repository) nextPort(tx *gorm.DB) (int, error) {
	var maxPort sql.NullInt64
	if err := tx.Model(&model.Account{}).Select("MAX(port)").Row().Scan(&maxPort); err != nil {
		return 0, err
	}
	if !maxPort.Valid {
		return r.settings.StartPort, nil
	}
	port := int(maxPort.Int64) + 2 + r.intn(2)
	if port >= MaxPort {
		return r.randomFreePort(tx)
	}
	return port, nil
}

// RandomFreePort picks an unused port between the start port and the highest
// assigned port, or max+1 when that range is full.
func (r *Repository) RandomFreePort(ctx context.Context) (int, error) {
	return r.randomFreePort(r.db.WithContext(ctx))
}

func (r *Repository) randomFreePort(tx *gorm.DB) (int, error) {
	var ports []int
	if err := tx.Model(&model.Account{}).Pluck("port", &ports).Error; err != nil {
		return 0, err
	}
	if len(ports) == 0 {
		return r.settings.StartPort, nil
	}
	used := make(map[int]struct{}, len(ports))
	maxPort := ports[0]
	for _, p := range ports {
		used[p] = struct{}{}
		if p > maxPort {
			maxPort = p
		}
	}
	low := r.settings.StartPort
	if low <= MinPort {
		low = MinPort + 1
	}
	var free []int
	for p := low; p <= maxPort && p < MaxPort; p++ {
		if _, ok := used[p]; !ok {
			free = append(free, p)
		}
	}
	if len(free) > 0 {
		return free[r.intn(len(free))], nil
	}
	if maxPort+1 >= MaxPort {
		return 0, ErrPortExhausted
	}
	return maxPort + 1, nil
}

func (r *Repository) GetAccount(ctx context.Context, id uint) (*model.Account, error) {
	var acc model.Account
	if err := r.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (r *Repository) GetAccountByUserID(ctx context.Context, userID uint) (*model.Account, error) {
	var acc model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&acc).Error; err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).Order("last_check_in_time DESC").Order("id ASC").Find(&accounts).Error
	return accounts, err
}

// UpdateAccount saves every column of acc after validating it.
func (r *Repository) UpdateAccount(ctx context.Context, acc *model.Account) error {
	if err := acc.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Save(acc).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %d", ErrPortTaken, acc.Port)
	}
	return err
}

func (r *Repository) DeleteAccount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Account{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckIn records a check-in at now, at most once per day. The write only
// applies while the stored check-in is still before today, so concurrent
// requests cannot both succeed.
func (r *Repository) CheckIn(ctx context.Context, id uint, now time.Time) (*model.Account, error) {
	acc, err := r.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.settings.CheckedInToday(acc, now) {
		return acc, ErrAlreadyCheckedIn
	}
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UTC()
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND last_check_in_time < ?", id, startOfDay).
		Update("last_check_in_time", now.UTC())
	if result.Error != nil {
		log.WithField("account", id).Error(result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return acc, ErrAlreadyCheckedIn
	}
	acc.LastCheckInTime = now.UTC()
	return acc, nil
}

// AddTraffic increments the counters of an account in SQL so concurrent
// reporters never lose an update, and stamps the last use time.
func (r *Repository) AddTraffic(ctx context.Context, id uint, upload, download int64, now time.Time) error {
	return r.addTraffic(r.db.WithContext(ctx), id, upload, download, now)
}

func (r *Repository) addTraffic(tx *gorm.DB, id uint, upload, download int64, now time.Time) error {
	if upload < 0 || download < 0 {
		return fmt.Errorf("%w: traffic", model.ErrNegativeValue)
	}
	result := tx.Model(&model.Account{}).Where("id = ?", id).Updates(map[string]interface{}{
		"u": gorm.Expr("u + ?", upload),
		"d": gorm.Expr("d + ?", download),
		"t": now.Unix(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// TrafficReport is one account's usage in a node report.
type TrafficReport struct {
	AccountID uint
	Upload    int64
	Download  int64
}

// ReportTraffic is what a node sends after each interval: the raw bytes are
// logged with the node's rate, and the account is charged the weighted amount.
func (r *Repository) ReportTraffic(ctx context.Context, nodeID int, accountID uint, upload, download int64, now time.Time) (*model.TrafficLog, error) {
	var entry *model.TrafficLog
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		node, err := nodeForReport(tx, nodeID)
		if err != nil {
			return err
		}
		entry, err = r.reportTraffic(tx, node, TrafficReport{
			AccountID: accountID,
			Upload:    upload,
			Download:  download,
		}, now)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithFields(log.Fields{
				"node_id": nodeID,
				"account": accountID,
			}).Error(err)
		}
		return nil, err
	}
	return entry, nil
}

// ReportTrafficBatch applies a whole node report in one transaction. Reports
// for unknown accounts are skipped and returned; any other failure rolls the
// batch back, so a node can resend it without charging anyone twice.
func (r *Repository) ReportTrafficBatch(ctx context.Context, nodeID int, reports []TrafficReport, now time.Time) (skipped []uint, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skipped = skipped[:0]
		node, err := nodeForReport(tx, nodeID)
		if err != nil {
			return err
		}
		for _, report := range reports {
			_, err := r.reportTraffic(tx, node, report, now)
			if errors.Is(err, ErrNotFound) {
				skipped = append(skipped, report.AccountID)
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithFields(log.Fields{
				"node_id": nodeID,
				"reports": len(reports),
			}).Error(err)
		}
		return nil, err
	}
	return skipped, nil
}

func nodeForReport(tx *gorm.DB, nodeID int) (*model.Node, error) {
	var node model.Node
	if err := tx.Where("node_id = ?", nodeID).First(&node).Error; err != nil {
		return nil, notFound(err)
	}
	return &node, nil
}

// reportTraffic charges the account before logging, so an unknown account
// leaves no log row behind.
func (r *Repository) reportTraffic(tx *gorm.DB, node *model.Node, report TrafficReport, now time.Time) (*model.TrafficLog, error) {
	err := r.addTraffic(tx,
		report.AccountID,
		int64(float64(report.Upload)*node.TrafficRate),
		int64(float64(report.Download)*node.TrafficRate),
		now)
	if err != nil {
		return nil, err
	}
	entry := &model.TrafficLog{
		UserID:          report.AccountID,
		NodeID:          node.NodeID,
		UploadTraffic:   report.Upload,
		DownloadTraffic: report.Download,
		Rate:            node.TrafficRate,
		LogTime:         now.Unix(),
		LogDate:         now,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}
