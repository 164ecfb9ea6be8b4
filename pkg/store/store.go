// Package store is the persistence layer of the panel. Every read and write
// of accounts, nodes and their logs goes through a Repository.
package store

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/iyouport-org/sspanel/pkg/model"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAccountExists    = errors.New("user already has an account")
	ErrPortTaken        = errors.New("port already assigned")
	ErrPortExhausted    = errors.New("no free port left")
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNodeExists       = errors.New("node id already exists")
)

// Models lists every table owned by the panel, in migration order.
var Models = []interface{}{
	&model.Account{},
	&model.TrafficLog{},
	&model.Node{},
	&model.NodeInfoLog{},
	&model.NodeOnlineLog{},
	&model.Log{},
}

type Repository struct {
	db       *gorm.DB
	settings model.Settings
	intn     func(n int) int
}

func New(db *gorm.DB, settings model.Settings) *Repository {
	return &Repository{
		db:       db,
		settings: settings,
		intn:     rand.Intn,
	}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) Settings() model.Settings {
	return r.settings
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(Models...)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
