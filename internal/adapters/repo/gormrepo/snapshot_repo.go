package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/shopmarket/internal/domain"
)

// StateSnapshot is one JSON document stored under a string key.
type StateSnapshot struct {
	StateKey  string `gorm:"primaryKey;size:200"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

type SnapshotRepo struct{ db *gorm.DB }

func NewSnapshotRepo(db *gorm.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

func (r *SnapshotRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var s StateSnapshot
	if err := r.db.WithContext(ctx).First(&s, "state_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return []byte(s.Payload), nil
}

func (r *SnapshotRepo) Save(ctx context.Context, key string, payload []byte) error {
	s := StateSnapshot{StateKey: key, Payload: string(payload), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&s).Error
}

func (r *SnapshotRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&StateSnapshot{}, "state_key = ?", key).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *SnapshotRepo) Scan(ctx context.Context, prefix string, fn func(key string, payload []byte) error) error {
	var batch []StateSnapshot
	var stop error
	res := r.db.WithContext(ctx).
		Where(`state_key LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%").
		Order("state_key asc").
		FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
			for _, s := range batch {
				if err := fn(s.StateKey, []byte(s.Payload)); err != nil {
					stop = err
					return err
				}
			}
			return nil
		})
	if stop != nil {
		return stop
	}
	return res.Error
}
