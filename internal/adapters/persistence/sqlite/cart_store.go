package sqlite

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// CartStore keeps quote carts between visits.
type CartStore struct {
	db *DB
}

var _ ports.CartStore = (*CartStore)(nil)

func NewCartStore(db *DB) *CartStore {
	return &CartStore{db: db}
}

// Get implements ports.CartStore.
func (s *CartStore) Get(ctx context.Context, id string) (*domain.Cart, error) {
	var row cartRow
	if err := s.db.gorm.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, storeError(err, "cart", id)
	}

	return row.toDomain(), nil
}

// Save implements ports.CartStore.
func (s *CartStore) Save(ctx context.Context, cart *domain.Cart) error {
	err := s.db.gorm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(newCartRow(cart)).Error

	return storeError(err, "cart", cart.ID)
}

// Delete implements ports.CartStore.
func (s *CartStore) Delete(ctx context.Context, id string) error {
	err := s.db.gorm.WithContext(ctx).Where("id = ?", id).Delete(&cartRow{}).Error

	return storeError(err, "cart", id)
}

// PurgeBefore deletes carts not touched since cutoff and returns how many
// were removed.
func (s *CartStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.gorm.WithContext(ctx).Where("updated_at < ?", cutoff.UTC()).Delete(&cartRow{})
	if res.Error != nil {
		return 0, storeError(res.Error, "cart", "*")
	}

	return res.RowsAffected, nil
}
