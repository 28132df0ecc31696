package sqlite

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

const quoteEntity = "quote request"

// QuoteStore archives submitted quote requests.
type QuoteStore struct {
	db *DB
}

var _ ports.QuoteStore = (*QuoteStore)(nil)

func NewQuoteStore(db *DB) *QuoteStore {
	return &QuoteStore{db: db}
}

// Save implements ports.QuoteStore.
func (s *QuoteStore) Save(ctx context.Context, quote *domain.QuoteRequest) error {
	err := s.db.gorm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(newQuoteRow(quote)).Error

	return storeError(err, quoteEntity, quote.ID)
}

// Get implements ports.QuoteStore.
func (s *QuoteStore) Get(ctx context.Context, id string) (*domain.QuoteRequest, error) {
	var row quoteRow
	if err := s.db.gorm.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, storeError(err, quoteEntity, id)
	}

	q := row.toDomain()

	return &q, nil
}

// List implements ports.QuoteStore. A non-positive limit returns every
// request from offset on.
func (s *QuoteStore) List(ctx context.Context, offset, limit int) ([]domain.QuoteRequest, int, error) {
	db := s.db.gorm.WithContext(ctx).Model(&quoteRow{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, storeError(err, quoteEntity, "*")
	}

	query := s.db.gorm.WithContext(ctx).Order("created_at DESC").Order("id DESC").Offset(max(offset, 0))
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []quoteRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, storeError(err, quoteEntity, "*")
	}

	quotes := make([]domain.QuoteRequest, 0, len(rows))
	for i := range rows {
		quotes = append(quotes, rows[i].toDomain())
	}

	return quotes, int(total), nil
}

// Delete implements ports.QuoteStore.
func (s *QuoteStore) Delete(ctx context.Context, id string) error {
	err := s.db.gorm.WithContext(ctx).Where("id = ?", id).Delete(&quoteRow{}).Error

	return storeError(err, quoteEntity, id)
}
