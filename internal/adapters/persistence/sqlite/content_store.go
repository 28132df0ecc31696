package sqlite

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/ports"
)

// SourceName identifies the override source in logs and debug output.
const SourceName = "custom"

// ContentStore holds entries edited by site admins. They override static
// entries with the same kind and id.
type ContentStore struct {
	db *DB
}

var _ ports.CustomContentStore = (*ContentStore)(nil)

func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{db: db}
}

// Name implements ports.ContentSource.
func (s *ContentStore) Name() string { return SourceName }

// Entries implements ports.ContentSource. Entries come back ordered by id.
func (s *ContentStore) Entries(ctx context.Context, kind domain.Kind) ([]domain.Entry, error) {
	var rows []entryRow

	err := s.db.gorm.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, storeError(err, kind.Entity(), "*")
	}

	entries := make([]domain.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toDomain())
	}

	return entries, nil
}

// Upsert implements ports.CustomContentStore.
func (s *ContentStore) Upsert(ctx context.Context, entry *domain.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	err := s.db.gorm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "id"}},
			UpdateAll: true,
		}).
		Create(newEntryRow(entry)).Error

	return storeError(err, entry.Kind.Entity(), entry.ID)
}

// Delete implements ports.CustomContentStore.
func (s *ContentStore) Delete(ctx context.Context, kind domain.Kind, id string) error {
	res := s.db.gorm.WithContext(ctx).
		Where("kind = ? AND id = ?", string(kind), id).
		Delete(&entryRow{})
	if res.Error != nil {
		return storeError(res.Error, kind.Entity(), id)
	}

	if res.RowsAffected == 0 {
		return domain.NewNotFoundError(kind.Entity(), id)
	}

	return nil
}
