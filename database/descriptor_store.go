package database

import (
	"context"
	"database/sql"

	"github.com/mbolis/foncier-survey/model"
)

// DescriptorStore serves the externally supplied reference tuples seeded by
// the migrations. Read-only.
type DescriptorStore struct {
	db *sql.DB
}

func NewDescriptorStore(db *sql.DB) *DescriptorStore {
	return &DescriptorStore{db}
}

func (s *DescriptorStore) List(ctx context.Context, typ string) ([]model.Descriptor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, value, label
		FROM descriptor
		WHERE type = ?
		ORDER BY ord`,
		typ,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	descriptors := []model.Descriptor{}
	for rows.Next() {
		d := model.Descriptor{}
		err = rows.Scan(&d.Type, &d.Value, &d.Label)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, rows.Err()
}
