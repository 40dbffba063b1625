package postgres

import (
	"context"
	"database/sql"

	"github.com/erwannT/callForPapers/internal/domain"
)

type referenceRepository struct {
	DB *sql.DB
}

// NewReferenceRepository returns the repository for talk format and track
// reference data. Both tables are seeded by migrations and read-only here.
func NewReferenceRepository(db *sql.DB) domain.ReferenceRepository {
	return &referenceRepository{DB: db}
}

func (r *referenceRepository) ListTalkFormats(ctx context.Context) ([]*domain.TalkFormat, error) {
	query := `
		SELECT id, name, duration_minutes, description
		FROM talk_formats
		ORDER BY id
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var formats []*domain.TalkFormat
	for rows.Next() {
		f := &domain.TalkFormat{}
		if err := rows.Scan(&f.ID, &f.Name, &f.DurationMinutes, &f.Description); err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

func (r *referenceRepository) ListTracks(ctx context.Context) ([]*domain.Track, error) {
	query := `
		SELECT id, libelle, description
		FROM tracks
		ORDER BY id
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tracks []*domain.Track
	for rows.Next() {
		t := &domain.Track{}
		if err := rows.Scan(&t.ID, &t.Libelle, &t.Description); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
