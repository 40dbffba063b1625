package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/erwannT/callForPapers/internal/domain"
)

type talkRepository struct {
	DB *sql.DB
}

func NewTalkRepository(db *sql.DB) domain.TalkRepository {
	return &talkRepository{DB: db}
}

const talkColumns = `id, name, description, talk_references, difficulty, track_id, format_id, state, user_id, created_at, updated_at`

func scanTalk(row interface{ Scan(...any) error }) (*domain.Talk, error) {
	t := &domain.Talk{}
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.References, &t.Difficulty,
		&t.TrackID, &t.FormatID, &t.State, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *talkRepository) Create(ctx context.Context, t *domain.Talk) error {
	query := `
		INSERT INTO talks (name, description, talk_references, difficulty, track_id, format_id, state, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return q(ctx, r.DB).QueryRowContext(ctx, query, t.Name, t.Description, t.References, t.Difficulty,
		t.TrackID, t.FormatID, t.State, t.UserID, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
}

func (r *talkRepository) GetByID(ctx context.Context, id int) (*domain.Talk, error) {
	query := `SELECT ` + talkColumns + ` FROM talks WHERE id = $1`
	t, err := scanTalk(q(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrTalkNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *talkRepository) Update(ctx context.Context, t *domain.Talk) error {
	query := `
		UPDATE talks
		SET name = $2, description = $3, talk_references = $4, difficulty = $5, track_id = $6, format_id = $7, updated_at = $8
		WHERE id = $1
	`
	res, err := q(ctx, r.DB).ExecContext(ctx, query, t.ID, t.Name, t.Description, t.References,
		t.Difficulty, t.TrackID, t.FormatID, t.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTalkNotFound
	}
	return nil
}

func (r *talkRepository) UpdateState(ctx context.Context, id int, state domain.TalkState) error {
	query := `UPDATE talks SET state = $2, updated_at = NOW() WHERE id = $1`
	res, err := q(ctx, r.DB).ExecContext(ctx, query, id, state)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTalkNotFound
	}
	return nil
}

func (r *talkRepository) Delete(ctx context.Context, id int) error {
	res, err := q(ctx, r.DB).ExecContext(ctx, `DELETE FROM talks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTalkNotFound
	}
	return nil
}

func (r *talkRepository) ListByUserAndStates(ctx context.Context, userID int, states []domain.TalkState) ([]*domain.Talk, error) {
	query := `
		SELECT ` + talkColumns + `
		FROM talks
		WHERE user_id = $1 AND state = ANY($2)
		ORDER BY created_at DESC
	`
	stateNames := make([]string, len(states))
	for i, s := range states {
		stateNames[i] = string(s)
	}
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, userID, pq.Array(stateNames))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var talks []*domain.Talk
	for rows.Next() {
		t, err := scanTalk(rows)
		if err != nil {
			return nil, err
		}
		talks = append(talks, t)
	}
	return talks, rows.Err()
}

func (r *talkRepository) ListByState(ctx context.Context, state domain.TalkState) ([]*domain.Talk, error) {
	query := `
		SELECT ` + talkColumns + `
		FROM talks
		WHERE state = $1
		ORDER BY created_at
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var talks []*domain.Talk
	for rows.Next() {
		t, err := scanTalk(rows)
		if err != nil {
			return nil, err
		}
		talks = append(talks, t)
	}
	return talks, rows.Err()
}
