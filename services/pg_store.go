package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iamdew/yellostory-lunch/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lunchColumns = `id, to_char(date, 'YYYY-MM-DD'), category, foods, created_at, updated_at`

// PgStore is the PostgreSQL backed LunchStore.
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func scanLunch(row pgx.Row) (*models.LunchMenu, error) {
	var m models.LunchMenu
	if err := row.Scan(&m.ID, &m.Date, &m.Category, &m.Foods, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindLunch returns nil for a date that does not exist on the calendar, like
// 2021-02-31, instead of letting postgres reject the cast.
func (s *PgStore) FindLunch(ctx context.Context, category, date string) (*models.LunchMenu, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, nil
	}
	m, err := scanLunch(s.pool.QueryRow(ctx, `
		SELECT `+lunchColumns+` FROM lunch_menus
		WHERE category = $1 AND date = $2::date`,
		category, date,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lunch %s/%s: %w", category, date, err)
	}
	return m, nil
}

// FindAllLunch compares date bounds as YYYY-MM-DD text, which orders the same
// as the dates themselves and accepts any bound the date pattern lets through.
func (s *PgStore) FindAllLunch(ctx context.Context, filter models.LunchFilter) ([]models.LunchMenu, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond, v string) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.StartDate != "" {
		add("to_char(date, 'YYYY-MM-DD') >= $%d", filter.StartDate)
	}
	if filter.EndDate != "" {
		add("to_char(date, 'YYYY-MM-DD') <= $%d", filter.EndDate)
	}

	q := `SELECT ` + lunchColumns + ` FROM lunch_menus`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY date, category`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list lunch: %w", err)
	}
	defer rows.Close()

	items := []models.LunchMenu{}
	for rows.Next() {
		m, err := scanLunch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lunch: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// CreateLunch inserts a menu. A concurrent insert of the same key turns into
// an update of foods through the unique (date, category) constraint.
func (s *PgStore) CreateLunch(ctx context.Context, in *models.LunchMenu) (*models.LunchMenu, error) {
	m, err := scanLunch(s.pool.QueryRow(ctx, `
		INSERT INTO lunch_menus (date, category, foods, created_at, updated_at)
		VALUES ($1::date, $2, $3, now(), now())
		ON CONFLICT (date, category) DO UPDATE SET
			foods = EXCLUDED.foods,
			updated_at = now()
		RETURNING `+lunchColumns,
		in.Date, in.Category, in.Foods,
	))
	if err != nil {
		return nil, fmt.Errorf("create lunch %s/%s: %w", in.Category, in.Date, err)
	}
	return m, nil
}

func (s *PgStore) UpdateLunchMenu(ctx context.Context, id int64, foods string) (*models.LunchMenu, error) {
	m, err := scanLunch(s.pool.QueryRow(ctx, `
		UPDATE lunch_menus SET foods = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+lunchColumns,
		foods, id,
	))
	if err != nil {
		return nil, fmt.Errorf("update lunch %d: %w", id, err)
	}
	return m, nil
}

func (s *PgStore) RemoveLunch(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM lunch_menus WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remove lunch %d: %w", id, err)
	}
	return nil
}

func (s *PgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
