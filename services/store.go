package services

import (
	"context"

	"github.com/iamdew/yellostory-lunch/models"
)

// LunchStore persists menus keyed by (date, category).
type LunchStore interface {
	// FindLunch returns nil, nil when no menu exists for the key.
	FindLunch(ctx context.Context, category, date string) (*models.LunchMenu, error)
	// FindAllLunch returns matching menus ordered by date, then category.
	FindAllLunch(ctx context.Context, filter models.LunchFilter) ([]models.LunchMenu, error)
	CreateLunch(ctx context.Context, m *models.LunchMenu) (*models.LunchMenu, error)
	UpdateLunchMenu(ctx context.Context, id int64, foods string) (*models.LunchMenu, error)
	RemoveLunch(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
