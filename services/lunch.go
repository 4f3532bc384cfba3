package services

import (
	"context"
	"time"

	"github.com/iamdew/yellostory-lunch/models"
)

// Day is a lunch date relative to the current day.
type Day int

const (
	Today Day = iota
	Tomorrow
	DayAfterTomorrow
)

// Offset is the number of days after today.
func (d Day) Offset() int {
	return int(d)
}

// String is the day's metric label.
func (d Day) String() string {
	switch d {
	case Tomorrow:
		return "tomorrow"
	case DayAfterTomorrow:
		return "day_after_tomorrow"
	default:
		return "today"
	}
}

// Label is how chat replies refer to the day.
func (d Day) Label() string {
	switch d {
	case Tomorrow:
		return "내일"
	case DayAfterTomorrow:
		return "모레"
	default:
		return "오늘"
	}
}

// Service answers lunch questions for one cafeteria: which vendor serves a
// given day, what it serves, and how to say so in a chat reply.
type Service struct {
	store       LunchStore
	events      models.EventDays
	loc         *time.Location
	now         func() time.Time
	registerURL string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone in which "today" is decided.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithEventDays sets the read-only event table consulted when a day has no menu.
func WithEventDays(events models.EventDays) Option {
	return func(s *Service) { s.events = events }
}

// WithRegisterURL sets the link attached to the "no menu" chat reply.
func WithRegisterURL(url string) Option {
	return func(s *Service) { s.registerURL = url }
}

// NewService returns a Service reading menus from store. Without options it
// uses the local timezone, the wall clock and no event days.
func NewService(store LunchStore, opts ...Option) *Service {
	s := &Service{
		store:       store,
		events:      models.EventDays{},
		loc:         time.Local,
		now:         time.Now,
		registerURL: "http://lunch.hyungdew.com",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store is the backing store, used by readiness checks.
func (s *Service) Store() LunchStore {
	return s.store
}

// Date returns the calendar day d refers to, at midnight in the service location.
func (s *Service) Date(d Day) time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day()+d.Offset(), 0, 0, 0, 0, s.loc)
}

// Resolve finds the menu of the vendor scheduled for d. Weekends have no
// vendor, so nothing is looked up and nil is returned.
func (s *Service) Resolve(ctx context.Context, d Day) (*models.LunchMenu, error) {
	return s.resolveAt(ctx, s.Date(d))
}

func (s *Service) resolveAt(ctx context.Context, date time.Time) (*models.LunchMenu, error) {
	category, ok := CategoryOf(date)
	if !ok {
		return nil, nil
	}
	return s.store.FindLunch(ctx, category, date.Format(DateLayout))
}

func (s *Service) List(ctx context.Context, filter models.LunchFilter) ([]models.LunchMenu, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	return s.store.FindAllLunch(ctx, filter)
}

// Register stores foods for (date, category). An existing menu is
// overwritten in place, so registering twice never fails.
func (s *Service) Register(ctx context.Context, in CreateLunchInput) (*models.LunchMenu, error) {
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}
	m, err := s.store.FindLunch(ctx, in.Category, in.Date)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return s.store.UpdateLunchMenu(ctx, m.ID, in.Foods)
	}
	return s.store.CreateLunch(ctx, &models.LunchMenu{
		Date:     in.Date,
		Category: in.Category,
		Foods:    in.Foods,
	})
}

// Remove deletes the menu for (date, category). A missing menu is not an error.
func (s *Service) Remove(ctx context.Context, in RemoveLunchInput) error {
	if err := ValidateRemove(in); err != nil {
		return err
	}
	m, err := s.store.FindLunch(ctx, in.Category, in.Date)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	return s.store.RemoveLunch(ctx, m.ID)
}
