package models

import "time"

// Lunch categories. The category column is free text; only these two are
// known to the weekday schedule.
const (
	CategoryWoorifood = "우리푸드"
	CategoryBabdo     = "밥도"
)

// LunchMenu is one day's menu from one vendor. (Date, Category) is unique.
type LunchMenu struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Category  string    `json:"category"`
	Foods     string    `json:"foods"` // newline separated, may hold blank lines
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LunchFilter narrows a menu listing. Empty fields are not applied.
type LunchFilter struct {
	Category  string
	StartDate string
	EndDate   string
}
