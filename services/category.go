package services

import (
	"time"

	"github.com/iamdew/yellostory-lunch/models"
)

// CategoryOf returns the vendor scheduled to serve lunch on t.
//
//   - 우리푸드: Monday, Wednesday, Friday of even months
//   - 밥도: Tuesday, Thursday, Friday of odd months
//
// Weekends have no scheduled lunch and report false.
func CategoryOf(t time.Time) (string, bool) {
	switch t.Weekday() {
	case time.Monday, time.Wednesday:
		return models.CategoryWoorifood, true
	case time.Tuesday, time.Thursday:
		return models.CategoryBabdo, true
	case time.Friday:
		if t.Month()%2 == 0 {
			return models.CategoryWoorifood, true
		}
		return models.CategoryBabdo, true
	}
	return "", false
}
