package models

// EventDay is a holiday or special day shown instead of "no menu".
type EventDay struct {
	Name string `json:"name" yaml:"name"`
}

type EventYear struct {
	Items map[string]EventDay `json:"items" yaml:"items"` // keyed by YYYY-MM-DD
}

// EventDays is keyed by four digit year. It is loaded once at startup and
// only read afterwards.
type EventDays map[string]EventYear

// Lookup returns the event registered for date (YYYY-MM-DD) in year.
func (e EventDays) Lookup(year, date string) (EventDay, bool) {
	y, ok := e[year]
	if !ok {
		return EventDay{}, false
	}
	d, ok := y.Items[date]
	return d, ok
}
