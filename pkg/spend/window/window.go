package window

import "time"

// Window identifies a calendar accounting period. Daily windows use the
// form "2006-01-02" and monthly windows use "2006-01". Two windows are
// equal iff their identifiers are equal.
type Window string

// dailyLayout and monthlyLayout are the identifier formats for the two
// window kinds.
const (
	dailyLayout   = "2006-01-02"
	monthlyLayout = "2006-01"
)

// IsZero reports whether the window has no identifier. A zero window
// never matches a resolved window, so state tagged with it is always
// rolled over on first use.
func (w Window) IsZero() bool {
	return w == ""
}

// String returns the window identifier.
func (w Window) String() string {
	return string(w)
}

// Resolver maps a timestamp to the calendar windows it falls in.
//
// Implementations must be pure: no side effects, no I/O, and the same
// timestamp always maps to the same windows. The ledger consults a
// Resolver on every operation to decide whether its accounting windows
// have rolled over; tests inject synthetic resolvers or fixed
// timestamps instead of depending on wall-clock time.
type Resolver interface {
	// Daily returns the calendar-day window containing now.
	Daily(now time.Time) Window

	// Monthly returns the calendar-month window containing now.
	Monthly(now time.Time) Window
}

// SystemResolver resolves windows against a fixed time zone.
//
// Budget days follow the user's local calendar by default, so a cost
// recorded at 23:59 and one recorded a minute later land in different
// daily windows. A nil Location falls back to time.Local.
type SystemResolver struct {
	// Location is the time zone used to draw calendar boundaries.
	Location *time.Location
}

// NewSystemResolver creates a resolver for the given time zone.
// Passing nil uses time.Local.
func NewSystemResolver(loc *time.Location) *SystemResolver {
	return &SystemResolver{Location: loc}
}

// Daily returns the calendar-day window containing now.
func (r *SystemResolver) Daily(now time.Time) Window {
	return Window(now.In(r.location()).Format(dailyLayout))
}

// Monthly returns the calendar-month window containing now.
func (r *SystemResolver) Monthly(now time.Time) Window {
	return Window(now.In(r.location()).Format(monthlyLayout))
}

func (r *SystemResolver) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}
