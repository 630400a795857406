package clock

import (
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

const (
	DateLayout = "2006-01-02"

	// DefaultOffsetHours is Bogotá time, which has no daylight saving.
	DefaultOffsetHours = -5
)

var _ domain.Clock = (*Civil)(nil)

// Civil is a clock pinned to a fixed UTC offset, independent of the host locale.
type Civil struct {
	loc *time.Location
	now func() time.Time
}

func NewCivil(offsetHours int) *Civil {
	return &Civil{
		loc: FixedZone(offsetHours),
		now: time.Now,
	}
}

// NewFixed returns a clock frozen at t, for tests and replays.
func NewFixed(offsetHours int, t time.Time) *Civil {
	return &Civil{
		loc: FixedZone(offsetHours),
		now: func() time.Time { return t },
	}
}

func FixedZone(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+03d:00", offsetHours)
	return time.FixedZone(name, offsetHours*3600)
}

func (c *Civil) Location() *time.Location {
	return c.loc
}

func (c *Civil) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Civil) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *Civil) Weekday() time.Weekday {
	return c.Now().Weekday()
}

// ISOWeek returns the Thursday-anchored ISO-8601 week number of t, seen in
// the clock's timezone.
func (c *Civil) ISOWeek(t time.Time) int {
	_, week := t.In(c.loc).ISOWeek()
	return week
}
