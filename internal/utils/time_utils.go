package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var defaultLocation *time.Location

func init() {
	var err error
	defaultLocation, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Fallback на UTC+3 если не удалось загрузить локацию
		defaultLocation = time.FixedZone("MSK", 3*60*60)
	}
}

// DefaultLocation возвращает часовой пояс по умолчанию (Москва)
func DefaultLocation() *time.Location {
	return defaultLocation
}

// Clock выдаёт текущее время в заданном часовом поясе
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = defaultLocation
	}
	return &Clock{loc: loc, now: time.Now}
}

// FixedClock используется в тестах
func FixedClock(loc *time.Location, now func() time.Time) *Clock {
	c := NewClock(loc)
	c.now = now
	return c
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Today возвращает текущую дату в формате YYYY-MM-DD
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// DateOf возвращает дату момента t в часовом поясе часов
func (c *Clock) DateOf(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// ParseDate разбирает дату YYYY-MM-DD как полночь в часовом поясе часов
func (c *Clock) ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// SameDate сообщает, попадает ли t на день day
func (c *Clock) SameDate(t, day time.Time) bool {
	return c.DateOf(t) == c.DateOf(day)
}
