package service

import (
	"time"

	"github.com/6540011013-oss/Room-Status-System/internal/model"
)

// Clock supplies "now". Services derive today's date from it.
type Clock func() time.Time

// SystemClock returns time.Now in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func (c Clock) today() model.Date { return model.DateOf(c()) }
