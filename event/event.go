package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

var (
	ErrStartAfterEnd = errors.New("event start time is after end time")
	ErrUnsetTime     = errors.New("unset event start or end time")
	ErrNoEventName   = errors.New("no event name")
)

// National holidays observed in Delhi that fall on a fixed solar date or a fixed offset from
// Easter. Lunar holidays such as Diwali and Holi cannot be derived from these rules.
var (
	RepublicDay = &cal.Holiday{
		Name:  "Republic Day",
		Month: time.January,
		Day:   26,
		Func:  cal.CalcDayOfMonth,
	}
	GoodFriday = &cal.Holiday{
		Name:   "Good Friday",
		Offset: -2,
		Func:   cal.CalcEasterOffset,
	}
	IndependenceDay = &cal.Holiday{
		Name:  "Independence Day",
		Month: time.August,
		Day:   15,
		Func:  cal.CalcDayOfMonth,
	}
	GandhiJayanti = &cal.Holiday{
		Name:  "Gandhi Jayanti",
		Month: time.October,
		Day:   2,
		Func:  cal.CalcDayOfMonth,
	}
	ChristmasDay = &cal.Holiday{
		Name:  "Christmas Day",
		Month: time.December,
		Day:   25,
		Func:  cal.CalcDayOfMonth,
	}
)

// Holidays returns the calendar used to derive daily holiday counts
func Holidays() []*cal.Holiday {
	return []*cal.Holiday{
		RepublicDay,
		GoodFriday,
		IndependenceDay,
		GandhiJayanti,
		ChristmasDay,
	}
}

// Event is a named span of days. Start is inclusive and End is exclusive.
type Event struct {
	Name  string
	Start time.Time
	End   time.Time
}

func NewEvent(name string, start, end time.Time) Event {
	return Event{
		Name:  name,
		Start: start,
		End:   end,
	}
}

func (e *Event) Valid() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrUnsetTime
	}
	if e.Start.After(e.End) {
		return ErrStartAfterEnd
	}
	if e.Name == "" {
		return ErrNoEventName
	}
	return nil
}

// Contains reports if t falls within the event span
func (e Event) Contains(t time.Time) bool {
	return !t.Before(e.Start) && t.Before(e.End)
}

// Holiday returns a day long event for every occurrence of the holiday between start and end
// inclusive. Occurrences are placed at midnight in the location of start.
func Holiday(hol *cal.Holiday, start, end time.Time, durBefore, durAfter time.Duration) []Event {
	loc := start.Location()

	events := []Event{}
	for i := start.Year(); i <= end.Year(); i++ {
		actual, _ := hol.Calc(i)
		if actual.IsZero() {
			continue
		}
		day := time.Date(actual.Year(), actual.Month(), actual.Day(), 0, 0, 0, 0, loc)

		if day.Before(truncateDay(start)) || day.After(end) {
			continue
		}
		events = append(events, Event{
			Name:  strings.ReplaceAll(fmt.Sprintf("%s_%d", hol.Name, i), " ", "_"),
			Start: day.Add(-durBefore),
			End:   day.AddDate(0, 0, 1).Add(durAfter),
		})
	}
	return events
}

// Events returns the occurrences of every calendar holiday between start and end
func Events(start, end time.Time) []Event {
	var events []Event
	for _, hol := range Holidays() {
		events = append(events, Holiday(hol, start, end, 0, 0)...)
	}
	return events
}

// Counts returns the number of calendar holidays falling on each day of t
func Counts(t []time.Time) []float64 {
	counts := make([]float64, len(t))
	if len(t) == 0 {
		return counts
	}

	start, end := t[0], t[0]
	for _, tPnt := range t {
		if tPnt.Before(start) {
			start = tPnt
		}
		if tPnt.After(end) {
			end = tPnt
		}
	}

	events := Events(start, end)
	for i, tPnt := range t {
		day := time.Date(tPnt.Year(), tPnt.Month(), tPnt.Day(), 0, 0, 0, 0, start.Location())
		for _, e := range events {
			if e.Contains(day) {
				counts[i]++
			}
		}
	}
	return counts
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
