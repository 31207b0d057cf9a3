package feature

const LabelEventHolidays = "holidays"

// Event feature counting the calendar events, such as public holidays, that fall on the
// observation day
type Event struct {
	named
}

func NewEvent(name string) *Event {
	return &Event{named{Name: name}}
}

func (e Event) String() string {
	return "event_" + e.Name
}

func (e Event) Type() FeatureType {
	return FeatureTypeEvent
}
