package feature

// Season is one of the four climatological seasons of the Delhi region
type Season int

const (
	Winter Season = iota
	Summer
	Monsoon
	PostMonsoon
)

// Seasons returns all seasons in canonical order
func Seasons() []Season {
	return []Season{Winter, Summer, Monsoon, PostMonsoon}
}

func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Summer:
		return "Summer"
	case Monsoon:
		return "Monsoon"
	case PostMonsoon:
		return "Post-Monsoon"
	}
	return "Unknown"
}

// SeasonOf maps a month number to its season. Any month outside of the winter, summer
// and monsoon ranges is post-monsoon.
func SeasonOf(month int) Season {
	switch month {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5, 6:
		return Summer
	case 7, 8, 9:
		return Monsoon
	default:
		return PostMonsoon
	}
}
