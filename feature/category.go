package feature

// Category is the standard AQI band. Values are ordered by severity.
type Category int

const (
	Good Category = iota
	Satisfactory
	Moderate
	Poor
	VeryPoor
	Severe
)

// upper inclusive bound of every category except Severe
var categoryBounds = []struct {
	upper float64
	cat   Category
}{
	{50, Good},
	{100, Satisfactory},
	{200, Moderate},
	{300, Poor},
	{400, VeryPoor},
}

// Categories returns all categories from least to most severe
func Categories() []Category {
	return []Category{Good, Satisfactory, Moderate, Poor, VeryPoor, Severe}
}

func (c Category) String() string {
	switch c {
	case Good:
		return "Good"
	case Satisfactory:
		return "Satisfactory"
	case Moderate:
		return "Moderate"
	case Poor:
		return "Poor"
	case VeryPoor:
		return "Very Poor"
	case Severe:
		return "Severe"
	}
	return "Unknown"
}

// Severity returns the ordinal severity where Good is 0 and Severe is 5
func (c Category) Severity() int {
	return int(c)
}

// CategoryOf maps an AQI value to its category using inclusive upper bounds. Negative
// values are not validated and fall into Good. NaN fails every bound and lands in Severe.
func CategoryOf(aqi float64) Category {
	for _, b := range categoryBounds {
		if aqi <= b.upper {
			return b.cat
		}
	}
	return Severe
}
