// Package feature contains the model input features derived from a daily air quality
// observation along with the categorical labels (season, AQI category) attached to it.
package feature

// FeatureType describes the family a feature belongs to
type FeatureType string

const (
	FeatureTypeTime  FeatureType = "time"
	FeatureTypeEvent FeatureType = "event"
)

// Feature is a labelled column of the design matrix
type Feature interface {
	String() string
	Get(string) (string, bool)
	Type() FeatureType
	Decode() map[string]string
}
