package feature

import (
	"strings"

	"github.com/goccy/go-json"
)

// named holds the single name label shared by the calendar and event features
type named struct {
	Name string `json:"name"`
}

// Get returns the value of the name label regardless of case
func (n named) Get(label string) (string, bool) {
	if strings.EqualFold(label, "name") {
		return n.Name, true
	}
	return "", false
}

// Decode converts the feature into a map of label values
func (n named) Decode() map[string]string {
	return map[string]string{"name": n.Name}
}

func (n *named) UnmarshalJSON(data []byte) error {
	var labels map[string]string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	n.Name = labels["name"]
	return nil
}
