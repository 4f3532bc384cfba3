package config

import (
	"fmt"
	"os"

	"github.com/iamdew/yellostory-lunch/models"

	"gopkg.in/yaml.v3"
)

// LoadEventDays reads the holiday table from a YAML (or JSON) file.
// An empty path yields an empty table.
func LoadEventDays(path string) (models.EventDays, error) {
	if path == "" {
		return models.EventDays{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event days: %w", err)
	}
	return ParseEventDays(b)
}

func ParseEventDays(b []byte) (models.EventDays, error) {
	days := models.EventDays{}
	if err := yaml.Unmarshal(b, &days); err != nil {
		return nil, fmt.Errorf("parse event days: %w", err)
	}
	return days, nil
}
