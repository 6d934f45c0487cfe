// Package seed loads initial meetings from YAML.
package seed

import (
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/security"
	"gopkg.in/yaml.v3"
)

// File is the top-level document of a seed file.
type File struct {
	Meetings []Record `yaml:"meetings"`
}

// Record describes one seeded meeting. Dates use domain.DateTimeLayout.
type Record struct {
	Name              string   `yaml:"name"`
	ResponsiblePerson string   `yaml:"responsible_person"`
	Description       string   `yaml:"description"`
	Category          string   `yaml:"category"`
	Type              string   `yaml:"type"`
	Start             string   `yaml:"start"`
	End               string   `yaml:"end"`
	Attendees         []string `yaml:"attendees"`
}

// Load decodes a seed document. An empty document yields no records.
func Load(r io.Reader) ([]Record, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return f.Meetings, nil
}

// LoadFile reads and decodes the seed file at path.
func LoadFile(path string) ([]Record, error) {
	f, err := security.SafeOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Build converts the record into an unsaved meeting without attendees.
// Dates in the past are accepted.
func (r Record) Build() (*domain.Meeting, error) {
	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return nil, fmt.Errorf("meeting %q: %w", r.Name, err)
	}
	meetingType, err := domain.ParseType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("meeting %q: %w", r.Name, err)
	}
	start, err := domain.ParseDateTime(r.Start)
	if err != nil {
		return nil, fmt.Errorf("meeting %q start: %w", r.Name, err)
	}
	end, err := domain.ParseDateTime(r.End)
	if err != nil {
		return nil, fmt.Errorf("meeting %q end: %w", r.Name, err)
	}

	m, err := domain.NewMeeting(r.Name, r.ResponsiblePerson, r.Description, category, meetingType, start, end)
	if err != nil {
		return nil, fmt.Errorf("meeting %q: %w", r.Name, err)
	}
	return m, nil
}
