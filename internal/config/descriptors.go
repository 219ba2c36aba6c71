package config

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-record-sync/models"
	"gopkg.in/yaml.v3"
)

type descriptorFile struct {
	Descriptors []models.RecordQuery `yaml:"descriptors"`
}

// LoadPullDescriptors reads the public pull descriptors from a YAML file of
// the form:
//
//	descriptors:
//	  - record_type: Article
//	    filter: "published = true"
//
// An empty path yields no descriptors.
func LoadPullDescriptors(path string) ([]models.RecordQuery, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingDescriptors, err)
	}

	var file descriptorFile
	if err = yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingDescriptors, err)
	}

	for i, d := range file.Descriptors {
		if d.RecordType == "" {
			return nil, fmt.Errorf("%w: descriptor #%d", ErrInvalidDescriptor, i)
		}
	}

	return file.Descriptors, nil
}
