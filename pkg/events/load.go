package events

import (
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/planweave/planweave/pkg/errors"
)

// eventFile is the schema of an events YAML file:
//
//	events:
//	  - title: Release 1.0
//	    date: 2026-04-12
//	  - title: Alice
//	    month: 4
//	    day: 20
//	    recurs: yearly
type eventFile struct {
	Events []Event `yaml:"events"`
}

// Load reads one events file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "events file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading events file %s", path)
	}
	return Parse(data, path)
}

// Parse decodes events YAML. name appears in error messages only.
func Parse(data []byte, name string) (*Set, error) {
	var file eventFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing events file %s", name)
	}
	set, err := NewSet(file.Events)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "events file %s", name)
	}
	return set, nil
}

// LoadGlob loads every file matching a doublestar pattern such as
// "events/**/*.yaml" and merges them in sorted path order. A pattern that
// matches nothing yields an empty set.
func LoadGlob(pattern string) (*Set, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "bad events glob %q", pattern)
	}
	sort.Strings(paths)

	merged := &Set{}
	for _, path := range paths {
		set, err := Load(path)
		if err != nil {
			return nil, err
		}
		merged.events = append(merged.events, set.events...)
	}
	return merged, nil
}
