package search

import (
	"fmt"
	"strconv"
)

// Engine is one selectable entry in the search UI: a display name plus the
// backend identifiers it resolves to.
type Engine struct {
	Name        string
	EngineID    string
	DatastoreID string
}

// Directory is the ordered list of engines the UI offers. The form's
// search_engine field is a zero-based index into this order. Built once at
// startup and never mutated, so concurrent reads are safe without locking.
type Directory struct {
	engines []Engine
}

func NewDirectory(engines []Engine) *Directory {
	copied := make([]Engine, len(engines))
	copy(copied, engines)
	return &Directory{engines: copied}
}

// Names returns the display names in directory order, for rendering the
// engine dropdown.
func (d *Directory) Names() []string {
	names := make([]string, len(d.engines))
	for i, e := range d.engines {
		names[i] = e.Name
	}
	return names
}

func (d *Directory) Len() int {
	return len(d.engines)
}

// Resolve interprets selector as a zero-based index and returns the engine at
// that position. Malformed and out-of-range selectors return an error, never
// a panic.
func (d *Directory) Resolve(selector string) (Engine, error) {
	index, err := strconv.Atoi(selector)
	if err != nil {
		return Engine{}, fmt.Errorf("invalid search engine selector %q: %w", selector, err)
	}
	if index < 0 || index >= len(d.engines) {
		return Engine{}, fmt.Errorf("search engine selector %d out of range (%d engines configured)", index, len(d.engines))
	}
	return d.engines[index], nil
}
