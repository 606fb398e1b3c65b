// Package registry provides a global catalog of draggable icons.
// Icons register themselves in init() functions, so configuration and the
// platform can look them up by ID without hardcoded tables.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/vovakirdan/whereisit/internal/core"
)

// Icon describes a picture the child can drag around.
type Icon struct {
	// ID is the unique identifier used in stage configuration (e.g. "dog").
	ID string

	// Title is a human-readable name shown in the HUD.
	Title string

	// Art is the ASCII picture, one string per row.
	Art []string

	// Color tints the art on screen.
	Color core.Color

	// Tone is the base pitch in Hz of the icon's spoken-name cue.
	Tone float64
}

// Size returns the icon's footprint in playfield cells.
func (i Icon) Size() core.Size {
	w := 0
	for _, row := range i.Art {
		w = max(w, utf8.RuneCountInString(row))
	}
	return core.Size{W: float64(w), H: float64(len(i.Art))}
}

var (
	icons = make(map[string]Icon)
	mu    sync.RWMutex
)

// Register adds an icon to the catalog.
// Panics if the ID is empty or already registered, or the color is not in
// the palette.
func Register(icon Icon) {
	mu.Lock()
	defer mu.Unlock()

	if icon.ID == "" {
		panic("registry: icon without ID")
	}
	if !icon.Color.Valid() {
		panic(fmt.Sprintf("registry: icon %q has unknown color %d", icon.ID, icon.Color))
	}
	if _, exists := icons[icon.ID]; exists {
		panic(fmt.Sprintf("registry: icon %q already registered", icon.ID))
	}
	icons[icon.ID] = icon
}

// List returns all registered icons, sorted by ID.
func List() []Icon {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Icon, 0, len(icons))
	for _, icon := range icons {
		result = append(result, icon)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the icon with the given ID.
func Lookup(id string) (Icon, error) {
	mu.RLock()
	defer mu.RUnlock()

	icon, ok := icons[id]
	if !ok {
		return Icon{}, fmt.Errorf("registry: unknown icon %q", id)
	}
	return icon, nil
}

// Exists checks if an icon with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := icons[id]
	return ok
}
