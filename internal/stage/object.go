package stage

import "github.com/vovakirdan/whereisit/internal/core"

// ObjectID names a draggable object within a stage (e.g. "dog").
type ObjectID string

// Object is a draggable object on the playfield.
type Object struct {
	ID       ObjectID
	Size     core.Size
	Position core.Point // current top-left, follows the pointer while dragging
	Origin   core.Point // where the object returns to on a miss
}

// Bounds returns the rectangle the object currently covers.
func (o Object) Bounds() core.Rect {
	return core.RectAt(o.Position, o.Size)
}

// ObjectSpec describes an object before placement.
type ObjectSpec struct {
	ID   ObjectID
	Size core.Size
}
