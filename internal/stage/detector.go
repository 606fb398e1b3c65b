package stage

import "github.com/vovakirdan/whereisit/internal/core"

// IsHit reports whether an object dropped at final lands in frame.
//
// The object's center must lie inside the frame (edges included). When
// required is non-empty the dropped object must also be the one asked for,
// so a decoy never scores even if it lands in the frame.
func IsHit(final core.Point, size core.Size, frame core.Rect, required, actual ObjectID) bool {
	if required != "" && actual != required {
		return false
	}
	center := final.Add(size.W/2, size.H/2)
	return frame.Contains(center)
}
