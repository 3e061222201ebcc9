package history

import (
	"github.com/scripta-tools/linehistory/internal/core/model"
)

// Annotate flags, for each version in a newest-first history, whether
// its bounding box differs from the next-older version. The newest
// entry is never flagged, and the oldest entry has no successor to
// compare against, so it is never flagged either.
func Annotate(ordered model.OrderedHistory) []model.AnnotatedVersion {
	annotated := make([]model.AnnotatedVersion, 0, len(ordered))
	for i, version := range ordered {
		changed := false
		if i > 0 && i+1 < len(ordered) {
			changed = RectChanged(version.Bounding, ordered[i+1].Bounding)
		}
		annotated = append(annotated, model.AnnotatedVersion{
			ExtractedVersion: version,
			BoundingChanged:  changed,
		})
	}
	return annotated
}

// RectChanged reports whether two bounding values differ: exactly one
// nil, or both non-nil with any coordinate differing. Two nils are
// unchanged. The predicate is symmetric.
func RectChanged(a, b *model.Rectangle) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return !a.Equal(*b)
}
