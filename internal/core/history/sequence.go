// Package history turns raw line-version records into an ordered,
// change-annotated sequence ready for display.
package history

import (
	"sort"

	"github.com/scripta-tools/linehistory/internal/core/extract"
	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/core/timestamp"
)

// Normalize maps each raw record to its canonical extracted form. The
// output always has the same length as the input; records that yield
// no usable fields become zero-valued versions rather than being
// dropped.
func Normalize(records []model.RawRecord) []model.ExtractedVersion {
	versions := make([]model.ExtractedVersion, 0, len(records))
	for _, record := range records {
		versions = append(versions, model.ExtractedVersion{
			ID:              extract.ID(record),
			Text:            extract.Text(record),
			Bounding:        extract.Bounding(record),
			TimestampMillis: timestamp.Resolve(record),
		})
	}
	return versions
}

// Sequence orders versions newest first. The sort is stable: versions
// with equal timestamps, including the unknown-timestamp sentinel,
// keep their relative input order, because the upstream fetch may
// already deliver a meaningful order that numeric timestamps cannot
// disambiguate.
func Sequence(versions []model.ExtractedVersion) model.OrderedHistory {
	ordered := make(model.OrderedHistory, len(versions))
	copy(ordered, versions)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TimestampMillis > ordered[j].TimestampMillis
	})
	return ordered
}
