// Package timestamp resolves the heterogeneous timestamp conventions
// found in line-version records into a single comparable instant.
package timestamp

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/scripta-tools/linehistory/internal/core/model"
)

// Unknown is the sentinel for records carrying no parseable timestamp.
// Callers must treat it as "sorts last", not as the epoch.
const Unknown int64 = 0

// candidatePaths are probed in priority order. The provenance paths
// cover stores that nest creation and overwrite marks under a
// "__rerum" sub-object; an overwrite mark is a valid instant because a
// later overwrite supersedes the original creation time.
var candidatePaths = []string{
	"__rerum.createdAt",
	"createdAt",
	"modified",
	"created",
	"timestamp",
	"__rerum.isOverwritten",
}

// layouts accepted for string-valued candidates.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Resolve returns the record's timestamp in epoch milliseconds, or
// Unknown when no candidate parses. All present, parseable candidates
// are collected and the maximum wins: a later overwrite mark beats an
// earlier creation mark. Unparseable candidates are discarded, never
// fatal.
func Resolve(record model.RawRecord) int64 {
	root := gjson.ParseBytes(record)

	resolved := Unknown
	for _, path := range candidatePaths {
		v := root.Get(path)
		if !v.Exists() {
			continue
		}
		if ms, ok := instant(v); ok && ms > resolved {
			resolved = ms
		}
	}
	return resolved
}

// instant converts one candidate value to epoch millis. Numbers are
// taken as already-epoch-millis; strings are parsed as calendar
// date-times.
func instant(v gjson.Result) (int64, bool) {
	switch v.Type {
	case gjson.Number:
		ms := v.Int()
		if ms <= 0 {
			return 0, false
		}
		return ms, true
	case gjson.String:
		for _, layout := range layouts {
			if t, err := time.Parse(layout, v.Str); err == nil {
				return t.UnixMilli(), true
			}
		}
	}
	return 0, false
}
