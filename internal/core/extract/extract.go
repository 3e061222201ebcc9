// Package extract normalizes raw line-version records into canonical
// fields. Records have no fixed schema, so every accessor probes an
// ordered list of candidate shapes and takes the first usable one.
// Extraction is total: malformed or missing candidates are skipped,
// never reported as errors.
package extract

import (
	"regexp"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/scripta-tools/linehistory/internal/core/model"
)

// textKeys are tried in order before the annotation-body shapes.
var textKeys = []string{"text", "content", "cnt:chars"}

// imageKeys are the flat image-source fallbacks.
var imageKeys = []string{"image", "src", "source"}

// idKeys identify a version record.
var idKeys = []string{"@id", "id", "_id"}

// xywhPattern matches a media-fragment region selector: four
// comma-separated non-negative integers, optionally prefixed by a
// pixel-unit marker, e.g. "xywh=pixel:5,6,7,8".
var xywhPattern = regexp.MustCompile(`xywh=(?:pixel:)?(\d+),(\d+),(\d+),(\d+)`)

// Text returns the transcription text of a record, or "" when no
// candidate shape carries one.
func Text(record model.RawRecord) string {
	root := gjson.ParseBytes(record)

	for _, key := range textKeys {
		if v := root.Get(key); v.Type == gjson.String {
			return v.Str
		}
	}

	if body := root.Get("body"); body.Exists() {
		if s, ok := bodyValue(body); ok {
			return s
		}
	}

	if v := root.Get("value"); v.Type == gjson.String {
		return v.Str
	}
	return ""
}

// bodyValue resolves an annotation body: a bare string, an object with
// a "value" field, or an array of bodies where the first entry exposing
// a "value" wins.
func bodyValue(body gjson.Result) (string, bool) {
	switch {
	case body.Type == gjson.String:
		return body.Str, true
	case body.IsObject():
		if v := body.Get("value"); v.Type == gjson.String {
			return v.Str, true
		}
	case body.IsArray():
		for _, item := range body.Array() {
			if v := item.Get("value"); v.Type == gjson.String {
				return v.Str, true
			}
			if item.Type == gjson.String {
				return item.Str, true
			}
		}
	}
	return "", false
}

// Bounding returns the image-region rectangle of a record, or nil.
// An annotation-style target/on selector takes precedence over flat
// coordinate fields; the two sources are never merged. A selector
// string that does not match the region pattern yields nil from that
// source, not a partial rectangle.
func Bounding(record model.RawRecord) *model.Rectangle {
	root := gjson.ParseBytes(record)

	for _, key := range []string{"target", "on"} {
		t := root.Get(key)
		if !t.IsObject() {
			continue
		}
		if sel := t.Get("selector.value"); sel.Type == gjson.String {
			if rect := parseRegion(sel.Str); rect != nil {
				return rect
			}
		}
	}

	return flatBounding(root)
}

// parseRegion parses an "xywh=" region selector into a rectangle.
func parseRegion(selector string) *model.Rectangle {
	m := xywhPattern.FindStringSubmatch(selector)
	if m == nil {
		return nil
	}
	return &model.Rectangle{
		X:      atoi(m[1]),
		Y:      atoi(m[2]),
		Width:  atoi(m[3]),
		Height: atoi(m[4]),
	}
}

// flatBounding reads flat x/y plus width-or-w plus height-or-h fields.
// All four must be present; a partial set yields nil.
func flatBounding(root gjson.Result) *model.Rectangle {
	x := root.Get("x")
	y := root.Get("y")
	w := firstNumber(root, "width", "w")
	h := firstNumber(root, "height", "h")

	if x.Type != gjson.Number || y.Type != gjson.Number || w == nil || h == nil {
		return nil
	}
	return &model.Rectangle{
		X:      int(x.Int()),
		Y:      int(y.Int()),
		Width:  int(w.Int()),
		Height: int(h.Int()),
	}
}

func firstNumber(root gjson.Result, keys ...string) *gjson.Result {
	for _, key := range keys {
		if v := root.Get(key); v.Type == gjson.Number {
			return &v
		}
	}
	return nil
}

// ImageSource returns the image identifier associated with a record,
// or "" when none is present.
func ImageSource(record model.RawRecord) string {
	root := gjson.ParseBytes(record)

	for _, key := range []string{"target", "on"} {
		t := root.Get(key)
		if t.IsObject() {
			if src := t.Get("source"); src.Type == gjson.String {
				return src.Str
			}
		} else if t.Type == gjson.String {
			return t.Str
		}
	}

	for _, key := range imageKeys {
		if v := root.Get(key); v.Type == gjson.String {
			return v.Str
		}
	}
	return ""
}

// ID returns the record's stable identifier, or "" when absent.
func ID(record model.RawRecord) string {
	root := gjson.ParseBytes(record)
	for _, key := range idKeys {
		v := root.Get(key)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
		if v.Type == gjson.Number {
			return v.String()
		}
	}
	return ""
}

// atoi converts a digits-only string already validated by the region
// pattern; it cannot fail on matched input.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
