package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scripta-tools/linehistory/internal/core/model"
)

func version(id string, ts int64, rect *model.Rectangle) model.ExtractedVersion {
	return model.ExtractedVersion{ID: id, TimestampMillis: ts, Bounding: rect}
}

func TestSequenceNewestFirst(t *testing.T) {
	versions := []model.ExtractedVersion{
		version("a", 1000, nil),
		version("b", 3000, nil),
		version("c", 2000, nil),
	}

	ordered := Sequence(versions)

	require.Len(t, ordered, 3)
	assert.Equal(t, "b", ordered[0].ID)
	assert.Equal(t, "c", ordered[1].ID)
	assert.Equal(t, "a", ordered[2].ID)
}

func TestSequenceStableOnTies(t *testing.T) {
	// Equal timestamps, including the unknown sentinel, must keep
	// their relative input order: the upstream fetch may already
	// deliver a meaningful order.
	versions := []model.ExtractedVersion{
		version("first", 0, nil),
		version("newer", 5000, nil),
		version("second", 0, nil),
		version("third", 0, nil),
	}

	ordered := Sequence(versions)

	require.Len(t, ordered, 4)
	assert.Equal(t, "newer", ordered[0].ID)
	assert.Equal(t, "first", ordered[1].ID)
	assert.Equal(t, "second", ordered[2].ID)
	assert.Equal(t, "third", ordered[3].ID)
}

func TestSequenceDoesNotDropOrMutateInput(t *testing.T) {
	versions := []model.ExtractedVersion{
		version("a", 100, nil),
		version("b", 200, nil),
	}

	ordered := Sequence(versions)

	assert.Len(t, ordered, len(versions))
	// The input slice keeps its own order.
	assert.Equal(t, "a", versions[0].ID)
	assert.Equal(t, "b", versions[1].ID)
}

func TestNormalizePreservesLength(t *testing.T) {
	records := []model.RawRecord{
		model.RawRecord(`{"text": "hello", "x": 1, "y": 2, "width": 10, "height": 5, "created": 2000}`),
		model.RawRecord(`{}`),
		model.RawRecord(`garbage`),
	}

	versions := Normalize(records)

	require.Len(t, versions, 3)
	assert.Equal(t, "hello", versions[0].Text)
	assert.Equal(t, int64(2000), versions[0].TimestampMillis)
	assert.Equal(t, &model.Rectangle{X: 1, Y: 2, Width: 10, Height: 5}, versions[0].Bounding)
	assert.Equal(t, model.ExtractedVersion{}, versions[1])
	assert.Equal(t, model.ExtractedVersion{}, versions[2])
}

func TestAnnotateIdenticalBoxesUnflagged(t *testing.T) {
	box := &model.Rectangle{X: 1, Y: 1, Width: 1, Height: 1}
	ordered := model.OrderedHistory{
		version("new", 2000, box),
		version("old", 1000, &model.Rectangle{X: 1, Y: 1, Width: 1, Height: 1}),
	}

	annotated := Annotate(ordered)

	require.Len(t, annotated, 2)
	assert.False(t, annotated[0].BoundingChanged)
	assert.False(t, annotated[1].BoundingChanged)
}

func TestAnnotateFlagsMiddleChange(t *testing.T) {
	ordered := model.OrderedHistory{
		version("newest", 3000, &model.Rectangle{X: 5, Y: 5, Width: 5, Height: 5}),
		version("middle", 2000, &model.Rectangle{X: 5, Y: 5, Width: 5, Height: 5}),
		version("oldest", 1000, &model.Rectangle{X: 1, Y: 1, Width: 1, Height: 1}),
	}

	annotated := Annotate(ordered)

	require.Len(t, annotated, 3)
	// The newest entry is never flagged regardless of its bounding.
	assert.False(t, annotated[0].BoundingChanged)
	// The middle entry differs from its next-older version.
	assert.True(t, annotated[1].BoundingChanged)
	// The oldest entry has no successor.
	assert.False(t, annotated[2].BoundingChanged)
}

func TestAnnotateNewestAlwaysUnflagged(t *testing.T) {
	histories := []model.OrderedHistory{
		{version("solo", 1000, &model.Rectangle{X: 1, Y: 2, Width: 3, Height: 4})},
		{
			version("new", 2000, &model.Rectangle{X: 9, Y: 9, Width: 9, Height: 9}),
			version("old", 1000, nil),
		},
		{
			version("new", 2000, nil),
			version("mid", 1500, &model.Rectangle{X: 1, Y: 1, Width: 1, Height: 1}),
			version("old", 1000, nil),
		},
	}

	for i, ordered := range histories {
		annotated := Annotate(ordered)
		require.NotEmpty(t, annotated)
		assert.False(t, annotated[0].BoundingChanged, "history %d", i)
	}
}

func TestRectChanged(t *testing.T) {
	a := &model.Rectangle{X: 1, Y: 2, Width: 3, Height: 4}
	b := &model.Rectangle{X: 1, Y: 2, Width: 3, Height: 5}
	same := &model.Rectangle{X: 1, Y: 2, Width: 3, Height: 4}

	tests := []struct {
		name string
		a, b *model.Rectangle
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: false},
		{name: "one nil", a: a, b: nil, want: true},
		{name: "equal coordinates", a: a, b: same, want: false},
		{name: "height differs", a: a, b: b, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RectChanged(tt.a, tt.b))
			// The predicate is symmetric.
			assert.Equal(t, RectChanged(tt.a, tt.b), RectChanged(tt.b, tt.a))
		})
	}
}

func TestBuildDisplayIDs(t *testing.T) {
	ordered := model.OrderedHistory{
		version("https://store.example.org/id/v3", 3000, nil),
		version("", 2000, nil),
		version("", 1000, nil),
	}

	view := Build(model.RawRecord(`{"@id": "https://store.example.org/id/v3"}`), ordered, model.Context{})

	require.Len(t, view.Versions, 3)
	assert.Equal(t, "https://store.example.org/id/v3", view.Versions[0].DisplayID)
	// Positional labels count from the oldest version.
	assert.Equal(t, "version-2", view.Versions[1].DisplayID)
	assert.Equal(t, "version-1", view.Versions[2].DisplayID)
}

func TestBuildContext(t *testing.T) {
	current := model.RawRecord(`{"id": "line-1", "target": {"source": "https://images.example.org/canvas/9"}}`)
	view := Build(current, model.OrderedHistory{}, model.Context{ManifestID: "manifest-a", CanvasID: "canvas-b"})

	assert.Equal(t, "line-1", view.CurrentLineID)
	assert.Equal(t, "manifest-a", view.ManifestID)
	assert.Equal(t, "canvas-b", view.CanvasID)
	assert.Equal(t, "https://images.example.org/canvas/9", view.ImageSource)
	assert.True(t, view.CanPreview)
	assert.False(t, view.Empty)
}

func TestBuildNoPreviewContext(t *testing.T) {
	view := Build(model.RawRecord(`{"id": "line-1"}`), model.OrderedHistory{}, model.Context{})
	assert.False(t, view.CanPreview)
}

func TestBuildNilCurrentLine(t *testing.T) {
	view := Build(nil, model.OrderedHistory{}, model.Context{ManifestID: "ignored"})

	assert.True(t, view.Empty)
	assert.Empty(t, view.Versions)
	assert.Empty(t, view.CurrentLineID)
}

func TestFullPipeline(t *testing.T) {
	// Raw records in arbitrary order, heterogeneous shapes.
	records := []model.RawRecord{
		model.RawRecord(`{"id": "v1", "value": "oldest text", "x": 1, "y": 1, "w": 10, "h": 4, "created": "2020-01-01T00:00:00Z"}`),
		model.RawRecord(`{"@id": "v3", "text": "newest text", "target": {"selector": {"value": "xywh=pixel:2,1,10,4"}}, "__rerum": {"createdAt": "2022-01-01T00:00:00Z"}}`),
		model.RawRecord(`{"id": "v2", "body": {"value": "middle text"}, "x": 1, "y": 1, "width": 10, "height": 4, "modified": "2021-01-01T00:00:00Z"}`),
	}

	ordered := Sequence(Normalize(records))
	view := Build(records[1], ordered, model.Context{})

	require.Len(t, view.Versions, 3)
	for i, wantID := range []string{"v3", "v2", "v1"} {
		assert.Equal(t, wantID, view.Versions[i].DisplayID, fmt.Sprintf("position %d", i))
	}
	assert.Equal(t, "newest text", view.Versions[0].Text)
	// v3 is the newest so it is never flagged, and v2's box matches
	// v1's exactly, so no entry carries a change flag.
	for i := range view.Versions {
		assert.False(t, view.Versions[i].BoundingChanged)
	}
}
