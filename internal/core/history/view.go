package history

import (
	"fmt"

	"github.com/scripta-tools/linehistory/internal/core/extract"
	"github.com/scripta-tools/linehistory/internal/core/model"
)

// Build assembles the render-ready view of a line's history. A nil
// current line yields the explicit empty view, which the renderer
// shows as a placeholder.
func Build(current model.RawRecord, ordered model.OrderedHistory, hostCtx model.Context) model.ViewModel {
	if current == nil {
		return model.ViewModel{Empty: true, Versions: []model.AnnotatedVersion{}}
	}

	versions := Annotate(ordered)
	for i := range versions {
		versions[i].DisplayID = displayID(versions[i].ExtractedVersion, i, len(versions))
	}

	imageSource := extract.ImageSource(current)
	return model.ViewModel{
		CurrentLineID: extract.ID(current),
		ManifestID:    hostCtx.ManifestID,
		CanvasID:      hostCtx.CanvasID,
		ImageSource:   imageSource,
		CanPreview:    imageSource != "" || hostCtx.ManifestID != "" || hostCtx.CanvasID != "",
		Versions:      versions,
	}
}

// displayID prefers the record's own identifier and otherwise
// synthesizes a positional label counted from the oldest version.
// The label is a display fallback only, not a stored identity.
func displayID(v model.ExtractedVersion, index, total int) string {
	if v.ID != "" {
		return v.ID
	}
	return fmt.Sprintf("version-%d", total-index)
}
