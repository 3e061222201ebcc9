package formatter

import (
	"github.com/scripta-tools/linehistory/internal/core/model"
)

// Renderer consumes exactly one ViewModel per rebuild. The panel makes
// no assumption about the output beyond the error return.
type Renderer interface {
	Render(view model.ViewModel) error
}

// New returns the renderer for an output format name. Unknown names
// fall back to the table renderer.
func New(format string) Renderer {
	switch format {
	case "json":
		return NewJSONRenderer()
	default:
		return NewTableRenderer()
	}
}
