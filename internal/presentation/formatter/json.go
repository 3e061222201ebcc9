package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/scripta-tools/linehistory/internal/core/model"
)

// JSONRenderer writes the ViewModel as indented JSON.
type JSONRenderer struct {
	writer io.Writer
}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{writer: os.Stdout}
}

// NewJSONRendererTo writes to the given writer instead of stdout.
func NewJSONRendererTo(w io.Writer) *JSONRenderer {
	return &JSONRenderer{writer: w}
}

func (r *JSONRenderer) Render(view model.ViewModel) error {
	data, err := sonic.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.writer, string(data))
	return err
}
