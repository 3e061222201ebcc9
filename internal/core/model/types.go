package model

// RawRecord is one line-version record as delivered by the history
// service or the host application. There is no fixed schema: text,
// bounding and timestamp information may live under any of several
// alternate keys, so the record is kept as raw JSON and probed by the
// extract and timestamp packages.
type RawRecord []byte

// Rectangle is an image-region bounding box in pixel coordinates.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Equal reports whether two rectangles have identical coordinates.
func (r Rectangle) Equal(o Rectangle) bool {
	return r.X == o.X && r.Y == o.Y && r.Width == o.Width && r.Height == o.Height
}

// ExtractedVersion is the canonical view of one RawRecord. Every raw
// record maps to exactly one ExtractedVersion; fields that cannot be
// recovered fall back to their zero value (empty text, nil bounding,
// TimestampMillis 0 meaning "unknown").
type ExtractedVersion struct {
	ID              string     `json:"id,omitempty"`
	Text            string     `json:"text"`
	Bounding        *Rectangle `json:"bounding,omitempty"`
	TimestampMillis int64      `json:"timestampMillis"`
}

// OrderedHistory is a sequence of extracted versions sorted newest
// first. Equal timestamps keep their relative input order.
type OrderedHistory []ExtractedVersion

// AnnotatedVersion is an extracted version plus its change annotation
// relative to the next-older version in the history.
type AnnotatedVersion struct {
	ExtractedVersion
	DisplayID       string `json:"displayId"`
	BoundingChanged bool   `json:"boundingChanged"`
}

// Context carries the host application's contextual identifiers. The
// values are passed through opaquely; only their presence matters for
// deciding whether an image preview can be attempted.
type Context struct {
	ManifestID string `json:"manifestId,omitempty"`
	CanvasID   string `json:"canvasId,omitempty"`
}

// ViewModel is the render-ready history of the current line. It is
// rebuilt in full on every selection or update; renderers must not
// assume identity across rebuilds.
type ViewModel struct {
	CurrentLineID string             `json:"currentLineId,omitempty"`
	ManifestID    string             `json:"manifestId,omitempty"`
	CanvasID      string             `json:"canvasId,omitempty"`
	ImageSource   string             `json:"imageSource,omitempty"`
	CanPreview    bool               `json:"canPreview"`
	Versions      []AnnotatedVersion `json:"versions"`
	Empty         bool               `json:"empty"`
}
