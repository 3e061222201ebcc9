// Package events adapts host-application notification transports to
// the panel's selection handler. Line-selected and line-updated
// notifications are equivalent for the panel: both carry a raw record
// that becomes the new current line.
package events

import (
	"github.com/scripta-tools/linehistory/internal/core/model"
)

// Handler receives the raw record carried by a notification.
type Handler func(record model.RawRecord)

// Source is a host event dispatcher the panel can subscribe to.
type Source interface {
	Subscribe(handler Handler)
	Close() error
}
