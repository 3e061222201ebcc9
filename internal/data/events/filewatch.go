package events

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/util"
)

// FileSource emits a line-updated notification whenever a watched
// record file is rewritten. The file's content is the raw record.
type FileSource struct {
	watcher *fsnotify.Watcher
	path    string

	mu       sync.Mutex
	handlers []Handler
}

// NewFileSource starts watching the given record file.
func NewFileSource(path string) (*FileSource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors often replace the file instead of
	// writing it in place, which would drop a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	fs := &FileSource{
		watcher: watcher,
		path:    filepath.Clean(path),
	}

	go fs.processEvents()

	return fs, nil
}

// Subscribe registers a handler for subsequent file rewrites.
func (fs *FileSource) Subscribe(handler Handler) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.handlers = append(fs.handlers, handler)
}

func (fs *FileSource) processEvents() {
	for {
		select {
		case event, ok := <-fs.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fs.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fs.emit()

		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// emit reads the record file and notifies every subscriber.
func (fs *FileSource) emit() {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		util.LogWarnf("Failed to read record file %s: %v", fs.path, err)
		return
	}

	fs.mu.Lock()
	handlers := make([]Handler, len(fs.handlers))
	copy(handlers, fs.handlers)
	fs.mu.Unlock()

	for _, handler := range handlers {
		handler(model.RawRecord(data))
	}
}

// Close stops the watcher.
func (fs *FileSource) Close() error {
	return fs.watcher.Close()
}
