package source

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

var watchLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("SHADERPAD_DEBUG_WATCH") == "1" {
		watchLogger = log.New(os.Stdout, "[watch] ", log.Ltime|log.Lmsgprefix)
	}
}

// Watcher reports when a file is saved by another program (the user's
// editor). It watches the parent directory since many editors save by
// writing a temporary file and renaming it over the original.
type Watcher struct {
	name    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		name:    abs,
		watcher: fw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			watchLogger.Printf("%s: %s", event.Op, event.Name)
			select {
			case w.changed <- struct{}{}:
			default: // already pending; coalesce
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("WARNING: file watcher: %v", err)
		}
	}
}

// Changed returns whether the file changed since the last call. It never
// blocks, so it can be polled once per frame.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
