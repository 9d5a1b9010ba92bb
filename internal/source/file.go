package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/planline/planline/internal/milestone"
)

// File is the on-disk shape of a records file.
type File struct {
	Creator string             `yaml:"creator,omitempty"`
	Records []milestone.Record `yaml:"records"`
}

// FileSource serves pages out of a YAML records file. It re-reads the
// file on the first page of each refresh so edits show up without a
// restart.
type FileSource struct {
	path    string
	creator string
	records []milestone.Record
}

// NewFileSource creates a file-backed record source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the backing file path.
func (f *FileSource) Path() string {
	return f.path
}

// Creator returns the creator identity recorded in the file, if any.
// Valid after the first FetchPage.
func (f *FileSource) Creator() string {
	return f.creator
}

// FetchPage implements Source by slicing the parsed file.
func (f *FileSource) FetchPage(ctx context.Context, q Query) ([]milestone.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.Offset == 0 {
		if err := f.load(); err != nil {
			return nil, err
		}
	}

	if q.Offset >= len(f.records) {
		return nil, nil
	}
	end := min(q.Offset+q.Limit, len(f.records))
	return f.records[q.Offset:end], nil
}

func (f *FileSource) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read records file: %w", err)
	}

	var doc File
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse records file: %w", err)
	}
	f.creator = doc.Creator
	f.records = doc.Records
	return nil
}

// Watcher signals on Events when the watched records file changes.
type Watcher struct {
	Events <-chan struct{}
	fsw    *fsnotify.Watcher
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Watch reports writes to the given file. Editors often replace files
// by rename, so the parent directory is watched and events are matched
// by name.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Coalesce bursts; one pending signal is enough.
				select {
				case events <- struct{}{}:
				default:
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return &Watcher{Events: events, fsw: fsw}, nil
}
