package main

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type Template struct {
	dir       string
	mu        sync.RWMutex
	templates *template.Template
	watcher   *fsnotify.Watcher
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t.mu.RLock()
	templates := t.templates
	t.mu.RUnlock()
	return templates.ExecuteTemplate(w, name, data)
}

func (t *Template) parse() error {
	templates, err := template.ParseGlob(filepath.Join(t.dir, "*.html"))
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	t.mu.Lock()
	t.templates = templates
	t.mu.Unlock()
	return nil
}

// Watch reparses the views whenever one of them is written, for development.
func (t *Template) Watch() error {
	var err error

	t.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-t.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) {
					log.Infof("modified file: %s", event.Name)
					if err := t.parse(); err != nil {
						log.Errorf("reloading templates: %+v", err)
					}
				}
			case err, ok := <-t.watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher: %+v", err)
			}
		}
	}()

	if err := t.watcher.Add(t.dir); err != nil {
		return fmt.Errorf("watching %s: %w", t.dir, err)
	}
	return nil
}

func (t *Template) Close() {
	if t.watcher != nil {
		t.watcher.Close()
	}
}

func NewTemplate(dir string) (*Template, error) {
	t := &Template{dir: dir}
	if err := t.parse(); err != nil {
		return nil, err
	}
	return t, nil
}
