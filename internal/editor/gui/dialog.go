package gui

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/mini-engine/internal/assets"
	"github.com/Faultbox/mini-engine/internal/logger"
)

// picker runs one native file dialog at a time off the render thread and
// hands the chosen path back through a channel polled by the frame loop.
type picker struct {
	title   string
	filter  string
	exts    []string
	results chan string
	busy    atomic.Bool
}

func newPicker(title, filter string, exts ...string) *picker {
	return &picker{
		title:   title,
		filter:  filter,
		exts:    exts,
		results: make(chan string, 1),
	}
}

func modelPicker() *picker {
	exts := make([]string, 0, len(assets.ModelExtensions))
	for _, e := range assets.ModelExtensions {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return newPicker("Import Model", "3D Models", exts...)
}

func scenePicker() *picker {
	return newPicker("Choose Scene", "Scene Files", "json")
}

// Open shows the dialog unless one is already up.
func (p *picker) Open(startDir string) {
	if !p.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer p.busy.Store(false)

		filename, err := dialog.File().
			Filter(p.filter, p.exts...).
			Filter("All Files", "*").
			SetStartDir(startDir).
			Title(p.title).
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Error("file dialog failed", zap.String("title", p.title), zap.Error(err))
			}
			return
		}
		p.results <- filename
	}()
}

// Poll returns a pending selection without blocking.
func (p *picker) Poll() (string, bool) {
	select {
	case f := <-p.results:
		return f, true
	default:
		return "", false
	}
}

func (p *picker) Busy() bool {
	return p.busy.Load()
}
