// Package gui is the interactive desktop front end: it feeds key presses and
// dropped files into a view.State and shows the resulting heatmap.
package gui

import (
	"path/filepath"

	"github.com/merridan/filevis/internal/logging"
	"github.com/merridan/filevis/internal/tone"
	"github.com/merridan/filevis/internal/view"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// KeyMap binds keys to view commands.
var KeyMap = map[fyne.KeyName]view.Command{
	fyne.KeyUp:    view.IncreaseBrightness,
	fyne.KeyDown:  view.DecreaseBrightness,
	fyne.KeyRight: view.IncreaseContrast,
	fyne.KeyLeft:  view.DecreaseContrast,
	fyne.KeySpace: view.Reset,
}

// Viewer owns the window and the single view.State it displays. All methods
// must run on the fyne event goroutine.
type Viewer struct {
	win    fyne.Window
	state  *view.State
	read   func(path string) []byte
	image  *canvas.Image
	file   *widget.Label
	bright *widget.Label
	cont   *widget.Label
}

// New builds the viewer window. read loads a file, returning nil on failure.
func New(a fyne.App, state *view.State, read func(path string) []byte, scale int) *Viewer {
	v := &Viewer{
		win:    a.NewWindow("filevis"),
		state:  state,
		read:   read,
		file:   widget.NewLabel("drop a file here (Ctrl+O to open)"),
		bright: widget.NewLabel(""),
		cont:   widget.NewLabel(""),
	}

	v.image = canvas.NewImageFromImage(state.Buffer())
	v.image.ScaleMode = canvas.ImageScalePixels
	v.image.FillMode = canvas.ImageFillContain
	side := float32(tone.Side * scale)
	v.image.SetMinSize(fyne.NewSize(side, side))

	v.win.SetContent(container.NewBorder(nil, container.NewVBox(v.file, v.bright, v.cont), nil, nil, v.image))
	v.win.Canvas().SetOnTypedKey(v.HandleKey)
	v.win.SetOnDropped(v.drop)
	openShortcut := func(fyne.Shortcut) { v.showOpenDialog() }
	v.win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, openShortcut)
	v.win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, openShortcut)

	v.refresh()
	return v
}

// Window returns the viewer window.
func (v *Viewer) Window() fyne.Window { return v.win }

// HandleKey applies the command bound to ev, if any.
func (v *Viewer) HandleKey(ev *fyne.KeyEvent) {
	cmd, ok := KeyMap[ev.Name]
	if !ok {
		return
	}
	v.state.Apply(cmd)
	logging.Debug("%s -> brightness %v contrast %v", cmd, v.state.Params().Brightness, v.state.Params().Contrast)
	v.refresh()
}

// Open loads path into the state. Unreadable files show the blank state.
func (v *Viewer) Open(path string) {
	v.state.Load(v.read(path))
	v.file.SetText(filepath.Base(path))
	if !v.state.Loaded() {
		logging.Info("%s: nothing to show", path)
	} else {
		logging.Info("loaded %s (%d digraphs)", path, v.state.Histogram().Total())
	}
	v.refresh()
}

// drop opens the first of the dropped files.
func (v *Viewer) drop(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	v.Open(uris[0].Path())
}

func (v *Viewer) showOpenDialog() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		v.Open(path)
	}, v.win)
}

func (v *Viewer) refresh() {
	b, c := v.state.Caption()
	v.bright.SetText(b)
	v.cont.SetText(c)
	v.image.Refresh()
}
