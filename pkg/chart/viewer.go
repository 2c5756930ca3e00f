package chart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/ja7ad/bouncy/pkg/bounce"
)

const hint = "q/Esc/Enter: close"

var styles = map[Role]tcell.Style{
	RoleEmpty:      tcell.StyleDefault,
	RoleText:       tcell.StyleDefault,
	RoleAxis:       tcell.StyleDefault.Foreground(tcell.ColorGray),
	RoleTrajectory: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	RoleThreshold:  tcell.StyleDefault.Foreground(tcell.ColorSilver),
}

// Viewer draws a trajectory chart on a terminal screen and keeps it up to date
// across resizes until the user closes it.
type Viewer struct {
	screen tcell.Screen
	pts    []bounce.Point
	hMin   float64
	log    *slog.Logger
}

// NewViewer binds a chart to an initialized screen. A nil logger falls back
// to slog.Default().
func NewViewer(screen tcell.Screen, pts []bounce.Point, hMin float64, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	return &Viewer{screen: screen, pts: pts, hMin: hMin, log: log}
}

// Draw lays the chart out for the current screen size and shows it.
func (v *Viewer) Draw() {
	w, h := v.screen.Size()
	c := Plot(v.pts, v.hMin, w, h)

	v.screen.Clear()
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			cell := c.At(x, y)
			v.screen.SetContent(x, y, cell.Rune, nil, styles[cell.Role])
		}
	}
	if w >= MinWidth && h >= MinHeight {
		x := w - len(hint) - 1
		for i, r := range hint {
			v.screen.SetContent(x+i, 2, r, nil, styles[RoleAxis])
		}
	}
	v.screen.Show()
}

// Run draws the chart and blocks until a close key, an interrupt or the end
// of the event stream.
func (v *Viewer) Run() error {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if closeKey(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if err, ok := ev.Data().(error); ok {
				return err
			}
			return nil
		case *tcell.EventError:
			return ev
		}
	}
}

func closeKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Show opens the terminal, runs a Viewer on it and restores the terminal on
// return. Cancelling ctx closes the chart with ctx.Err().
func Show(ctx context.Context, pts []bounce.Point, hMin float64, log *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("chart: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("chart: init screen: %w", err)
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
		case <-done:
		}
	}()

	v := NewViewer(screen, pts, hMin, log)
	w, h := screen.Size()
	v.log.Debug("chart opened", "width", w, "height", h, "points", len(pts))
	return v.Run()
}
