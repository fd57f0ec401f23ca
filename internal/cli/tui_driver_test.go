package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/polaris/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the shell model, sizes it and drains Init, which
// hydrates notes synchronously against the in-memory backends.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	m := newAppModel(context.Background(), app)
	d := teatest.New(t, m, teatest.WithSize(120, 60))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.ID()
	}
	return ViewID(-1)
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// OpenStrategy moves the list cursor down n rows and opens that strategy.
func (d *TestDriver) OpenStrategy(n int) {
	d.T.Helper()
	for range n {
		d.PressDown()
	}
	d.PressEnter()
}
