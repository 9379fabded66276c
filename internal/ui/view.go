package ui

import "github.com/charmbracelet/bubbles/key"

// View is one full-screen navigable unit. Render produces the content for
// the current frame; the manager never inspects a view's state otherwise.
//
// Optional behavior is discovered through the hook interfaces below.
type View interface {
	Render() string
}

// Navigator is the manager surface views call back into.
//
// Show, Back, Open and Redraw must be called from the dispatch goroutine:
// inside a hook or a func passed to Post. Other goroutines hand work over
// with Post; code outside any view uses Manager.Enter.
type Navigator interface {
	Show(name string, opts ...ShowOption) error
	Back() error
	Open(v View) (string, error)
	Redraw()
	Shutdown()
	Has(name string) bool
	// Post runs fn on the dispatch goroutine, after any chunk in progress.
	Post(fn func())
	// Go runs fn on its own goroutine; a panic ends the session.
	Go(fn func())
}

// Mounter is implemented by views that need to run code once they are
// current and painted.
type Mounter interface {
	OnMount(nav Navigator) error
}

// Unmounter is implemented by views that clean up when navigated away from.
type Unmounter interface {
	OnUnmount(nav Navigator) error
}

// InputHandler receives exactly one raw input chunk per call.
type InputHandler interface {
	OnInput(chunk string, nav Navigator) error
}

// Titled views expose a title.
type Titled interface {
	Title() string
}

// ComponentView declares the widgets a view is built from. Used to derive
// footer hints when the view does not provide its own.
type ComponentView interface {
	Components() []Capability
}

// FooterHinter supplies explicit footer hints, used verbatim.
type FooterHinter interface {
	FooterHints() []key.Binding
}

// Screen is a View assembled from functions, for ad hoc screens that have
// no type of their own. Nil fields are skipped.
type Screen struct {
	Name    string
	Content func() string
	Input   func(chunk string, nav Navigator) error
	Mount   func(nav Navigator) error
	Unmount func(nav Navigator) error
	Hints   []key.Binding
	Caps    []Capability
}

var (
	_ View          = (*Screen)(nil)
	_ InputHandler  = (*Screen)(nil)
	_ Mounter       = (*Screen)(nil)
	_ Unmounter     = (*Screen)(nil)
	_ FooterHinter  = (*Screen)(nil)
	_ ComponentView = (*Screen)(nil)
	_ Titled        = (*Screen)(nil)
)

func (s *Screen) Render() string {
	if s.Content == nil {
		return ""
	}
	return s.Content()
}

func (s *Screen) OnInput(chunk string, nav Navigator) error {
	if s.Input == nil {
		return nil
	}
	return s.Input(chunk, nav)
}

func (s *Screen) OnMount(nav Navigator) error {
	if s.Mount == nil {
		return nil
	}
	return s.Mount(nav)
}

func (s *Screen) OnUnmount(nav Navigator) error {
	if s.Unmount == nil {
		return nil
	}
	return s.Unmount(nav)
}

func (s *Screen) FooterHints() []key.Binding { return s.Hints }

func (s *Screen) Components() []Capability { return s.Caps }

func (s *Screen) Title() string { return s.Name }
