// Package router keeps the stack of screens the interview client moves
// through: splash, track menu, interview and about.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenius/internal/screen"
)

// Open puts Screen on top of the current one.
type Open struct{ Screen screen.Screen }

// Back leaves the top screen. The bottom screen is never left.
type Back struct{}

// Swap replaces the top screen with Screen, as the splash does when it
// hands over to the track menu.
type Swap struct{ Screen screen.Screen }

// Router routes messages to the top screen and applies navigation.
type Router struct {
	screens []screen.Screen
}

// New creates a Router showing root.
func New(root screen.Screen) *Router {
	return &Router{screens: []screen.Screen{root}}
}

// Top returns the screen being shown, or nil.
func (r *Router) Top() screen.Screen {
	if len(r.screens) == 0 {
		return nil
	}
	return r.screens[len(r.screens)-1]
}

// Depth returns how many screens are stacked.
func (r *Router) Depth() int {
	return len(r.screens)
}

// Update applies navigation messages and hands everything else to the top
// screen. Screens entering the stack are initialized; screens leaving it
// are closed.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Open:
		r.screens = append(r.screens, msg.Screen)
		return msg.Screen.Init()

	case Back:
		if len(r.screens) > 1 {
			release(r.Top())
			r.screens = r.screens[:len(r.screens)-1]
		}
		return nil

	case Swap:
		if top := r.Top(); top != nil {
			release(top)
			r.screens = r.screens[:len(r.screens)-1]
		}
		r.screens = append(r.screens, msg.Screen)
		return msg.Screen.Init()
	}

	top := r.Top()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.screens[len(r.screens)-1] = next
	return cmd
}

// View renders the top screen.
func (r *Router) View(width, height int) string {
	if top := r.Top(); top != nil {
		return top.View(width, height)
	}
	return ""
}

// Close releases every screen, top first.
func (r *Router) Close() {
	for i := len(r.screens) - 1; i >= 0; i-- {
		release(r.screens[i])
	}
	r.screens = nil
}

func release(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
