package router

import (
	"github.com/abhisek/histquiz/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the active tab.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the active tab.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen of the active tab.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// SwitchTabMsg makes the tab at Index visible.
type SwitchTabMsg struct {
	Index int
}

// Router manages one stack of screens per tab. Only the active tab's top
// screen receives key input; every other message reaches all screens so
// background work (a quiz loading while the settings tab is open) keeps
// flowing.
type Router struct {
	tabs   [][]screen.Screen
	active int
}

// New creates a Router. Each screen is the root of its own tab, in order.
func New(initial screen.Screen, more ...screen.Screen) *Router {
	r := &Router{tabs: [][]screen.Screen{{initial}}}
	for _, s := range more {
		r.tabs = append(r.tabs, []screen.Screen{s})
	}
	return r
}

// Init runs Init on every tab root.
func (r *Router) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.tabs))
	for _, stack := range r.tabs {
		cmds = append(cmds, stack[0].Init())
	}
	return tea.Batch(cmds...)
}

// Push adds a screen on top of the active tab and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.tabs[r.active] = append(r.tabs[r.active], s)
	return s.Init()
}

// Pop removes the top screen. No-op if the tab's depth would become 0.
func (r *Router) Pop() tea.Cmd {
	stack := r.tabs[r.active]
	if len(stack) <= 1 {
		return nil
	}
	r.tabs[r.active] = stack[:len(stack)-1]
	return r.focusActive()
}

// Replace swaps the top screen of the active tab and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	stack := r.tabs[r.active]
	stack[len(stack)-1] = s
	return s.Init()
}

// Switch activates tab i. Out-of-range indexes and the current tab are
// ignored. A screen implementing screen.Focuser is focused.
func (r *Router) Switch(i int) tea.Cmd {
	if i < 0 || i >= len(r.tabs) || i == r.active {
		return nil
	}
	r.active = i
	return r.focusActive()
}

// Next activates the tab after the current one, wrapping around.
func (r *Router) Next() tea.Cmd {
	if len(r.tabs) < 2 {
		return nil
	}
	return r.Switch((r.active + 1) % len(r.tabs))
}

func (r *Router) focusActive() tea.Cmd {
	if f, ok := r.Active().(screen.Focuser); ok {
		return f.Focus()
	}
	return nil
}

// Active returns the top screen of the active tab.
func (r *Router) Active() screen.Screen {
	stack := r.tabs[r.active]
	return stack[len(stack)-1]
}

// ActiveTab returns the index of the visible tab.
func (r *Router) ActiveTab() int {
	return r.active
}

// TabNames returns the title of each tab's root screen.
func (r *Router) TabNames() []string {
	names := make([]string, len(r.tabs))
	for i, stack := range r.tabs {
		names[i] = stack[0].Title()
	}
	return names
}

// Depth returns the number of screens on the active tab.
func (r *Router) Depth() int {
	return len(r.tabs[r.active])
}

// Update handles navigation messages, sends key input to the active
// screen and broadcasts everything else.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case SwitchTabMsg:
		return r.Switch(msg.Index)
	case tea.KeyMsg, tea.PasteMsg:
		stack := r.tabs[r.active]
		updated, cmd := stack[len(stack)-1].Update(msg)
		stack[len(stack)-1] = updated
		return cmd
	}

	var cmds []tea.Cmd
	for _, stack := range r.tabs {
		for i, s := range stack {
			updated, cmd := s.Update(msg)
			stack[i] = updated
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
