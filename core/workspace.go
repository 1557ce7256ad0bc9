// Package core owns the single-threaded UI state: the ordered set of
// terminal tabs, their panes, and the apply-event entry point the
// dispatch loop drives. The workspace is confined to the dispatch loop
// goroutine; it is never locked because nothing else touches it.
package core

import (
	"context"
	"errors"

	"pkt.systems/pslog"

	"github.com/soraterm/soraterm/schema"
)

// CustomHandler reacts to a Custom event. Handlers run on the dispatch
// loop goroutine.
type CustomHandler func(name, data string)

// Config configures the workspace.
type Config struct {
	DefaultProfile schema.ProfileName
	Profiles       []schema.Profile
}

// Workspace is the UI-state owner the dispatch loop applies events to.
type Workspace struct {
	cfg       Config
	terminals TerminalFactory
	log       pslog.Logger

	tabs        []*tab
	active      int
	searchOpen  bool
	aboutOpen   bool
	focusedPane string

	custom   map[string]CustomHandler
	onReload func()
}

// NewWorkspace constructs a Workspace.
func NewWorkspace(cfg Config, terminals TerminalFactory, logger pslog.Logger) (*Workspace, error) {
	if terminals == nil {
		return nil, errors.New("terminal factory is required")
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Workspace{
		cfg:       cfg,
		terminals: terminals,
		log:       logger,
		active:    -1,
		custom:    make(map[string]CustomHandler),
	}, nil
}

// RegisterCustom installs a handler for Custom events with the given
// name. Registration must happen before the dispatch loop starts.
func (w *Workspace) RegisterCustom(name string, handler CustomHandler) {
	if name == "" || handler == nil {
		return
	}
	w.custom[name] = handler
}

// SetReloadHook installs the callback run for ReloadConfig events.
// Installation must happen before the dispatch loop starts.
func (w *Workspace) SetReloadHook(fn func()) {
	w.onReload = fn
}

// ApplyEvent performs one event's effect on the workspace. The dispatch
// loop is the only caller; applying a well-formed event is total and
// never fails the loop.
func (w *Workspace) ApplyEvent(ev schema.Event) {
	switch e := ev.(type) {
	case schema.NewTerminalWithDefaultProfile:
		w.openTab("", nil)
	case schema.NewTerminalWithProfile:
		w.openTab(schema.ProfileName(e.ProfileName), e.WorkingDirectory)
	case schema.CloseActiveTab:
		w.closeTab(w.active)
	case schema.CloseTab:
		w.closeTab(int(e.TabIndex))
	case schema.NextTab:
		w.rotate(1)
	case schema.PreviousTab:
		w.rotate(-1)
	case schema.SwitchToTab:
		if int(e.Position) < len(w.tabs) {
			w.setActive(int(e.Position))
		}
	case schema.SplitHorizontal:
		w.splitActive(SplitHorizontal)
	case schema.SplitVertical:
		w.splitActive(SplitVertical)
	case schema.CloseActivePane:
		w.closeActivePane()
	case schema.ToggleSearch:
		w.searchOpen = !w.searchOpen
	case schema.ShowAboutDialog:
		w.aboutOpen = true
	case schema.ReloadConfig:
		if w.onReload != nil {
			w.onReload()
		} else {
			w.log.Debug("reload requested with no hook installed")
		}
	case schema.FocusActiveTerminal:
		w.refocus()
	case schema.SendTextToTerminal:
		w.sendText(e.Text)
	case schema.Custom:
		w.applyCustom(e)
	default:
		// Unreachable while the union stays closed.
		w.log.Warn("unhandled event", "event", ev.EventTag())
	}
}

func (w *Workspace) openTab(name schema.ProfileName, workdir *string) {
	profile := w.resolveProfile(name)
	if workdir != nil {
		profile.WorkingDirectory = *workdir
	}
	term, err := w.terminals.Open(profile)
	if err != nil {
		w.log.Error("terminal open failed", "profile", profile.Name, "err", err)
		return
	}
	t := newTab(profile, term)
	w.tabs = append(w.tabs, t)
	w.setActive(len(w.tabs) - 1)
	w.log.Debug("tab opened", "tab", t.ID, "profile", profile.Name)
}

func (w *Workspace) resolveProfile(name schema.ProfileName) schema.Profile {
	want := name
	if want == "" {
		want = w.cfg.DefaultProfile
	}
	for _, p := range w.cfg.Profiles {
		if p.Name == want {
			return p
		}
	}
	if name != "" {
		w.log.Warn("unknown profile, using default", "profile", name)
		if name != w.cfg.DefaultProfile {
			return w.resolveProfile("")
		}
	}
	if len(w.cfg.Profiles) > 0 {
		return w.cfg.Profiles[0]
	}
	return schema.Profile{Name: "default", Shell: "/bin/sh"}
}

func (w *Workspace) closeTab(i int) {
	if i < 0 || i >= len(w.tabs) {
		return
	}
	t := w.tabs[i]
	t.closeAll()
	w.tabs = append(w.tabs[:i], w.tabs[i+1:]...)
	switch {
	case len(w.tabs) == 0:
		w.active = -1
		w.focusedPane = ""
	case w.active >= len(w.tabs):
		w.setActive(len(w.tabs) - 1)
	case w.active > i:
		w.active--
	default:
		w.refocus()
	}
	w.log.Debug("tab closed", "tab", t.ID)
}

func (w *Workspace) rotate(step int) {
	n := len(w.tabs)
	if n == 0 {
		return
	}
	current := w.active
	if current < 0 {
		current = 0
	}
	w.setActive(((current+step)%n + n) % n)
}

func (w *Workspace) setActive(i int) {
	w.active = i
	w.refocus()
}

func (w *Workspace) activeTab() *tab {
	if w.active < 0 || w.active >= len(w.tabs) {
		return nil
	}
	return w.tabs[w.active]
}

func (w *Workspace) splitActive(kind SplitKind) {
	t := w.activeTab()
	if t == nil {
		return
	}
	term, err := w.terminals.Open(t.Profile)
	if err != nil {
		w.log.Error("terminal open failed", "profile", t.Profile.Name, "err", err)
		return
	}
	p := t.addPane(kind, term)
	w.focusedPane = p.ID
	w.log.Debug("pane opened", "tab", t.ID, "pane", p.ID, "split", kind)
}

func (w *Workspace) closeActivePane() {
	t := w.activeTab()
	if t == nil {
		return
	}
	if !t.closeActivePane() {
		// Last pane gone, the tab goes with it.
		w.closeTab(w.active)
		return
	}
	w.refocus()
}

func (w *Workspace) refocus() {
	w.focusedPane = ""
	if t := w.activeTab(); t != nil {
		if p := t.activePane(); p != nil {
			w.focusedPane = p.ID
		}
	}
}

func (w *Workspace) sendText(text string) {
	t := w.activeTab()
	if t == nil {
		w.log.Debug("text dropped, no active tab")
		return
	}
	p := t.activePane()
	if p == nil {
		w.log.Debug("text dropped, no active pane", "tab", t.ID)
		return
	}
	p.term.Input([]byte(text))
}

func (w *Workspace) applyCustom(ev schema.Custom) {
	handler, ok := w.custom[ev.Name]
	if !ok {
		w.log.Info("custom event ignored", "name", ev.Name)
		return
	}
	handler(ev.Name, ev.Data)
}

// Tabs returns read-only views of all tabs in order.
func (w *Workspace) Tabs() []TabSnapshot {
	out := make([]TabSnapshot, 0, len(w.tabs))
	for i, t := range w.tabs {
		out = append(out, t.Snapshot(i == w.active))
	}
	return out
}

// ActiveIndex returns the active tab index, or -1 when no tabs exist.
func (w *Workspace) ActiveIndex() int { return w.active }

// SearchOpen reports search bar visibility.
func (w *Workspace) SearchOpen() bool { return w.searchOpen }

// AboutOpen reports about dialog visibility.
func (w *Workspace) AboutOpen() bool { return w.aboutOpen }

// FocusedPane returns the focused pane ID, or empty when nothing is
// focused.
func (w *Workspace) FocusedPane() string { return w.focusedPane }
