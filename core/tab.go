package core

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/soraterm/soraterm/schema"
)

// SplitKind records how a pane was created.
type SplitKind string

const (
	// SplitNone marks a tab's first pane.
	SplitNone SplitKind = "none"
	// SplitHorizontal marks a pane created by a horizontal split.
	SplitHorizontal SplitKind = "horizontal"
	// SplitVertical marks a pane created by a vertical split.
	SplitVertical SplitKind = "vertical"
)

// pane holds one terminal within a tab.
type pane struct {
	ID    string
	Split SplitKind
	term  Terminal
}

// tab tracks the state of one terminal tab.
type tab struct {
	ID      string
	Name    string
	Profile schema.Profile
	panes   []*pane
	active  int
}

func newTab(profile schema.Profile, term Terminal) *tab {
	return &tab{
		ID:      newID("tab"),
		Name:    string(profile.Name),
		Profile: profile,
		panes:   []*pane{{ID: newID("pane"), Split: SplitNone, term: term}},
	}
}

func (t *tab) activePane() *pane {
	if t.active < 0 || t.active >= len(t.panes) {
		return nil
	}
	return t.panes[t.active]
}

func (t *tab) addPane(split SplitKind, term Terminal) *pane {
	p := &pane{ID: newID("pane"), Split: split, term: term}
	t.panes = append(t.panes, p)
	t.active = len(t.panes) - 1
	return p
}

// closeActivePane closes the active pane's terminal and removes the
// pane. It reports whether any panes remain.
func (t *tab) closeActivePane() bool {
	p := t.activePane()
	if p == nil {
		return len(t.panes) > 0
	}
	p.term.Close()
	t.panes = append(t.panes[:t.active], t.panes[t.active+1:]...)
	if t.active >= len(t.panes) {
		t.active = len(t.panes) - 1
	}
	return len(t.panes) > 0
}

func (t *tab) closeAll() {
	for _, p := range t.panes {
		p.term.Close()
	}
	t.panes = nil
	t.active = -1
}

// TabSnapshot is a read-only view of a tab.
type TabSnapshot struct {
	ID      string
	Name    string
	Profile schema.Profile
	Panes   int
	Active  bool
}

// Snapshot returns a read-only view of the tab.
func (t *tab) Snapshot(active bool) TabSnapshot {
	return TabSnapshot{
		ID:      t.ID,
		Name:    t.Name,
		Profile: t.Profile,
		Panes:   len(t.panes),
		Active:  active,
	}
}

func newID(prefix string) string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return prefix + "-unknown"
	}
	return prefix + "-" + hex.EncodeToString(buf[:])
}
