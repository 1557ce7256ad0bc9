package schema

// Tag names an event variant on the wire.
type Tag string

const (
	// TagNewTerminalWithDefaultProfile opens a tab with the default profile.
	TagNewTerminalWithDefaultProfile Tag = "NewTerminalWithDefaultProfile"
	// TagNewTerminalWithProfile opens a tab with a named profile.
	TagNewTerminalWithProfile Tag = "NewTerminalWithProfile"
	// TagCloseActiveTab closes the active tab.
	TagCloseActiveTab Tag = "CloseActiveTab"
	// TagCloseTab closes a tab by index.
	TagCloseTab Tag = "CloseTab"
	// TagNextTab activates the next tab.
	TagNextTab Tag = "NextTab"
	// TagPreviousTab activates the previous tab.
	TagPreviousTab Tag = "PreviousTab"
	// TagSwitchToTab activates a tab by position.
	TagSwitchToTab Tag = "SwitchToTab"
	// TagSplitHorizontal splits the active pane horizontally.
	TagSplitHorizontal Tag = "SplitHorizontal"
	// TagSplitVertical splits the active pane vertically.
	TagSplitVertical Tag = "SplitVertical"
	// TagCloseActivePane closes the active pane.
	TagCloseActivePane Tag = "CloseActivePane"
	// TagToggleSearch toggles the search bar.
	TagToggleSearch Tag = "ToggleSearch"
	// TagShowAboutDialog shows the about dialog.
	TagShowAboutDialog Tag = "ShowAboutDialog"
	// TagReloadConfig reloads the configuration.
	TagReloadConfig Tag = "ReloadConfig"
	// TagFocusActiveTerminal refocuses the active terminal.
	TagFocusActiveTerminal Tag = "FocusActiveTerminal"
	// TagSendTextToTerminal forwards raw text to the active terminal.
	TagSendTextToTerminal Tag = "SendTextToTerminal"
	// TagCustom carries an extension-defined payload.
	TagCustom Tag = "Custom"
)

// Event is a single UI command that can cross thread and process
// boundaries. The variant set is closed; extensions hang off Custom.
type Event interface {
	// EventTag returns the wire tag of the variant.
	EventTag() Tag

	sealed()
}

// NewTerminalWithDefaultProfile opens a new terminal tab using the
// configured default profile.
type NewTerminalWithDefaultProfile struct{}

// NewTerminalWithProfile opens a new terminal tab with a named profile.
// WorkingDirectory is nil when the profile's own directory should apply.
type NewTerminalWithProfile struct {
	ProfileName      string  `json:"profile_name"`
	WorkingDirectory *string `json:"working_directory,omitempty"`
}

// CloseActiveTab closes the currently active tab.
type CloseActiveTab struct{}

// CloseTab closes the tab at TabIndex.
type CloseTab struct {
	TabIndex uint `json:"tab_index"`
}

// NextTab activates the tab after the active one, wrapping around.
type NextTab struct{}

// PreviousTab activates the tab before the active one, wrapping around.
type PreviousTab struct{}

// SwitchToTab activates the tab at Position (0-indexed).
type SwitchToTab struct {
	Position uint `json:"position"`
}

// SplitHorizontal splits the active pane horizontally.
type SplitHorizontal struct{}

// SplitVertical splits the active pane vertically.
type SplitVertical struct{}

// CloseActivePane closes the active pane within a split.
type CloseActivePane struct{}

// ToggleSearch toggles search bar visibility.
type ToggleSearch struct{}

// ShowAboutDialog shows the about dialog.
type ShowAboutDialog struct{}

// ReloadConfig reloads configuration and theme.
type ReloadConfig struct{}

// FocusActiveTerminal moves focus back to the active terminal.
type FocusActiveTerminal struct{}

// SendTextToTerminal forwards Text, including control characters, to the
// active terminal as raw input bytes.
type SendTextToTerminal struct {
	Text string `json:"text"`
}

// Custom is an extension event. Name is a free-form namespaced
// identifier; Data is an opaque payload owned by the extension.
type Custom struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// EventTag implements Event.
func (NewTerminalWithDefaultProfile) EventTag() Tag { return TagNewTerminalWithDefaultProfile }

// EventTag implements Event.
func (NewTerminalWithProfile) EventTag() Tag { return TagNewTerminalWithProfile }

// EventTag implements Event.
func (CloseActiveTab) EventTag() Tag { return TagCloseActiveTab }

// EventTag implements Event.
func (CloseTab) EventTag() Tag { return TagCloseTab }

// EventTag implements Event.
func (NextTab) EventTag() Tag { return TagNextTab }

// EventTag implements Event.
func (PreviousTab) EventTag() Tag { return TagPreviousTab }

// EventTag implements Event.
func (SwitchToTab) EventTag() Tag { return TagSwitchToTab }

// EventTag implements Event.
func (SplitHorizontal) EventTag() Tag { return TagSplitHorizontal }

// EventTag implements Event.
func (SplitVertical) EventTag() Tag { return TagSplitVertical }

// EventTag implements Event.
func (CloseActivePane) EventTag() Tag { return TagCloseActivePane }

// EventTag implements Event.
func (ToggleSearch) EventTag() Tag { return TagToggleSearch }

// EventTag implements Event.
func (ShowAboutDialog) EventTag() Tag { return TagShowAboutDialog }

// EventTag implements Event.
func (ReloadConfig) EventTag() Tag { return TagReloadConfig }

// EventTag implements Event.
func (FocusActiveTerminal) EventTag() Tag { return TagFocusActiveTerminal }

// EventTag implements Event.
func (SendTextToTerminal) EventTag() Tag { return TagSendTextToTerminal }

// EventTag implements Event.
func (Custom) EventTag() Tag { return TagCustom }

func (NewTerminalWithDefaultProfile) sealed() {}
func (NewTerminalWithProfile) sealed()        {}
func (CloseActiveTab) sealed()                {}
func (CloseTab) sealed()                      {}
func (NextTab) sealed()                       {}
func (PreviousTab) sealed()                   {}
func (SwitchToTab) sealed()                   {}
func (SplitHorizontal) sealed()               {}
func (SplitVertical) sealed()                 {}
func (CloseActivePane) sealed()               {}
func (ToggleSearch) sealed()                  {}
func (ShowAboutDialog) sealed()               {}
func (ReloadConfig) sealed()                  {}
func (FocusActiveTerminal) sealed()           {}
func (SendTextToTerminal) sealed()            {}
func (Custom) sealed()                        {}
