package schema

// ProfileName identifies a terminal profile.
type ProfileName string

// Profile describes how to start a terminal session.
type Profile struct {
	Name             ProfileName
	Shell            string
	WorkingDirectory string
}

// ExternalSource selects the out-of-process event source.
type ExternalSource string

const (
	// SourceNone disables external event sources.
	SourceNone ExternalSource = "none"
	// SourceStdio reads events from standard input.
	SourceStdio ExternalSource = "stdio"
	// SourceSocket reads events from a local socket.
	SourceSocket ExternalSource = "socket"
)

// Valid reports whether the source selection is recognized.
func (s ExternalSource) Valid() bool {
	switch s {
	case SourceNone, SourceStdio, SourceSocket:
		return true
	}
	return false
}
