package schema

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Encode serializes an event as a single JSON object with the variant's
// fields flattened at the top level plus an "event" tag field. The
// result carries no trailing newline; line framing belongs to the
// transport.
func Encode(ev Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(body, "event", string(ev.EventTag()))
}

// Decode parses one wire line into an Event. Any document that is not a
// JSON object, lacks a string "event" field, names an unknown tag, or
// carries a declared field of the wrong type yields a *DecodeError.
// Unknown extra fields are tolerated for forward compatibility.
func Decode(line []byte) (Event, error) {
	if !gjson.ValidBytes(line) {
		return nil, &DecodeError{Kind: DecodeErrorNotObject}
	}
	parsed := gjson.ParseBytes(line)
	if !parsed.IsObject() {
		return nil, &DecodeError{Kind: DecodeErrorNotObject}
	}
	tagField := parsed.Get("event")
	if !tagField.Exists() || tagField.Type != gjson.String {
		return nil, &DecodeError{Kind: DecodeErrorMissingTag}
	}
	tag := Tag(tagField.String())
	switch tag {
	case TagNewTerminalWithDefaultProfile:
		return decodePayload[NewTerminalWithDefaultProfile](tag, line)
	case TagNewTerminalWithProfile:
		return decodePayload[NewTerminalWithProfile](tag, line)
	case TagCloseActiveTab:
		return decodePayload[CloseActiveTab](tag, line)
	case TagCloseTab:
		return decodePayload[CloseTab](tag, line)
	case TagNextTab:
		return decodePayload[NextTab](tag, line)
	case TagPreviousTab:
		return decodePayload[PreviousTab](tag, line)
	case TagSwitchToTab:
		return decodePayload[SwitchToTab](tag, line)
	case TagSplitHorizontal:
		return decodePayload[SplitHorizontal](tag, line)
	case TagSplitVertical:
		return decodePayload[SplitVertical](tag, line)
	case TagCloseActivePane:
		return decodePayload[CloseActivePane](tag, line)
	case TagToggleSearch:
		return decodePayload[ToggleSearch](tag, line)
	case TagShowAboutDialog:
		return decodePayload[ShowAboutDialog](tag, line)
	case TagReloadConfig:
		return decodePayload[ReloadConfig](tag, line)
	case TagFocusActiveTerminal:
		return decodePayload[FocusActiveTerminal](tag, line)
	case TagSendTextToTerminal:
		return decodePayload[SendTextToTerminal](tag, line)
	case TagCustom:
		return decodePayload[Custom](tag, line)
	default:
		return nil, &DecodeError{Kind: DecodeErrorUnknownTag, Tag: tag}
	}
}

func decodePayload[T Event](tag Tag, line []byte) (Event, error) {
	var v T
	if err := json.Unmarshal(line, &v); err != nil {
		return nil, &DecodeError{Kind: DecodeErrorBadField, Tag: tag, Err: err}
	}
	return v, nil
}
