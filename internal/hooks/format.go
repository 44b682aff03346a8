package hooks

import (
	"encoding/json"
	"strings"

	"github.com/vibe-x-ai/discuss-skills/internal/platform"
)

// Marker identifies hook entries written by this installer. Every
// generated command contains it through the ~/.discuss-for-specs path.
const Marker = "discuss-for-specs"

// Event keys owned per settings schema.
const (
	claudeStopEvent = "Stop"
	cursorStopEvent = "stop"
)

// cursorSchemaVersion is written when a Cursor hooks.json has no version.
const cursorSchemaVersion = 1

// ownedEvents returns the event keys under "hooks" managed for format.
func ownedEvents(format platform.HooksFormat) []string {
	switch format {
	case platform.FormatClaudeCode:
		return []string{claudeStopEvent}
	case platform.FormatCursor:
		return []string{cursorStopEvent}
	default:
		return nil
	}
}

// newEntry builds the hook entry for format.
func newEntry(format platform.HooksFormat, command string) map[string]any {
	switch format {
	case platform.FormatClaudeCode:
		return map[string]any{
			"matcher": "",
			"hooks": []any{
				map[string]any{
					"type":    "command",
					"command": command,
				},
			},
		}
	case platform.FormatCursor:
		return map[string]any{
			"command": command,
		}
	default:
		return nil
	}
}

// isOwned reports whether the serialized entry contains Marker.
func isOwned(entry any) bool {
	data, err := json.Marshal(entry)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), Marker)
}

// entriesOf returns the entries stored under an event key. A lone object
// counts as a one-entry list and a missing key as an empty one; ok is
// false for any other value.
func entriesOf(v any) (entries []any, ok bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case []any:
		return t, true
	case map[string]any:
		return []any{t}, true
	default:
		return nil, false
	}
}

// withoutOwned returns the entries that are not ours and whether any
// were dropped.
func withoutOwned(entries []any) (kept []any, dropped bool) {
	kept = make([]any, 0, len(entries))
	for _, e := range entries {
		if isOwned(e) {
			dropped = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, dropped
}

// hasOwned reports whether entries hold at least one of ours.
func hasOwned(entries []any) bool {
	for _, e := range entries {
		if isOwned(e) {
			return true
		}
	}
	return false
}
