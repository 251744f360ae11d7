package codec

import (
	"encoding/json"

	"tableflip.dev/planner/pkg/day"
)

// DecodeDayMapJSON decodes the bytes stored under the days key.
func DecodeDayMapJSON(b []byte) map[string]*day.Record {
	return DecodeDayMap(unmarshal(b))
}

// DecodeSelectionJSON decodes the bytes stored under the selection key.
func DecodeSelectionJSON(b []byte) map[string]day.Selection {
	return DecodeSelection(unmarshal(b))
}

// DecodeFocusJSON decodes the bytes stored under the focus key.
func DecodeFocusJSON(b []byte) (string, bool) {
	return DecodeFocus(unmarshal(b))
}

// DecodeProjectsJSON decodes a legacy project list.
func DecodeProjectsJSON(b []byte) []day.Project {
	return DecodeProjects(unmarshal(b))
}

// DecodeTasksJSON decodes a legacy task list.
func DecodeTasksJSON(b []byte) []day.Task {
	return DecodeTasks(unmarshal(b))
}

// EncodeDayMap writes days in the persisted shape. Empty days are left out.
func EncodeDayMap(days map[string]*day.Record) ([]byte, error) {
	out := make(map[string]*day.Record, len(days))
	for iso, d := range days {
		if d.IsEmpty() {
			continue
		}
		out[iso] = d
	}
	return json.Marshal(out)
}

// EncodeSelection writes the selection map.
func EncodeSelection(sel map[string]day.Selection) ([]byte, error) {
	if sel == nil {
		sel = map[string]day.Selection{}
	}
	return json.Marshal(sel)
}

// EncodeFocus writes the focus date.
func EncodeFocus(iso string) ([]byte, error) {
	return json.Marshal(iso)
}
