// Package codec turns untrusted persisted JSON into planner records and back.
//
// Decoding never fails. Values of the wrong type are treated as absent,
// entries missing a required field are dropped, and derived fields found in
// the input are ignored and rebuilt.
package codec

import (
	"encoding/json"
	"math"
	"sort"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/timeutil"
)

// FocusPlaceholder is the persisted focus value meaning "not yet resolved".
const FocusPlaceholder = ""

// DecodeDayMap decodes a persisted day map. Days that decode to nothing and
// the placeholder key are omitted.
func DecodeDayMap(raw any) map[string]*day.Record {
	obj, ok := raw.(map[string]any)
	if !ok {
		return map[string]*day.Record{}
	}
	out := make(map[string]*day.Record, len(obj))
	for iso, v := range obj {
		if iso == FocusPlaceholder {
			continue
		}
		if d := DecodeDay(v); d != nil {
			out[iso] = d
		}
	}
	return out
}

// DecodeDay decodes one persisted day, or returns nil when it holds no
// projects, no tasks and neither focus nor notes.
func DecodeDay(raw any) *day.Record {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	projects := decodeProjects(obj["projects"])
	tasks := decodeTasks(obj["tasks"])

	var opts []day.Option
	if focus, ok := obj["focus"].(string); ok {
		opts = append(opts, day.WithFocus(focus))
	}
	if notes, ok := obj["notes"].(string); ok {
		opts = append(opts, day.WithNotes(notes))
	}
	if len(projects) == 0 && len(tasks) == 0 && len(opts) == 0 {
		return nil
	}
	return day.New(projects, tasks, opts...)
}

// DecodeProjects decodes a bare project list, as written by the legacy
// unsharded format.
func DecodeProjects(raw any) []day.Project {
	return decodeProjects(raw)
}

// DecodeTasks decodes a bare task list, as written by the legacy unsharded
// format.
func DecodeTasks(raw any) []day.Task {
	return decodeTasks(raw)
}

// DecodeFocus returns the persisted focus date when it is the placeholder
// or a valid ISO date.
func DecodeFocus(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	if s == FocusPlaceholder || timeutil.IsISO(s) {
		return s, true
	}
	return "", false
}

// DecodeSelection decodes the persisted selection map. Only string ids
// survive.
func DecodeSelection(raw any) map[string]day.Selection {
	obj, ok := raw.(map[string]any)
	if !ok {
		return map[string]day.Selection{}
	}
	out := make(map[string]day.Selection, len(obj))
	for iso, v := range obj {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var sel day.Selection
		sel.ProjectID, _ = entry["projectId"].(string)
		sel.TaskID, _ = entry["taskId"].(string)
		out[iso] = sel
	}
	return out
}

func decodeProjects(raw any) []day.Project {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]day.Project, 0, len(list))
	for _, v := range list {
		if p, ok := decodeProject(v); ok {
			out = append(out, p)
		}
	}
	return out
}

func decodeProject(raw any) (day.Project, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return day.Project{}, false
	}
	id, ok1 := obj["id"].(string)
	name, ok2 := obj["name"].(string)
	done, ok3 := obj["done"].(bool)
	createdAt, ok4 := finite(obj["createdAt"])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return day.Project{}, false
	}
	p := day.Project{ID: id, Name: name, Done: done, CreatedAt: createdAt}
	p.Disabled, _ = obj["disabled"].(bool)
	p.Loading, _ = obj["loading"].(bool)
	return p, true
}

func decodeTasks(raw any) []day.Task {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]day.Task, 0, len(list))
	for _, v := range list {
		if t, ok := decodeTask(v); ok {
			out = append(out, t)
		}
	}
	return out
}

func decodeTask(raw any) (day.Task, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return day.Task{}, false
	}
	id, ok1 := obj["id"].(string)
	title, ok2 := obj["title"].(string)
	done, ok3 := obj["done"].(bool)
	createdAt, ok4 := finite(obj["createdAt"])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return day.Task{}, false
	}
	t := day.Task{
		ID:        id,
		Title:     title,
		Done:      done,
		CreatedAt: createdAt,
		Images:    decodeImages(obj["images"]),
	}
	t.ProjectID, _ = obj["projectId"].(string)
	if rem, ok := obj["reminder"].(map[string]any); ok {
		t.Reminder = day.SanitizeReminder(DecodeReminderPatch(rem))
	}
	return t, true
}

// DecodeReminderPatch reads the correctly typed reminder fields from obj.
func DecodeReminderPatch(obj map[string]any) day.ReminderPatch {
	var p day.ReminderPatch
	if v, ok := obj["enabled"].(bool); ok {
		p.Enabled = &v
	}
	if v, ok := obj["reminderId"].(string); ok {
		p.ReminderID = &v
	}
	if v, ok := obj["time"].(string); ok {
		p.Time = &v
	}
	if v, ok := obj["leadMinutes"].(float64); ok {
		p.LeadMinutes = &v
	}
	return p
}

func decodeImages(raw any) []string {
	out := []string{}
	list, ok := raw.([]any)
	if !ok {
		return out
	}
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func finite(raw any) (float64, bool) {
	f, ok := raw.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ISOKeys returns the keys of days in ascending order.
func ISOKeys(days map[string]*day.Record) []string {
	keys := make([]string, 0, len(days))
	for iso := range days {
		keys = append(keys, iso)
	}
	sort.Strings(keys)
	return keys
}

// unmarshal decodes b into a generic value, or nil when b is not JSON.
func unmarshal(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	return v
}
