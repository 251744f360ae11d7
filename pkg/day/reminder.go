package day

import (
	"math"
	"regexp"
	"strings"
)

// MaxLeadMinutes caps how far ahead of its time a reminder may fire.
const MaxLeadMinutes = 24 * 60

var time24h = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

// Reminder is the sanitized reminder attached to a task.
type Reminder struct {
	Enabled     bool   `json:"enabled"`
	ReminderID  string `json:"reminderId,omitempty"`
	Time        string `json:"time,omitempty"`
	LeadMinutes *int   `json:"leadMinutes,omitempty"`
}

// ReminderPatch is an unvalidated, partial reminder. Nil fields are unset.
type ReminderPatch struct {
	Enabled     *bool
	ReminderID  *string
	Time        *string
	LeadMinutes *float64
}

// Patch expresses r as a patch with every present field set.
func (r *Reminder) Patch() ReminderPatch {
	if r == nil {
		return ReminderPatch{}
	}
	p := ReminderPatch{Enabled: Ptr(r.Enabled)}
	if r.ReminderID != "" {
		p.ReminderID = Ptr(r.ReminderID)
	}
	if r.Time != "" {
		p.Time = Ptr(r.Time)
	}
	if r.LeadMinutes != nil {
		p.LeadMinutes = Ptr(float64(*r.LeadMinutes))
	}
	return p
}

// Merge returns p with every field set in over replacing p's value.
func (p ReminderPatch) Merge(over ReminderPatch) ReminderPatch {
	if over.Enabled != nil {
		p.Enabled = over.Enabled
	}
	if over.ReminderID != nil {
		p.ReminderID = over.ReminderID
	}
	if over.Time != nil {
		p.Time = over.Time
	}
	if over.LeadMinutes != nil {
		p.LeadMinutes = over.LeadMinutes
	}
	return p
}

// SanitizeReminder normalizes a patch into a Reminder, or nil when nothing
// worth keeping remains. String fields are trimmed, a time must be HH:MM on
// a 24h clock, and lead minutes are rounded and clamped to MaxLeadMinutes
// (negative or non-finite leads are dropped). Without an explicit Enabled,
// the reminder is enabled when any other field survived.
func SanitizeReminder(p ReminderPatch) *Reminder {
	var id string
	if p.ReminderID != nil {
		id = strings.TrimSpace(*p.ReminderID)
	}

	var at string
	if p.Time != nil {
		if trimmed := strings.TrimSpace(*p.Time); time24h.MatchString(trimmed) {
			at = trimmed
		}
	}

	var lead *int
	if p.LeadMinutes != nil {
		raw := *p.LeadMinutes
		if !math.IsNaN(raw) && !math.IsInf(raw, 0) && raw >= 0 {
			minutes := int(math.Min(MaxLeadMinutes, math.Round(raw)))
			lead = &minutes
		}
	}

	var enabled bool
	if p.Enabled != nil {
		enabled = *p.Enabled
	} else {
		enabled = id != "" || at != "" || lead != nil
	}

	if !enabled && id == "" && at == "" && lead == nil {
		return nil
	}
	return &Reminder{
		Enabled:     enabled,
		ReminderID:  id,
		Time:        at,
		LeadMinutes: lead,
	}
}

// RemindersEqual reports whether a and b carry the same fields.
func RemindersEqual(a, b *Reminder) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Enabled != b.Enabled || a.ReminderID != b.ReminderID || a.Time != b.Time {
		return false
	}
	switch {
	case a.LeadMinutes == nil && b.LeadMinutes == nil:
		return true
	case a.LeadMinutes == nil || b.LeadMinutes == nil:
		return false
	default:
		return *a.LeadMinutes == *b.LeadMinutes
	}
}
