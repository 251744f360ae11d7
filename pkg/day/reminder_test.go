package day

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeReminder(t *testing.T) {
	tests := map[string]struct {
		in   ReminderPatch
		want *Reminder
	}{
		"empty": {
			in:   ReminderPatch{},
			want: nil,
		},
		"bad time only": {
			in:   ReminderPatch{Time: Ptr("25:99")},
			want: nil,
		},
		"trimmed id with overlarge lead": {
			in:   ReminderPatch{ReminderID: Ptr(" x "), LeadMinutes: Ptr(1500.0)},
			want: &Reminder{Enabled: true, ReminderID: "x", LeadMinutes: Ptr(1440)},
		},
		"time kept": {
			in:   ReminderPatch{Time: Ptr(" 07:30 ")},
			want: &Reminder{Enabled: true, Time: "07:30"},
		},
		"lead rounded": {
			in:   ReminderPatch{LeadMinutes: Ptr(14.6)},
			want: &Reminder{Enabled: true, LeadMinutes: Ptr(15)},
		},
		"negative lead dropped": {
			in:   ReminderPatch{LeadMinutes: Ptr(-5.0), Time: Ptr("09:00")},
			want: &Reminder{Enabled: true, Time: "09:00"},
		},
		"nan lead dropped": {
			in:   ReminderPatch{LeadMinutes: Ptr(math.NaN())},
			want: nil,
		},
		"explicitly disabled keeps fields": {
			in:   ReminderPatch{Enabled: Ptr(false), Time: Ptr("23:59")},
			want: &Reminder{Enabled: false, Time: "23:59"},
		},
		"explicitly enabled alone": {
			in:   ReminderPatch{Enabled: Ptr(true)},
			want: &Reminder{Enabled: true},
		},
		"explicitly disabled alone": {
			in:   ReminderPatch{Enabled: Ptr(false)},
			want: nil,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := SanitizeReminder(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("SanitizeReminder() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRemindersEqual(t *testing.T) {
	a := &Reminder{Enabled: true, Time: "08:00", LeadMinutes: Ptr(10)}
	b := &Reminder{Enabled: true, Time: "08:00", LeadMinutes: Ptr(10)}
	if !RemindersEqual(a, b) {
		t.Fatalf("expected equal reminders")
	}
	b.LeadMinutes = nil
	if RemindersEqual(a, b) {
		t.Fatalf("lead presence should matter")
	}
	if RemindersEqual(a, nil) || !RemindersEqual(nil, nil) {
		t.Fatalf("nil handling is wrong")
	}
}

func TestReminderPatchMerge(t *testing.T) {
	base := (&Reminder{Enabled: true, ReminderID: "r1", Time: "08:00"}).Patch()
	merged := base.Merge(ReminderPatch{Time: Ptr("09:15")})
	got := SanitizeReminder(merged)
	want := &Reminder{Enabled: true, ReminderID: "r1", Time: "09:15"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge (-want +got):\n%s", diff)
	}
}
