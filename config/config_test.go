package config

import (
	"testing"
	"time"
)

func TestTypedHelpersFallBackToDefaults(t *testing.T) {
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_BAD_INT", "forty")
	t.Setenv("CFG_DUR", "90s")
	t.Setenv("CFG_BOOL", "yes")

	if got := Int("CFG_INT", 1); got != 42 {
		t.Fatalf("Int = %d, want 42", got)
	}
	if got := Int("CFG_BAD_INT", 7); got != 7 {
		t.Fatalf("Int with garbage = %d, want default 7", got)
	}
	if got := Duration("CFG_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration = %v", got)
	}
	if !Bool("CFG_BOOL", false) {
		t.Fatal("Bool(yes) should be true")
	}
	if got := String("CFG_MISSING", "x"); got != "x" {
		t.Fatalf("String default = %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCHEDULE_DAYS", "")
	t.Setenv("GRACE_PERIOD", "")
	s := Load()
	if s.ScheduleDays != 8 {
		t.Fatalf("ScheduleDays = %d, want 8", s.ScheduleDays)
	}
	if s.GracePeriod != 20*time.Minute {
		t.Fatalf("GracePeriod = %v, want 20m", s.GracePeriod)
	}
	if s.ScheduleWindowMonths != 2 {
		t.Fatalf("ScheduleWindowMonths = %d, want 2", s.ScheduleWindowMonths)
	}
}
