package service

import (
	"cinema_scheduler/model"
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := at(2030, 1, 1, 20, 0)
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"same interval", base, base.Add(2 * time.Hour), base, base.Add(2 * time.Hour), true},
		{"starts inside", base.Add(time.Hour), base.Add(3 * time.Hour), base, base.Add(2 * time.Hour), true},
		{"contains", base.Add(-time.Hour), base.Add(3 * time.Hour), base, base.Add(2 * time.Hour), true},
		{"touches end", base.Add(2 * time.Hour), base.Add(4 * time.Hour), base, base.Add(2 * time.Hour), false},
		{"touches start", base.Add(-2 * time.Hour), base, base, base.Add(2 * time.Hour), false},
		{"disjoint", base.Add(5 * time.Hour), base.Add(6 * time.Hour), base, base.Add(2 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConflictDetectorPersistedAndExcluded(t *testing.T) {
	f := newFixture(at(2030, 1, 1, 8, 0))
	theater := f.addTheater(t, "Centro", 2)
	long := f.addMovie(t, "Longo", 600, at(2029, 12, 1, 0, 0), 10)
	existing := f.addSession(t, long, theater, 1, at(2030, 1, 1, 10, 0))

	d := NewConflictDetector(f.store)

	// A 600 minute session started ten hours earlier ends exactly at 20:00.
	busy, err := d.HasConflict(f.ctx, theater.ID, 1, at(2030, 1, 1, 19, 59), 60, 0)
	if err != nil || !busy {
		t.Fatalf("19:59 should collide with the long session: busy=%v err=%v", busy, err)
	}
	busy, _ = d.HasConflict(f.ctx, theater.ID, 1, at(2030, 1, 1, 20, 0), 60, 0)
	if busy {
		t.Fatal("20:00 should be free")
	}
	busy, _ = d.HasConflict(f.ctx, theater.ID, 2, at(2030, 1, 1, 12, 0), 60, 0)
	if busy {
		t.Fatal("another room is never a conflict")
	}
	busy, _ = d.HasConflict(f.ctx, theater.ID, 1, at(2030, 1, 1, 12, 0), 60, existing.ID)
	if busy {
		t.Fatal("a session must not conflict with itself")
	}
	conflict, _ := d.FindConflict(f.ctx, theater.ID, 1, at(2030, 1, 1, 12, 0), 60, 0)
	if conflict == nil || conflict.ID != existing.ID || conflict.Movie == nil || conflict.Movie.Title != "Longo" {
		t.Fatalf("FindConflict = %+v", conflict)
	}
}

func TestConflictDetectorSeesPendingSessions(t *testing.T) {
	f := newFixture(at(2030, 1, 1, 8, 0))
	theater := f.addTheater(t, "Centro", 1)
	movie := f.addMovie(t, "Curto", 90, at(2029, 12, 1, 0, 0), 10)

	d := NewConflictDetector(f.store)
	d.Stage(&model.Session{MovieId: movie.ID, TheaterId: theater.ID, Room: 1, StartTime: at(2030, 1, 2, 14, 0), Movie: movie})

	busy, err := d.HasConflict(f.ctx, theater.ID, 1, at(2030, 1, 2, 15, 0), 90, 0)
	if err != nil || !busy {
		t.Fatalf("pending session not considered: busy=%v err=%v", busy, err)
	}
	showing, _ := d.Showing(f.ctx, theater.ID, movie.ID, at(2030, 1, 2, 14, 0))
	if !showing {
		t.Fatal("Showing should see the staged session")
	}
	if len(d.Pending()) != 1 {
		t.Fatalf("Pending = %d, want 1", len(d.Pending()))
	}
}
