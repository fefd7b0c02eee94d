package schedule

import (
	"testing"
	"time"

	_ "time/tzdata"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/timeutil"
)

func testOrg() OrgConfig {
	return OrgConfig{Loc: timeutil.ResolveTimezone("WIB")}
}

func mondayTemplate() models.ShiftTemplate {
	return models.ShiftTemplate{
		ID:            primitive.NewObjectID(),
		SeriesID:      "series-senin",
		UserID:        primitive.NewObjectID(),
		LocationID:    primitive.NewObjectID(),
		Weekday:       1, // Senin
		StartTime:     "09:00",
		EndTime:       "17:00",
		EffectiveFrom: "2026-03-01",
	}
}

func TestExpandWeekdayAndCount(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()

	// Maret 2026: Senin jatuh pada tanggal 2, 9, 16, 23, 30.
	occ, err := Expand(tpl, "2026-03-01", "2026-03-31", org)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(occ) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(occ))
	}

	wantDates := []string{"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23", "2026-03-30"}
	for i, o := range occ {
		if o.Date != wantDates[i] {
			t.Fatalf("occurrence %d date = %s, want %s", i, o.Date, wantDates[i])
		}
		if o.StartsAt.In(org.Loc).Weekday() != time.Monday {
			t.Fatalf("occurrence %d not on Monday: %v", i, o.StartsAt)
		}
		if o.StartsAt.In(org.Loc).Format("15:04") != "09:00" {
			t.Fatalf("occurrence %d start clock = %s", i, o.StartsAt.In(org.Loc).Format("15:04"))
		}
		if !o.IsVirtual() {
			t.Fatalf("occurrence %d should be virtual", i)
		}
		if o.SeriesID != tpl.SeriesID {
			t.Fatalf("occurrence %d series = %s, want %s", i, o.SeriesID, tpl.SeriesID)
		}
	}
}

func TestExpandValidityBounds(t *testing.T) {
	org := testOrg()

	t.Run("effective from trims leading dates", func(t *testing.T) {
		tpl := mondayTemplate()
		tpl.EffectiveFrom = "2026-03-10"
		occ, err := Expand(tpl, "2026-03-01", "2026-03-31", org)
		if err != nil {
			t.Fatalf("expand: %v", err)
		}
		if len(occ) != 3 {
			t.Fatalf("expected 3 occurrences, got %d", len(occ))
		}
		if occ[0].Date != "2026-03-16" {
			t.Fatalf("first occurrence = %s, want 2026-03-16", occ[0].Date)
		}
	})

	t.Run("effective until is inclusive", func(t *testing.T) {
		tpl := mondayTemplate()
		tpl.EffectiveUntil = "2026-03-16"
		occ, err := Expand(tpl, "2026-03-01", "2026-03-31", org)
		if err != nil {
			t.Fatalf("expand: %v", err)
		}
		if len(occ) != 3 {
			t.Fatalf("expected 3 occurrences, got %d", len(occ))
		}
		if occ[len(occ)-1].Date != "2026-03-16" {
			t.Fatalf("last occurrence = %s, want 2026-03-16", occ[len(occ)-1].Date)
		}
	})

	t.Run("window outside validity is empty", func(t *testing.T) {
		tpl := mondayTemplate()
		tpl.EffectiveUntil = "2026-03-16"
		occ, err := Expand(tpl, "2026-04-01", "2026-04-30", org)
		if err != nil {
			t.Fatalf("expand: %v", err)
		}
		if len(occ) != 0 {
			t.Fatalf("expected no occurrences, got %d", len(occ))
		}
	})
}

func TestExpandRejectsInvalidTemplate(t *testing.T) {
	org := testOrg()

	t.Run("invalid weekday", func(t *testing.T) {
		tpl := mondayTemplate()
		tpl.Weekday = 7
		if _, err := Expand(tpl, "2026-03-01", "2026-03-31", org); err == nil {
			t.Fatal("expected error for weekday 7")
		}
	})

	t.Run("end before start", func(t *testing.T) {
		tpl := mondayTemplate()
		tpl.StartTime = "17:00"
		tpl.EndTime = "09:00"
		if _, err := Expand(tpl, "2026-03-01", "2026-03-31", org); err == nil {
			t.Fatal("expected error for end before start")
		}
	})

	t.Run("malformed effective from", func(t *testing.T) {
		tpl := mondayTemplate()
		tpl.EffectiveFrom = "01-03-2026"
		if _, err := Expand(tpl, "2026-03-01", "2026-03-31", org); err == nil {
			t.Fatal("expected error for malformed effective_from")
		}
	})
}
