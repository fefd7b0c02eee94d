package schedule

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
	"Sistem-Absensi-Shift/pkg/timeutil"
)

func overrideOn(tpl models.ShiftTemplate, date, startClock, endClock string, org OrgConfig) models.ShiftInstance {
	startsAt, _ := timeutil.CombineDateTime(date, startClock, org.Loc)
	endsAt, _ := timeutil.CombineDateTime(date, endClock, org.Loc)
	return models.ShiftInstance{
		ID:         primitive.NewObjectID(),
		SeriesID:   tpl.SeriesID,
		UserID:     tpl.UserID,
		LocationID: tpl.LocationID,
		Date:       date,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		UpdatedAt:  time.Now(),
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	override := overrideOn(tpl, "2026-03-09", "12:00", "20:00", org)

	resolved, err := Resolve([]models.ShiftTemplate{tpl}, []models.ShiftInstance{override}, "2026-03-01", "2026-03-31", org)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != 5 {
		t.Fatalf("expected 5 shifts, got %d", len(resolved))
	}

	var target *EffectiveShift
	for i := range resolved {
		if resolved[i].Date == "2026-03-09" {
			target = &resolved[i]
		} else if !resolved[i].IsVirtual() {
			t.Fatalf("date %s should stay virtual", resolved[i].Date)
		}
	}
	if target == nil {
		t.Fatal("missing shift for 2026-03-09")
	}
	if target.IsVirtual() {
		t.Fatal("overridden date must not be virtual")
	}
	if target.StartsAt.In(org.Loc).Format("15:04") != "12:00" {
		t.Fatalf("override start not applied: %v", target.StartsAt)
	}
	origin, ok := target.Origin.(PersistedOrigin)
	if !ok {
		t.Fatalf("expected PersistedOrigin, got %T", target.Origin)
	}
	if origin.InstanceID != override.ID {
		t.Fatal("origin must reference the override document")
	}
}

func TestResolveIdempotence(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	instances := []models.ShiftInstance{
		overrideOn(tpl, "2026-03-09", "12:00", "20:00", org),
		{
			ID:         primitive.NewObjectID(),
			UserID:     tpl.UserID,
			LocationID: tpl.LocationID,
			Date:       "2026-03-05",
			StartsAt:   mustClock(t, org, "2026-03-05", "10:00"),
			EndsAt:     mustClock(t, org, "2026-03-05", "14:00"),
		},
	}

	first, err := Resolve([]models.ShiftTemplate{tpl}, instances, "2026-03-01", "2026-03-31", org)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := Resolve([]models.ShiftTemplate{tpl}, instances, "2026-03-01", "2026-03-31", org)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical output")
	}
}

func TestResolveDuplicateOverrideTieBreak(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()

	older := overrideOn(tpl, "2026-03-09", "10:00", "18:00", org)
	older.UpdatedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	newer := overrideOn(tpl, "2026-03-09", "13:00", "21:00", org)
	newer.UpdatedAt = time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)

	// Urutan input tidak boleh memengaruhi pemenang.
	for _, instances := range [][]models.ShiftInstance{
		{older, newer},
		{newer, older},
	} {
		resolved, err := Resolve([]models.ShiftTemplate{tpl}, instances, "2026-03-09", "2026-03-09", org)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if len(resolved) != 1 {
			t.Fatalf("expected 1 shift, got %d", len(resolved))
		}
		origin, ok := resolved[0].Origin.(PersistedOrigin)
		if !ok {
			t.Fatalf("expected PersistedOrigin, got %T", resolved[0].Origin)
		}
		if origin.InstanceID != newer.ID {
			t.Fatal("most recently updated override must win")
		}
	}
}

func TestResolveTombstoneRemovesDate(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	tombstone := overrideOn(tpl, "2026-03-09", "09:00", "17:00", org)
	tombstone.Excluded = true

	resolved, err := Resolve([]models.ShiftTemplate{tpl}, []models.ShiftInstance{tombstone}, "2026-03-01", "2026-03-31", org)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != 4 {
		t.Fatalf("expected 4 shifts after tombstone, got %d", len(resolved))
	}
	for _, s := range resolved {
		if s.Date == "2026-03-09" {
			t.Fatal("tombstoned date must not appear")
		}
	}
}

func TestResolveOrphanOverrideStillRendered(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	orphan := overrideOn(tpl, "2026-04-06", "09:00", "17:00", org)

	// Template sudah diakhiri sebelum tanggal override; dokumen tersimpan
	// tetap tampil.
	tpl.EffectiveUntil = "2026-03-16"
	resolved, err := Resolve([]models.ShiftTemplate{tpl}, []models.ShiftInstance{orphan}, "2026-04-01", "2026-04-30", org)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(resolved))
	}
	if resolved[0].Date != "2026-04-06" || resolved[0].IsVirtual() {
		t.Fatalf("orphan override not rendered: %+v", resolved[0])
	}
}

func TestResolveOneOffs(t *testing.T) {
	org := testOrg()
	oneOff := models.ShiftInstance{
		ID:         primitive.NewObjectID(),
		UserID:     primitive.NewObjectID(),
		LocationID: primitive.NewObjectID(),
		Date:       "2026-03-05",
		StartsAt:   mustClock(t, org, "2026-03-05", "10:00"),
		EndsAt:     mustClock(t, org, "2026-03-05", "14:00"),
	}
	excludedOneOff := oneOff
	excludedOneOff.ID = primitive.NewObjectID()
	excludedOneOff.Date = "2026-03-06"
	excludedOneOff.Excluded = true

	resolved, err := Resolve(nil, []models.ShiftInstance{oneOff, excludedOneOff}, "2026-03-01", "2026-03-31", org)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(resolved))
	}
	if resolved[0].SeriesID != "" {
		t.Fatalf("one-off must have empty series id, got %q", resolved[0].SeriesID)
	}
}

func mustClock(t *testing.T, org OrgConfig, date, clock string) time.Time {
	t.Helper()
	at, err := timeutil.CombineDateTime(date, clock, org.Loc)
	if err != nil {
		t.Fatalf("combine %s %s: %v", date, clock, err)
	}
	return at
}
