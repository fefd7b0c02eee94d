package schedule

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
)

// Lima occurrence Senin yang semuanya sudah dimaterialisasi jadi instance.
func materializedSeries(t *testing.T, org OrgConfig) (models.ShiftTemplate, []models.ShiftInstance) {
	t.Helper()
	tpl := mondayTemplate()
	dates := []string{"2026-03-02", "2026-03-09", "2026-03-16", "2026-03-23", "2026-03-30"}
	var instances []models.ShiftInstance
	for _, date := range dates {
		instances = append(instances, overrideOn(tpl, date, "09:00", "17:00", org))
	}
	return tpl, instances
}

func targetFor(t *testing.T, org OrgConfig, tpl models.ShiftTemplate, instances []models.ShiftInstance, date string) EffectiveShift {
	t.Helper()
	resolved, err := Resolve([]models.ShiftTemplate{tpl}, instances, date, date, org)
	if err != nil {
		t.Fatalf("resolve target: %v", err)
	}
	for _, s := range resolved {
		if s.SeriesID == tpl.SeriesID && s.Date == date {
			return s
		}
	}
	t.Fatalf("no occurrence for %s", date)
	return EffectiveShift{}
}

func TestPlanEditFutureFromThirdDate(t *testing.T) {
	org := testOrg()
	tpl, instances := materializedSeries(t, org)
	target := targetFor(t, org, tpl, instances, "2026-03-16")

	plan, err := PlanEdit(target, ScopeFuture, "10:00", "18:00", instances, org)
	if err != nil {
		t.Fatalf("plan edit: %v", err)
	}
	if len(plan.Inserts) != 0 || len(plan.DeleteIDs) != 0 {
		t.Fatalf("future edit must only update, got %+v", plan)
	}
	if len(plan.Updates) != 3 {
		t.Fatalf("expected updates for dates 3-5, got %d", len(plan.Updates))
	}

	updated := map[primitive.ObjectID]InstanceTimeUpdate{}
	for _, u := range plan.Updates {
		updated[u.ID] = u
	}
	for i, inst := range instances {
		u, ok := updated[inst.ID]
		if i < 2 {
			if ok {
				t.Fatalf("date %s must be untouched", inst.Date)
			}
			continue
		}
		if !ok {
			t.Fatalf("date %s missing from plan", inst.Date)
		}
		// Jam dinding baru diterapkan pada tanggal instance itu sendiri.
		if u.StartsAt.In(org.Loc).Format("2006-01-02 15:04") != inst.Date+" 10:00" {
			t.Fatalf("date %s start = %v", inst.Date, u.StartsAt)
		}
		if u.EndsAt.In(org.Loc).Format("2006-01-02 15:04") != inst.Date+" 18:00" {
			t.Fatalf("date %s end = %v", inst.Date, u.EndsAt)
		}
	}
}

func TestPlanEditAllIgnoresDateLowerBound(t *testing.T) {
	org := testOrg()
	tpl, instances := materializedSeries(t, org)
	target := targetFor(t, org, tpl, instances, "2026-03-16")

	plan, err := PlanEdit(target, ScopeAll, "10:00", "18:00", instances, org)
	if err != nil {
		t.Fatalf("plan edit: %v", err)
	}
	if len(plan.Updates) != 5 {
		t.Fatalf("expected updates for all 5 dates, got %d", len(plan.Updates))
	}
}

func TestPlanEditThisMaterializesVirtual(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	target := targetFor(t, org, tpl, nil, "2026-03-16")
	if !target.IsVirtual() {
		t.Fatal("precondition: target must be virtual")
	}

	plan, err := PlanEdit(target, ScopeThis, "10:00", "18:00", nil, org)
	if err != nil {
		t.Fatalf("plan edit: %v", err)
	}
	if len(plan.Updates) != 0 || len(plan.DeleteIDs) != 0 {
		t.Fatalf("this-edit of virtual must only insert, got %+v", plan)
	}
	if len(plan.Inserts) != 1 {
		t.Fatalf("expected exactly one materialized override, got %d", len(plan.Inserts))
	}

	inst := plan.Inserts[0]
	if inst.SeriesID != tpl.SeriesID {
		t.Fatalf("materialized override series = %q", inst.SeriesID)
	}
	if inst.Date != "2026-03-16" {
		t.Fatalf("materialized override date = %q", inst.Date)
	}
	if inst.StartsAt.In(org.Loc).Format("15:04") != "10:00" {
		t.Fatalf("materialized override start = %v", inst.StartsAt)
	}
	if inst.Excluded {
		t.Fatal("materialized override must not be a tombstone")
	}
}

func TestPlanEditThisUpdatesPersisted(t *testing.T) {
	org := testOrg()
	tpl, instances := materializedSeries(t, org)
	target := targetFor(t, org, tpl, instances, "2026-03-16")

	plan, err := PlanEdit(target, ScopeThis, "10:00", "18:00", instances, org)
	if err != nil {
		t.Fatalf("plan edit: %v", err)
	}
	if len(plan.Inserts) != 0 || len(plan.DeleteIDs) != 0 || len(plan.Updates) != 1 {
		t.Fatalf("this-edit of persisted must be a single update, got %+v", plan)
	}
	if plan.Updates[0].ID != instances[2].ID {
		t.Fatal("update must target the persisted override")
	}
}

func TestPlanEditValidation(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	target := targetFor(t, org, tpl, nil, "2026-03-16")

	if _, err := PlanEdit(target, ScopeThis, "18:00", "10:00", nil, org); err == nil {
		t.Fatal("expected error for end before start")
	}
	if _, err := PlanEdit(target, "minggu-ini", "10:00", "18:00", nil, org); err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestPlanDeleteThisVirtualCreatesTombstone(t *testing.T) {
	org := testOrg()
	tpl := mondayTemplate()
	target := targetFor(t, org, tpl, nil, "2026-03-16")

	plan, err := PlanDelete(target, ScopeThis, nil)
	if err != nil {
		t.Fatalf("plan delete: %v", err)
	}
	if len(plan.DeleteIDs) != 0 || len(plan.Updates) != 0 || len(plan.Inserts) != 1 {
		t.Fatalf("this-delete of virtual must insert a tombstone, got %+v", plan)
	}
	tomb := plan.Inserts[0]
	if !tomb.Excluded {
		t.Fatal("tombstone must be excluded")
	}
	if tomb.SeriesID != tpl.SeriesID || tomb.Date != "2026-03-16" {
		t.Fatalf("tombstone keyed wrong: %+v", tomb)
	}
}

func TestPlanDeleteThisPersisted(t *testing.T) {
	org := testOrg()
	tpl, instances := materializedSeries(t, org)
	target := targetFor(t, org, tpl, instances, "2026-03-16")

	plan, err := PlanDelete(target, ScopeThis, instances)
	if err != nil {
		t.Fatalf("plan delete: %v", err)
	}
	if len(plan.Inserts) != 0 || len(plan.Updates) != 0 || len(plan.DeleteIDs) != 1 {
		t.Fatalf("this-delete of persisted must be a single delete, got %+v", plan)
	}
	if plan.DeleteIDs[0] != instances[2].ID {
		t.Fatal("delete must target the persisted override")
	}
}

func TestPlanDeleteFutureSkipsTombstones(t *testing.T) {
	org := testOrg()
	tpl, instances := materializedSeries(t, org)
	// Tanggal ke-4 sudah tombstone; menghapus dokumennya justru
	// menghidupkan kembali occurrence virtualnya.
	instances[3].Excluded = true
	target := targetFor(t, org, tpl, instances, "2026-03-16")

	plan, err := PlanDelete(target, ScopeFuture, instances)
	if err != nil {
		t.Fatalf("plan delete: %v", err)
	}
	if len(plan.DeleteIDs) != 2 {
		t.Fatalf("expected deletes for dates 3 and 5, got %d", len(plan.DeleteIDs))
	}
	for _, id := range plan.DeleteIDs {
		if id == instances[3].ID {
			t.Fatal("tombstone must survive a future-delete")
		}
	}
}
