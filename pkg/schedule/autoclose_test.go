package schedule

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
)

func openSession(t *testing.T, org OrgConfig, userID, locationID primitive.ObjectID) models.Attendance {
	t.Helper()
	return models.Attendance{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		LocationID: locationID,
		Date:       "2026-03-02",
		ClockIn:    mustClock(t, org, "2026-03-02", "09:05"),
	}
}

func shiftEndingAt(t *testing.T, org OrgConfig, userID, locationID primitive.ObjectID, endClock string) EffectiveShift {
	t.Helper()
	return EffectiveShift{
		UserID:     userID,
		LocationID: locationID,
		SeriesID:   "series-senin",
		Date:       "2026-03-02",
		StartsAt:   mustClock(t, org, "2026-03-02", "09:00"),
		EndsAt:     mustClock(t, org, "2026-03-02", endClock),
		Origin:     VirtualOrigin{SeriesID: "series-senin", Date: "2026-03-02"},
	}
}

func locationClosingAt(closeClock string) models.Location {
	var loc models.Location
	// 2026-03-02 adalah Senin (weekday 1).
	loc.OperatingHours[1] = models.OperatingDay{Open: true, OpenTime: "08:00", CloseTime: closeClock}
	return loc
}

func TestDecideAutoCloseShiftEnd(t *testing.T) {
	org := testOrg()
	userID := primitive.NewObjectID()
	locationID := primitive.NewObjectID()

	session := openSession(t, org, userID, locationID)
	shifts := []EffectiveShift{shiftEndingAt(t, org, userID, locationID, "17:00")}
	location := locationClosingAt("18:00")

	t.Run("past shift end closes at shift end", func(t *testing.T) {
		now := mustClock(t, org, "2026-03-02", "17:05")
		decision := DecideAutoClose(session, shifts, location, now, org)
		if decision == nil {
			t.Fatal("expected a closure decision")
		}
		if decision.Reason != models.CloseReasonShiftEnd {
			t.Fatalf("reason = %q, want %q", decision.Reason, models.CloseReasonShiftEnd)
		}
		// Dibayar sampai batas jadwal, bukan sampai saat pengecekan.
		if !decision.ClockOut.Equal(mustClock(t, org, "2026-03-02", "17:00")) {
			t.Fatalf("clock out = %v, want 17:00", decision.ClockOut)
		}
	})

	t.Run("before shift end returns nil", func(t *testing.T) {
		now := mustClock(t, org, "2026-03-02", "16:59")
		if decision := DecideAutoClose(session, shifts, location, now, org); decision != nil {
			t.Fatalf("expected nil decision, got %+v", decision)
		}
	})

	t.Run("shift takes precedence over location close", func(t *testing.T) {
		// Lokasi tutup 18:00, shift selesai 17:00; batasnya jam shift.
		now := mustClock(t, org, "2026-03-02", "17:30")
		decision := DecideAutoClose(session, shifts, location, now, org)
		if decision == nil || decision.Reason != models.CloseReasonShiftEnd {
			t.Fatalf("expected shift-end decision, got %+v", decision)
		}
	})
}

func TestDecideAutoCloseLocationClose(t *testing.T) {
	org := testOrg()
	userID := primitive.NewObjectID()
	locationID := primitive.NewObjectID()

	session := openSession(t, org, userID, locationID)
	location := locationClosingAt("18:00")

	t.Run("past close time without shift", func(t *testing.T) {
		now := mustClock(t, org, "2026-03-02", "18:10")
		decision := DecideAutoClose(session, nil, location, now, org)
		if decision == nil {
			t.Fatal("expected a closure decision")
		}
		if decision.Reason != models.CloseReasonLocationClose {
			t.Fatalf("reason = %q, want %q", decision.Reason, models.CloseReasonLocationClose)
		}
		if !decision.ClockOut.Equal(mustClock(t, org, "2026-03-02", "18:00")) {
			t.Fatalf("clock out = %v, want 18:00", decision.ClockOut)
		}
	})

	t.Run("shift at another location does not govern", func(t *testing.T) {
		otherLocation := primitive.NewObjectID()
		shifts := []EffectiveShift{shiftEndingAt(t, org, userID, otherLocation, "17:00")}
		now := mustClock(t, org, "2026-03-02", "18:10")
		decision := DecideAutoClose(session, shifts, location, now, org)
		if decision == nil || decision.Reason != models.CloseReasonLocationClose {
			t.Fatalf("expected location-close decision, got %+v", decision)
		}
	})
}

func TestDecideAutoCloseStaysOpen(t *testing.T) {
	org := testOrg()
	userID := primitive.NewObjectID()
	locationID := primitive.NewObjectID()
	session := openSession(t, org, userID, locationID)
	now := mustClock(t, org, "2026-03-02", "23:00")

	t.Run("location closed all day", func(t *testing.T) {
		var location models.Location
		if decision := DecideAutoClose(session, nil, location, now, org); decision != nil {
			t.Fatalf("expected nil decision, got %+v", decision)
		}
	})

	t.Run("location without close time", func(t *testing.T) {
		var location models.Location
		location.OperatingHours[1] = models.OperatingDay{Open: true, OpenTime: "08:00"}
		if decision := DecideAutoClose(session, nil, location, now, org); decision != nil {
			t.Fatalf("expected nil decision, got %+v", decision)
		}
	})

	t.Run("already closed session", func(t *testing.T) {
		location := locationClosingAt("18:00")
		out := mustClock(t, org, "2026-03-02", "16:00")
		closed := session
		closed.ClockOut = &out
		if decision := DecideAutoClose(closed, nil, location, now, org); decision != nil {
			t.Fatalf("expected nil decision for closed session, got %+v", decision)
		}
	})
}
