package payroll

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Shift/models"
)

func closedSession(userID primitive.ObjectID, date string, clockIn time.Time, minutes int) models.Attendance {
	out := clockIn.Add(time.Duration(minutes) * time.Minute)
	return models.Attendance{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		Date:     date,
		ClockIn:  clockIn,
		ClockOut: &out,
	}
}

func TestAggregatePayMath(t *testing.T) {
	userID := primitive.NewObjectID()
	clockIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	sessions := []models.Attendance{
		closedSession(userID, "2026-03-02", clockIn, 52),
		closedSession(userID, "2026-03-03", clockIn.AddDate(0, 0, 1), 56),
	}
	settings := models.PayrollSettings{RoundingInterval: 15, RoundingBuffer: 5}
	rates := map[string]float64{userID.Hex(): 30000}
	names := map[string]string{userID.Hex(): "Budi Santoso"}

	totals := Aggregate(sessions, settings, rates, names, clockIn.AddDate(0, 0, 7), false)
	if len(totals) != 1 {
		t.Fatalf("expected 1 total, got %d", len(totals))
	}
	got := totals[0]
	if got.Sessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", got.Sessions)
	}
	if got.RawMinutes != 108 {
		t.Fatalf("expected 108 raw minutes, got %d", got.RawMinutes)
	}
	// 52 -> 45, 56 -> 60
	if got.RoundedMinutes != 105 {
		t.Fatalf("expected 105 rounded minutes, got %d", got.RoundedMinutes)
	}
	wantPay := 105.0 / 60.0 * 30000
	if got.Pay != wantPay {
		t.Fatalf("expected pay %.2f, got %.2f", wantPay, got.Pay)
	}
	if got.UserName != "Budi Santoso" {
		t.Fatalf("expected user name from map, got %q", got.UserName)
	}
	if got.RoundedLabel != "1h 45m" {
		t.Fatalf("expected label 1h 45m, got %q", got.RoundedLabel)
	}
	if got.HasOpenSession {
		t.Fatal("expected no open session flag")
	}
}

func TestAggregateDoublePunchExcluded(t *testing.T) {
	userID := primitive.NewObjectID()
	clockIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	sessions := []models.Attendance{
		closedSession(userID, "2026-03-02", clockIn, 0),
		closedSession(userID, "2026-03-02", clockIn.Add(time.Hour), 120),
	}
	totals := Aggregate(sessions, models.PayrollSettings{}, nil, nil, clockIn, false)
	if len(totals) != 1 {
		t.Fatalf("expected 1 total, got %d", len(totals))
	}
	if totals[0].Sessions != 1 {
		t.Fatalf("double-punch should be excluded, got %d sessions", totals[0].Sessions)
	}
	if totals[0].RawMinutes != 120 {
		t.Fatalf("expected 120 raw minutes, got %d", totals[0].RawMinutes)
	}
}

func TestAggregateOpenSessions(t *testing.T) {
	userID := primitive.NewObjectID()
	clockIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	now := clockIn.Add(90 * time.Minute)

	open := models.Attendance{
		ID:      primitive.NewObjectID(),
		UserID:  userID,
		Date:    "2026-03-02",
		ClockIn: clockIn,
	}

	t.Run("included for live totals", func(t *testing.T) {
		totals := Aggregate([]models.Attendance{open}, models.PayrollSettings{}, nil, nil, now, true)
		if len(totals) != 1 {
			t.Fatalf("expected 1 total, got %d", len(totals))
		}
		if totals[0].RawMinutes != 90 {
			t.Fatalf("expected 90 live minutes, got %d", totals[0].RawMinutes)
		}
		if !totals[0].HasOpenSession {
			t.Fatal("expected open session flag")
		}
	})

	t.Run("excluded from finalized export", func(t *testing.T) {
		totals := Aggregate([]models.Attendance{open}, models.PayrollSettings{}, nil, nil, now, false)
		if len(totals) != 0 {
			t.Fatalf("expected no totals, got %d", len(totals))
		}
	})
}

func TestAggregateDeterministicOrder(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	clockIn := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	sessions := []models.Attendance{
		closedSession(b, "2026-03-02", clockIn, 60),
		closedSession(a, "2026-03-02", clockIn, 60),
	}
	totals := Aggregate(sessions, models.PayrollSettings{}, nil, nil, clockIn, false)
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(totals))
	}
	if totals[0].UserID > totals[1].UserID {
		t.Fatalf("totals not sorted by user id: %s > %s", totals[0].UserID, totals[1].UserID)
	}
}
