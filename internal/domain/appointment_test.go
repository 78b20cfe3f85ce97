package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentPending, AppointmentConfirmed, true},
		{AppointmentPending, AppointmentCancelled, true},
		{AppointmentPending, AppointmentCompleted, false},
		{AppointmentPending, AppointmentPending, false},
		{AppointmentConfirmed, AppointmentCompleted, true},
		{AppointmentConfirmed, AppointmentCancelled, true},
		{AppointmentConfirmed, AppointmentPending, false},
		{AppointmentCompleted, AppointmentCancelled, false},
		{AppointmentCompleted, AppointmentConfirmed, false},
		{AppointmentCancelled, AppointmentPending, false},
		{AppointmentCancelled, AppointmentConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Fatalf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAppointmentStatusOccupying(t *testing.T) {
	occupying := map[AppointmentStatus]bool{
		AppointmentPending:   true,
		AppointmentConfirmed: true,
		AppointmentCompleted: false,
		AppointmentCancelled: false,
	}
	for status, want := range occupying {
		if got := status.Occupying(); got != want {
			t.Fatalf("%s.Occupying() = %v, want %v", status, got, want)
		}
	}

	if got := len(OccupyingStatuses()); got != 2 {
		t.Fatalf("len(OccupyingStatuses()) = %d, want 2", got)
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, status := range []AppointmentStatus{AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled} {
		if !status.Valid() {
			t.Fatalf("%s must be valid", status)
		}
	}
	if AppointmentStatus("archived").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestAppointmentBusyCarriesID(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000042")
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	a := Appointment{ID: id, StartTime: start, EndTime: start.Add(30 * time.Minute)}

	busy := a.Busy()
	if busy.AppointmentID != id {
		t.Fatalf("busy id = %s, want %s", busy.AppointmentID, id)
	}
	if !busy.Start.Equal(start) || !busy.End.Equal(start.Add(30*time.Minute)) {
		t.Fatalf("busy interval = [%v, %v), want [%v, %v)", busy.Start, busy.End, start, start.Add(30*time.Minute))
	}
}
