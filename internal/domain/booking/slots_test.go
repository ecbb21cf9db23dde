package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

func testSchedule() models.WeeklySchedule {
	sched := models.WeeklySchedule{}
	for _, day := range weekdayNames {
		sched[day] = models.DaySchedule{IsOff: false, StartTime: "09:00", EndTime: "11:00"}
	}
	sched["Sunday"] = models.DaySchedule{IsOff: true, StartTime: "09:00", EndTime: "11:00"}
	return sched
}

// 2026-03-02 is a Monday, 2026-03-01 a Sunday.
var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
)

func TestGenerateSlotsGrid(t *testing.T) {
	got, err := GenerateSlots("09:00", "11:00", 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlotsLastSlotMustFit(t *testing.T) {
	got, err := GenerateSlots("09:00", "10:45", 30)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	// 10:00+30 fits inside 10:45, 10:30+30 does not.
	want := []string{"09:00", "09:30", "10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlotsInvalidDuration(t *testing.T) {
	if _, err := GenerateSlots("09:00", "11:00", 0); !httperr.IsKind(err, httperr.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
	if _, err := GenerateSlots("09:00", "11:00", -15); !httperr.IsKind(err, httperr.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}

func TestAvailableSlotsOffDay(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)

	got, err := AvailableSlots(testSchedule(), sunday, 30, []string{"09:00", "10:00"}, now)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("off day must yield empty slice, got %v", got)
	}
}

func TestAvailableSlotsBusyFilter(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)

	got, err := AvailableSlots(testSchedule(), monday, 30, []string{"09:30"}, now)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	want := []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestAvailableSlotsNormalizesStoredSeconds(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)

	got, err := AvailableSlots(testSchedule(), monday, 30, []string{"09:30:00"}, now)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	want := []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestAvailableSlotsTodayPastFilter(t *testing.T) {
	// Same calendar day, 10:15: 09:00 and 10:00 are gone, 10:30 remains.
	now := time.Date(2026, 3, 2, 10, 15, 0, 0, time.Local)

	got, err := AvailableSlots(testSchedule(), monday, 30, []string{"09:30"}, now)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	want := []string{"10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestAvailableSlotsSlotStartingNowIsPast(t *testing.T) {
	// Strictly-greater comparison: a slot at exactly "now" is not bookable.
	now := time.Date(2026, 3, 2, 10, 30, 0, 0, time.Local)

	got, err := AvailableSlots(testSchedule(), monday, 30, nil, now)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("slots = %v, want none", got)
	}
}

func TestAvailableSlotsMissingDayEntry(t *testing.T) {
	sched := testSchedule()
	delete(sched, "Monday")

	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	_, err := AvailableSlots(sched, monday, 30, nil, now)
	if !httperr.IsKind(err, httperr.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}

func TestAvailableSlotsNilSchedule(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	_, err := AvailableSlots(nil, monday, 30, nil, now)
	if !httperr.IsKind(err, httperr.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}
