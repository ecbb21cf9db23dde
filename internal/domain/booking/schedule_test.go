package booking

import (
	"testing"

	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/models"
)

func TestValidateWeeklyScheduleDefault(t *testing.T) {
	if err := ValidateWeeklySchedule(models.DefaultWeeklySchedule()); err != nil {
		t.Fatalf("default schedule must validate: %v", err)
	}
}

func TestValidateWeeklySchedule(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(models.WeeklySchedule)
		code   string
	}{
		{
			name:   "missing day",
			mutate: func(s models.WeeklySchedule) { delete(s, "Wednesday") },
			code:   "schedule_day_missing",
		},
		{
			name: "start after end",
			mutate: func(s models.WeeklySchedule) {
				s["Monday"] = models.DaySchedule{StartTime: "18:00", EndTime: "09:00"}
			},
			code: "start_after_end",
		},
		{
			name: "start equals end",
			mutate: func(s models.WeeklySchedule) {
				s["Monday"] = models.DaySchedule{StartTime: "09:00", EndTime: "09:00"}
			},
			code: "start_after_end",
		},
		{
			name: "garbage time",
			mutate: func(s models.WeeklySchedule) {
				s["Friday"] = models.DaySchedule{StartTime: "morning", EndTime: "17:00"}
			},
			code: "invalid_start_time",
		},
		{
			name: "off day skips time checks",
			mutate: func(s models.WeeklySchedule) {
				s["Saturday"] = models.DaySchedule{IsOff: true}
			},
			code: "",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			sched := models.DefaultWeeklySchedule()
			tt.mutate(sched)

			err := ValidateWeeklySchedule(sched)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("want ok, got %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("want %q, got %v", tt.code, err)
			}
		})
	}
}

func TestValidateWeeklyScheduleNil(t *testing.T) {
	if err := ValidateWeeklySchedule(nil); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestScheduleForWeekday(t *testing.T) {
	sched := models.DefaultWeeklySchedule()

	entry, err := ScheduleFor(sched, sunday)
	if err != nil {
		t.Fatalf("ScheduleFor: %v", err)
	}
	if !entry.IsOff {
		t.Fatal("default Sunday should be off")
	}

	entry, err = ScheduleFor(sched, monday)
	if err != nil {
		t.Fatalf("ScheduleFor: %v", err)
	}
	if entry.IsOff || entry.StartTime != "09:00" {
		t.Fatalf("unexpected Monday entry: %+v", entry)
	}
}
