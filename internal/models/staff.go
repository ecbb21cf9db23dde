package models

import "time"

// DaySchedule is one weekday's working-hours entry. Times are "HH:mm".
type DaySchedule struct {
	IsOff     bool   `json:"isOff"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WeeklySchedule maps weekday names (Sunday..Saturday) to the day's entry.
// Every one of the 7 keys must be present.
type WeeklySchedule map[string]DaySchedule

func DefaultWeeklySchedule() WeeklySchedule {
	sched := WeeklySchedule{}
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		sched[day] = DaySchedule{IsOff: false, StartTime: "09:00", EndTime: "17:00"}
	}
	sched["Sunday"] = DaySchedule{IsOff: true, StartTime: "09:00", EndTime: "17:00"}
	return sched
}

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Specialty string `gorm:"size:100" json:"specialty"`
	Bio       string `gorm:"type:text" json:"bio"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`

	WeeklySchedule WeeklySchedule `gorm:"serializer:json" json:"weekly_schedule"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
