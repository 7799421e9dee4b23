package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment lifecycle statuses.
const (
	AssignmentActive    = "active"
	AssignmentPaused    = "paused"
	AssignmentCompleted = "completed"
)

// Client is a person being coached.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutTemplate is a reusable workout definition a schedule row points at.
type WorkoutTemplate struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Program is a multi-week training program authored by a coach.
type Program struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	DurationWeeks int       `json:"duration_weeks"`
	CreatedAt     time.Time `json:"created_at"`
}

// ScheduleRow is one scheduled training day within a program. WeekNumber and
// DayOfWeek are the raw values the coach chose; neither is required to be
// contiguous (weeks 1, 3, 5 with nothing in between is a valid schedule).
type ScheduleRow struct {
	ID         uuid.UUID `json:"id"`
	ProgramID  uuid.UUID `json:"program_id"`
	WeekNumber int       `json:"week_number"`
	DayOfWeek  int       `json:"day_of_week"`
	TemplateID uuid.UUID `json:"template_id"`
}

// ProgramAssignment binds a program to a client. A client normally has at
// most one active assignment at a time.
type ProgramAssignment struct {
	ID        uuid.UUID `json:"id"`
	ProgramID uuid.UUID `json:"program_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ProgramProgress is the mutable pointer tracking where a client currently is
// within their assigned program. CurrentWeekIndex and CurrentDayIndex are
// zero-based positions within the derived schedule structure, NOT raw
// week_number/day_of_week values.
type ProgramProgress struct {
	ID                  uuid.UUID `json:"id"`
	ProgramAssignmentID uuid.UUID `json:"program_assignment_id"`
	CurrentWeekIndex    int       `json:"current_week_index"`
	CurrentDayIndex     int       `json:"current_day_index"`
	IsCompleted         bool      `json:"is_completed"`
	UpdatedAt           time.Time `json:"updated_at"`
}
