package internal

import "time"

type AssessmentStatus string

const (
	StatusInProgress AssessmentStatus = "IN_PROGRESS"
	StatusCompleted  AssessmentStatus = "COMPLETED"
)

// AnswerField identifies the single assessment column an update targets.
type AnswerField string

const (
	FieldSleepStruggle AnswerField = "sleep_struggle_duration"
	FieldBedTime       AnswerField = "bed_time"
	FieldWakeTime      AnswerField = "wake_time"
	FieldSleepHours    AnswerField = "sleep_hours"
)

// SleepStruggleDurations are the accepted answers for the first step.
var SleepStruggleDurations = map[string]bool{
	"less_than_month":    true,
	"1_3_months":         true,
	"3_6_months":         true,
	"more_than_6_months": true,
}

type User struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Assessment is one onboarding attempt. Answer fields stay nil until the
// matching step has been submitted; Score is set only on completion.
type Assessment struct {
	ID                    string           `json:"id"`
	UserID                string           `json:"userId"`
	SleepStruggleDuration *string          `json:"sleepStruggleDuration,omitempty"`
	BedTime               *string          `json:"bedTime,omitempty"`
	WakeTime              *string          `json:"wakeTime,omitempty"`
	SleepHours            *int             `json:"sleepHours,omitempty"`
	Score                 *int             `json:"score,omitempty"`
	Status                AssessmentStatus `json:"status"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
