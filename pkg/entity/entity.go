package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

// Profile holds the user's point balance. Mutated only through the
// profiles repository credit/debit operations.
type Profile struct {
	UserID      uuid.UUID `json:"uid"`
	TotalPoints int       `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
}

type SleepLog struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"uid"`
	SleepTime     time.Time `json:"sleep_time"`
	WakeTime      time.Time `json:"wake_time"`
	DurationHours float64   `json:"duration_hours"`
	PointsEarned  int       `json:"points_earned"`
	// LogDate is the calendar day the log was submitted on. One log
	// per (user, LogDate) is enforced by the database.
	LogDate   time.Time `json:"log_date"`
	CreatedAt time.Time `json:"created_at"`
}

type Reward struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"desc"`
	Icon        string    `json:"icon"`
	PointsCost  int       `json:"points_cost"`
}

type Redemption struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"uid"`
	RewardID   uuid.UUID `json:"reward_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// RedeemedReward is a redemption joined with its reward details for
// history listings.
type RedeemedReward struct {
	ID         uuid.UUID `json:"id"`
	RewardID   uuid.UUID `json:"reward_id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	PointsCost int       `json:"points_cost"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

type WeeklyStats struct {
	AverageDuration float64 `json:"avg_duration"`
	BestDay         string  `json:"best_day,omitempty"`
	BestDuration    float64 `json:"best_duration"`
	TotalPoints     int     `json:"total_points"`
}

type ProfileSummary struct {
	TotalPoints int        `json:"total_points"`
	TotalLogs   int        `json:"total_logs"`
	TotalHours  float64    `json:"total_hours"`
	RecentLogs  []SleepLog `json:"recent_logs"`
}
