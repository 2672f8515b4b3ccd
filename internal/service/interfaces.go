package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/somnia/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type LogSleepRequest struct {
	SleepTime time.Time `validate:"required"`
	WakeTime  time.Time `validate:"required"`
}

type UserServiceI interface {
	// Validates user's credentials, creates user with a fresh zero-balance
	// profile. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type SleepServiceI interface {
	// Scores the session and records it, crediting the award. Returns the
	// stored log and the balance after the credit
	LogSleep(ctx context.Context, uid uuid.UUID, req *LogSleepRequest) (*entity.SleepLog, int, error)
	// Returns the log submitted today, or ErrLogNotFound
	TodaysLog(ctx context.Context, uid uuid.UUID) (*entity.SleepLog, error)
	// Aggregates the trailing 7-day window. Logs come back in ascending
	// created_at order for charting
	WeeklySummary(ctx context.Context, uid uuid.UUID) (*entity.WeeklyStats, []entity.SleepLog, error)
	// Balance, lifetime totals and the 10 most recent logs
	ProfileSummary(ctx context.Context, uid uuid.UUID) (*entity.ProfileSummary, error)
}

type RewardsServiceI interface {
	ListRewards(ctx context.Context) ([]entity.Reward, error)
	// Exchanges points for the reward. Returns the redemption record and
	// the balance after the debit
	Redeem(ctx context.Context, uid, rewardID uuid.UUID) (*entity.Redemption, int, error)
	RedeemedRewards(ctx context.Context, uid uuid.UUID) ([]entity.RedeemedReward, error)
}
