package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/somnolab/somnia/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates user together with a zero-balance profile. Returns new user's id
	Create(ctx context.Context, user *entity.User) (uuid.UUID, error)
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
}

type ProfilesRepositoryI interface {
	// Returns user's profile with current balance
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Atomically adds points (>= 0) to user's balance
	AddPoints(ctx context.Context, uid uuid.UUID, points int) error
	// Atomically subtracts points if balance is sufficient,
	// otherwise returns ErrInsufficientPoints without changes
	SpendPoints(ctx context.Context, uid uuid.UUID, points int) error
}

type SleepLogsRepositoryI interface {
	// Inserts a log and credits its points to the user's profile in one
	// transaction. Fills ID and CreatedAt on success. A second log on the
	// same LogDate returns ErrLogExistsToday
	Create(ctx context.Context, log *entity.SleepLog) error
	// Returns the log submitted on the given calendar day
	GetByUserAndDate(ctx context.Context, uid uuid.UUID, day time.Time) (*entity.SleepLog, error)
	// Returns logs with created_at in [from, to], ascending by created_at
	GetByUserAndDateRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.SleepLog, error)
	// Returns up to limit most recent logs, descending by created_at
	GetRecentByUser(ctx context.Context, uid uuid.UUID, limit int) ([]entity.SleepLog, error)
	// Returns total log count and total hours slept
	TotalsByUser(ctx context.Context, uid uuid.UUID) (int, float64, error)
}

type RewardsRepositoryI interface {
	// Lists the catalog ordered by cost ascending
	List(ctx context.Context) ([]entity.Reward, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Reward, error)
}

type RedemptionsRepositoryI interface {
	// Debits cost from user's balance and records the redemption in one
	// transaction. Returns ErrInsufficientPoints if the guarded debit
	// affects no rows; nothing is written in that case
	Redeem(ctx context.Context, uid, rewardID uuid.UUID, cost int) (*entity.Redemption, error)
	// Lists user's redemptions joined with reward details, newest first
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.RedeemedReward, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
