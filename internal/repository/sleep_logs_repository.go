package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/pkg/cleanup"
	"github.com/somnolab/somnia/pkg/entity"
)

type SleepLogsRepository struct {
	conn PgConnection
}

func NewSleepLogsRepo(cfg DBConfig) *SleepLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for sleepLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sleepLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &SleepLogsRepository{
		conn: pool,
	}
}

func NewSleepLogsRepoWithConn(conn PgConnection) *SleepLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for sleepLogsRepo: " + err.Error())
	}
	return &SleepLogsRepository{
		conn: conn,
	}
}

// Create inserts the log and credits its points in one transaction. The
// unique index on (user_id, log_date) is the daily guard: a concurrent
// duplicate fails the insert, never the balance.
func (slr *SleepLogsRepository) Create(ctx context.Context, sleepLog *entity.SleepLog) error {
	if sleepLog == nil {
		return errors.New("sleep log is nil")
	}
	tx, err := slr.conn.Begin(ctx)
	if err != nil {
		return errors.New("opening tx for sleep log error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	row := tx.QueryRow(ctx,
		`INSERT INTO sleep_logs (user_id, sleep_time, wake_time, duration_hours, points_earned, log_date)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at;`,
		sleepLog.UserID,
		sleepLog.SleepTime,
		sleepLog.WakeTime,
		sleepLog.DurationHours,
		sleepLog.PointsEarned,
		sleepLog.LogDate,
	)
	if err := row.Scan(&sleepLog.ID, &sleepLog.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrLogExistsToday
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating sleep log error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `UPDATE profiles SET total_points = total_points + $1 WHERE user_id = $2;`,
		sleepLog.PointsEarned,
		sleepLog.UserID,
	)
	if err != nil {
		return errors.New("crediting points error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProfileNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.New("committing sleep log error: " + err.Error())
	}
	return nil
}

func (slr *SleepLogsRepository) GetByUserAndDate(ctx context.Context, uid uuid.UUID, day time.Time) (*entity.SleepLog, error) {
	var sleepLog entity.SleepLog
	row := slr.conn.QueryRow(ctx,
		`SELECT id, user_id, sleep_time, wake_time, duration_hours, points_earned, log_date, created_at
		FROM sleep_logs WHERE user_id = $1 AND log_date = $2;`,
		uid, day,
	)
	err := row.Scan(
		&sleepLog.ID,
		&sleepLog.UserID,
		&sleepLog.SleepTime,
		&sleepLog.WakeTime,
		&sleepLog.DurationHours,
		&sleepLog.PointsEarned,
		&sleepLog.LogDate,
		&sleepLog.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrLogNotFound
		}
		return nil, errors.New("getting log by date error: " + err.Error())
	}
	return &sleepLog, nil
}

func (slr *SleepLogsRepository) GetByUserAndDateRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.SleepLog, error) {
	rows, err := slr.conn.Query(ctx,
		`SELECT id, user_id, sleep_time, wake_time, duration_hours, points_earned, log_date, created_at
		FROM sleep_logs WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3 ORDER BY created_at ASC;`,
		uid, from, to,
	)
	if err != nil {
		return nil, errors.New("getting logs for period error: " + err.Error())
	}
	defer rows.Close()
	return scanSleepLogs(rows)
}

func (slr *SleepLogsRepository) GetRecentByUser(ctx context.Context, uid uuid.UUID, limit int) ([]entity.SleepLog, error) {
	rows, err := slr.conn.Query(ctx,
		`SELECT id, user_id, sleep_time, wake_time, duration_hours, points_earned, log_date, created_at
		FROM sleep_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`,
		uid, limit,
	)
	if err != nil {
		return nil, errors.New("getting recent logs error: " + err.Error())
	}
	defer rows.Close()
	return scanSleepLogs(rows)
}

func (slr *SleepLogsRepository) TotalsByUser(ctx context.Context, uid uuid.UUID) (int, float64, error) {
	row := slr.conn.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(duration_hours), 0) FROM sleep_logs WHERE user_id = $1;`,
		uid,
	)
	var count int
	var hours float64
	if err := row.Scan(&count, &hours); err != nil {
		return 0, 0, errors.New("counting logs error: " + err.Error())
	}
	return count, hours, nil
}

func scanSleepLogs(rows pgx.Rows) ([]entity.SleepLog, error) {
	result := make([]entity.SleepLog, 0)
	for rows.Next() {
		sleepLog := entity.SleepLog{}
		err := rows.Scan(
			&sleepLog.ID,
			&sleepLog.UserID,
			&sleepLog.SleepTime,
			&sleepLog.WakeTime,
			&sleepLog.DurationHours,
			&sleepLog.PointsEarned,
			&sleepLog.LogDate,
			&sleepLog.CreatedAt,
		)
		if err != nil {
			return nil, errors.New("sleep log row parsing error: " + err.Error())
		}
		result = append(result, sleepLog)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected sleep log rows error: " + rows.Err().Error())
	}
	return result, nil
}
