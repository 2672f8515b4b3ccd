package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/pkg/cleanup"
	"github.com/somnolab/somnia/pkg/entity"
)

// ProfilesRepository is the points ledger. Credits and debits are single
// guarded UPDATE statements, so concurrent operations on the same balance
// serialize in the database instead of racing in the application.
type ProfilesRepository struct {
	conn PgConnection
}

func NewProfilesRepo(cfg DBConfig) *ProfilesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for profilesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ProfilesRepository{
		conn: pool,
	}
}

func NewProfilesRepoWithConn(conn PgConnection) *ProfilesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	return &ProfilesRepository{
		conn: conn,
	}
}

func (pr *ProfilesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	row := pr.conn.QueryRow(ctx, `SELECT user_id, total_points, created_at FROM profiles WHERE user_id = $1;`, uid)
	if err := row.Scan(&profile.UserID, &profile.TotalPoints, &profile.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("getting profile error: " + err.Error())
	}
	return &profile, nil
}

func (pr *ProfilesRepository) AddPoints(ctx context.Context, uid uuid.UUID, points int) error {
	if points < 0 {
		return errors.New("points to add must be non-negative")
	}
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET total_points = total_points + $1 WHERE user_id = $2;`, points, uid)
	if err != nil {
		return errors.New("adding points error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProfileNotFound
	}
	return nil
}

// SpendPoints performs the guarded debit. The balance condition lives in
// the UPDATE itself: zero rows affected means the guard rejected it.
func (pr *ProfilesRepository) SpendPoints(ctx context.Context, uid uuid.UUID, points int) error {
	if points < 0 {
		return errors.New("points to spend must be non-negative")
	}
	ct, err := pr.conn.Exec(ctx,
		`UPDATE profiles SET total_points = total_points - $1 WHERE user_id = $2 AND total_points >= $1;`,
		points, uid,
	)
	if err != nil {
		return errors.New("spending points error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		row := pr.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1);`, uid)
		if err := row.Scan(&exists); err != nil {
			return errors.New("inspecting profile after failed debit error: " + err.Error())
		}
		if !exists {
			return errorvalues.ErrProfileNotFound
		}
		return errorvalues.ErrInsufficientPoints
	}
	return nil
}
