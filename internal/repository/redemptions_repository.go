package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/pkg/cleanup"
	"github.com/somnolab/somnia/pkg/entity"
)

type RedemptionsRepository struct {
	conn PgConnection
}

func NewRedemptionsRepo(cfg DBConfig) *RedemptionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for redemptionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for redemptionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RedemptionsRepository{
		conn: pool,
	}
}

func NewRedemptionsRepoWithConn(conn PgConnection) *RedemptionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for redemptionsRepo: " + err.Error())
	}
	return &RedemptionsRepository{
		conn: conn,
	}
}

// Redeem runs the guarded debit and the redemption insert in one
// transaction. Two racing redemptions both pass the service-level balance
// check, but only one survives the guard here; the loser rolls back with
// ErrInsufficientPoints and writes nothing.
func (rdr *RedemptionsRepository) Redeem(ctx context.Context, uid, rewardID uuid.UUID, cost int) (*entity.Redemption, error) {
	if cost < 0 {
		return nil, errors.New("redemption cost must be non-negative")
	}
	tx, err := rdr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("opening tx for redemption error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	ct, err := tx.Exec(ctx,
		`UPDATE profiles SET total_points = total_points - $1 WHERE user_id = $2 AND total_points >= $1;`,
		cost, uid,
	)
	if err != nil {
		return nil, errors.New("debiting points error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrInsufficientPoints
	}
	redemption := entity.Redemption{
		UserID:   uid,
		RewardID: rewardID,
	}
	row := tx.QueryRow(ctx,
		`INSERT INTO redemptions (user_id, reward_id) VALUES ($1, $2) RETURNING id, redeemed_at;`,
		uid, rewardID,
	)
	if err := row.Scan(&redemption.ID, &redemption.RedeemedAt); err != nil {
		return nil, errors.New("recording redemption error: " + err.Error())
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.New("committing redemption error: " + err.Error())
	}
	return &redemption, nil
}

func (rdr *RedemptionsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.RedeemedReward, error) {
	rows, err := rdr.conn.Query(ctx,
		`SELECT rd.id, rd.reward_id, rw.name, rw.icon, rw.points_cost, rd.redeemed_at
		FROM redemptions rd JOIN rewards rw ON rw.id = rd.reward_id
		WHERE rd.user_id = $1 ORDER BY rd.redeemed_at DESC;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("listing redemptions error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.RedeemedReward, 0)
	for rows.Next() {
		item := entity.RedeemedReward{}
		err = rows.Scan(&item.ID, &item.RewardID, &item.Name, &item.Icon, &item.PointsCost, &item.RedeemedAt)
		if err != nil {
			return nil, errors.New("redemption row parsing error: " + err.Error())
		}
		result = append(result, item)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected redemption rows error: " + rows.Err().Error())
	}
	return result, nil
}
