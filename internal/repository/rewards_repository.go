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

// RewardsRepository is read-only: the catalog is seeded by migrations and
// managed outside the service.
type RewardsRepository struct {
	conn PgConnection
}

func NewRewardsRepo(cfg DBConfig) *RewardsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for rewardsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for rewardsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RewardsRepository{
		conn: pool,
	}
}

func NewRewardsRepoWithConn(conn PgConnection) *RewardsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for rewardsRepo: " + err.Error())
	}
	return &RewardsRepository{
		conn: conn,
	}
}

func (rr *RewardsRepository) List(ctx context.Context) ([]entity.Reward, error) {
	rows, err := rr.conn.Query(ctx,
		`SELECT id, name, description, icon, points_cost FROM rewards ORDER BY points_cost ASC;`,
	)
	if err != nil {
		return nil, errors.New("listing rewards error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.Reward, 0)
	for rows.Next() {
		reward := entity.Reward{}
		err = rows.Scan(&reward.ID, &reward.Name, &reward.Description, &reward.Icon, &reward.PointsCost)
		if err != nil {
			return nil, errors.New("reward row parsing error: " + err.Error())
		}
		result = append(result, reward)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected reward rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (rr *RewardsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reward, error) {
	var reward entity.Reward
	row := rr.conn.QueryRow(ctx,
		`SELECT id, name, description, icon, points_cost FROM rewards WHERE id = $1;`, id,
	)
	if err := row.Scan(&reward.ID, &reward.Name, &reward.Description, &reward.Icon, &reward.PointsCost); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRewardNotFound
		}
		return nil, errors.New("getting reward by id error: " + err.Error())
	}
	return &reward, nil
}
