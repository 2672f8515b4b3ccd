package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRewards(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	rewardsRepo := repository.NewRewardsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, name, description, icon, points_cost FROM rewards ORDER BY points_cost ASC;`)
	mock.ExpectQuery(query).WillReturnRows(
		pgxmock.NewRows([]string{"id", "name", "description", "icon", "points_cost"}).
			AddRow(uuid.New(), "Movie Night", "Pick tonight's movie", "🎬", 50).
			AddRow(uuid.New(), "New Book", "Treat yourself to a new read", "📚", 200),
	)
	rewards, err := rewardsRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	assert.Equal(t, "Movie Night", rewards[0].Name)
	assert.Equal(t, 200, rewards[1].PointsCost)
}

func TestGetRewardByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	rewardsRepo := repository.NewRewardsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT id, name, description, icon, points_cost FROM rewards WHERE id = $1;`)
	rewardID := uuid.New()
	testCases := []struct {
		Desc            string
		Error           error
		MockPrepareFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			MockPrepareFunc: func() {
				mock.ExpectQuery(query).WithArgs(rewardID).WillReturnRows(
					pgxmock.NewRows([]string{"id", "name", "description", "icon", "points_cost"}).
						AddRow(rewardID, "Spa Evening", "A full evening of self-care", "🛁", 150),
				)
			},
		},
		{
			Desc:  "reward not found",
			Error: errorvalues.ErrRewardNotFound,
			MockPrepareFunc: func() {
				mock.ExpectQuery(query).WithArgs(rewardID).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("getting reward by id error: db error"),
			MockPrepareFunc: func() {
				mock.ExpectQuery(query).WithArgs(rewardID).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepareFunc()
			reward, err := rewardsRepo.GetByID(ctx, rewardID)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 150, reward.PointsCost)
			}
		})
	}
}
