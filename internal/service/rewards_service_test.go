package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/internal/repository/mocks"
	"github.com/somnolab/somnia/internal/service"
	"github.com/somnolab/somnia/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemReward(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	rewardsRepo := mocks.NewMockRewardsRepositoryI(ctrl)
	redemptionsRepo := mocks.NewMockRedemptionsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewRewardsService(rewardsRepo, redemptionsRepo, profilesRepo)
	userID := uuid.New()
	rewardID := uuid.New()
	reward := entity.Reward{
		ID:         rewardID,
		Name:       "Movie Night",
		PointsCost: 15,
	}

	t.Run("success", func(t *testing.T) {
		rewardsRepo.EXPECT().GetByID(gomock.Any(), rewardID).Return(&reward, nil)
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 20,
		}, nil)
		redemptionsRepo.EXPECT().Redeem(gomock.Any(), userID, rewardID, 15).Return(&entity.Redemption{
			ID:         uuid.New(),
			UserID:     userID,
			RewardID:   rewardID,
			RedeemedAt: time.Now(),
		}, nil)
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 5,
		}, nil)
		redemption, balance, err := serv.Redeem(context.Background(), userID, rewardID)
		require.NoError(t, err)
		assert.Equal(t, rewardID, redemption.RewardID)
		assert.Equal(t, 5, balance)
	})

	t.Run("reward not found", func(t *testing.T) {
		rewardsRepo.EXPECT().GetByID(gomock.Any(), rewardID).Return(nil, errorvalues.ErrRewardNotFound)
		_, _, err := serv.Redeem(context.Background(), userID, rewardID)
		assert.ErrorIs(t, err, errorvalues.ErrRewardNotFound)
	})

	t.Run("insufficient balance fails before debit", func(t *testing.T) {
		rewardsRepo.EXPECT().GetByID(gomock.Any(), rewardID).Return(&reward, nil)
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 5,
		}, nil)
		_, _, err := serv.Redeem(context.Background(), userID, rewardID)
		assert.ErrorIs(t, err, errorvalues.ErrInsufficientPoints)
	})

	t.Run("racing redemption loses at the guard", func(t *testing.T) {
		// Balance read passes but another redemption drains it before
		// the debit lands; the repository guard reports it.
		rewardsRepo.EXPECT().GetByID(gomock.Any(), rewardID).Return(&reward, nil)
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 20,
		}, nil)
		redemptionsRepo.EXPECT().Redeem(gomock.Any(), userID, rewardID, 15).Return(nil, errorvalues.ErrInsufficientPoints)
		_, _, err := serv.Redeem(context.Background(), userID, rewardID)
		assert.ErrorIs(t, err, errorvalues.ErrInsufficientPoints)
	})
}

func TestListRewards(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	rewardsRepo := mocks.NewMockRewardsRepositoryI(ctrl)
	redemptionsRepo := mocks.NewMockRedemptionsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewRewardsService(rewardsRepo, redemptionsRepo, profilesRepo)
	rewardsRepo.EXPECT().List(gomock.Any()).Return([]entity.Reward{
		{Name: "Movie Night", PointsCost: 50},
		{Name: "New Book", PointsCost: 200},
	}, nil)
	rewards, err := serv.ListRewards(context.Background())
	require.NoError(t, err)
	require.Len(t, rewards, 2)
	assert.Equal(t, "Movie Night", rewards[0].Name)
}

func TestRedeemedRewards(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	rewardsRepo := mocks.NewMockRewardsRepositoryI(ctrl)
	redemptionsRepo := mocks.NewMockRedemptionsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewRewardsService(rewardsRepo, redemptionsRepo, profilesRepo)
	userID := uuid.New()
	redemptionsRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return([]entity.RedeemedReward{
		{Name: "Movie Night", PointsCost: 50, RedeemedAt: time.Now()},
	}, nil)
	redeemed, err := serv.RedeemedRewards(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, redeemed, 1)
	assert.Equal(t, "Movie Night", redeemed[0].Name)
}
