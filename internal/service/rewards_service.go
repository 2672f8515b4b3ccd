package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/internal/repository"
	"github.com/somnolab/somnia/pkg/entity"
)

type RewardsService struct {
	rewardsRepo     repository.RewardsRepositoryI
	redemptionsRepo repository.RedemptionsRepositoryI
	profilesRepo    repository.ProfilesRepositoryI
}

func NewRewardsService(
	rewardsRepo repository.RewardsRepositoryI,
	redemptionsRepo repository.RedemptionsRepositoryI,
	profilesRepo repository.ProfilesRepositoryI,
) *RewardsService {
	if rewardsRepo == nil || redemptionsRepo == nil || profilesRepo == nil {
		log.Fatal("on rewards service provided nil repos")
	}
	return &RewardsService{
		rewardsRepo:     rewardsRepo,
		redemptionsRepo: redemptionsRepo,
		profilesRepo:    profilesRepo,
	}
}

func (rs *RewardsService) ListRewards(ctx context.Context) ([]entity.Reward, error) {
	rewards, err := rs.rewardsRepo.List(ctx)
	if err != nil {
		return nil, errors.New("rewards repository error: " + err.Error())
	}
	return rewards, nil
}

// Redeem re-reads the authoritative balance before the debit, then lets
// the repository transaction make the final call. The early check only
// exists to fail cheap; the guard inside Redeem is what holds under races.
func (rs *RewardsService) Redeem(ctx context.Context, uid, rewardID uuid.UUID) (*entity.Redemption, int, error) {
	reward, err := rs.rewardsRepo.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRewardNotFound) {
			return nil, 0, errorvalues.ErrRewardNotFound
		}
		return nil, 0, errors.New("rewards repository error: " + err.Error())
	}
	profile, err := rs.profilesRepo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, 0, errorvalues.ErrProfileNotFound
		}
		return nil, 0, errors.New("profiles repository error: " + err.Error())
	}
	if profile.TotalPoints < reward.PointsCost {
		return nil, 0, errorvalues.ErrInsufficientPoints
	}
	redemption, err := rs.redemptionsRepo.Redeem(ctx, uid, rewardID, reward.PointsCost)
	if err != nil {
		if errors.Is(err, errorvalues.ErrInsufficientPoints) {
			return nil, 0, errorvalues.ErrInsufficientPoints
		}
		return nil, 0, errors.New("redemptions repository error: " + err.Error())
	}
	profile, err = rs.profilesRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, 0, errors.New("profiles repository error: " + err.Error())
	}
	return redemption, profile.TotalPoints, nil
}

func (rs *RewardsService) RedeemedRewards(ctx context.Context, uid uuid.UUID) ([]entity.RedeemedReward, error) {
	redeemed, err := rs.redemptionsRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("redemptions repository error: " + err.Error())
	}
	return redeemed, nil
}
