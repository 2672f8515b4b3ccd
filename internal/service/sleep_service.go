package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/somnolab/somnia/internal/error_values"
	"github.com/somnolab/somnia/internal/repository"
	"github.com/somnolab/somnia/pkg/entity"
)

const recentLogsLimit = 10

type SleepService struct {
	logsRepo     repository.SleepLogsRepositoryI
	profilesRepo repository.ProfilesRepositoryI
}

func NewSleepService(logsRepo repository.SleepLogsRepositoryI, profilesRepo repository.ProfilesRepositoryI) *SleepService {
	if logsRepo == nil || profilesRepo == nil {
		log.Fatal("on sleep service provided nil repos")
	}
	return &SleepService{
		logsRepo:     logsRepo,
		profilesRepo: profilesRepo,
	}
}

func (ss *SleepService) LogSleep(ctx context.Context, uid uuid.UUID, req *LogSleepRequest) (*entity.SleepLog, int, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			joined := errorvalues.ErrValidation
			for _, fieldErr := range validationError {
				joined = errors.Join(joined, fieldErr)
			}
			return nil, 0, joined
		}
		return nil, 0, errors.New("validation unexpected error: " + err.Error())
	}
	duration := SleepDuration(req.SleepTime, req.WakeTime)
	sleepLog := entity.SleepLog{
		UserID:        uid,
		SleepTime:     req.SleepTime,
		WakeTime:      req.WakeTime,
		DurationHours: duration,
		PointsEarned:  ScorePoints(duration),
		LogDate:       DayOf(time.Now()),
	}
	err = ss.logsRepo.Create(ctx, &sleepLog)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrLogExistsToday):
			return nil, 0, errorvalues.ErrLogExistsToday
		case errors.Is(err, errorvalues.ErrUserNotFound):
			return nil, 0, errorvalues.ErrUserNotFound
		case errors.Is(err, errorvalues.ErrProfileNotFound):
			return nil, 0, errorvalues.ErrProfileNotFound
		}
		return nil, 0, errors.New("sleep logs repository error: " + err.Error())
	}
	profile, err := ss.profilesRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, 0, errors.New("profiles repository error: " + err.Error())
	}
	return &sleepLog, profile.TotalPoints, nil
}

func (ss *SleepService) TodaysLog(ctx context.Context, uid uuid.UUID) (*entity.SleepLog, error) {
	sleepLog, err := ss.logsRepo.GetByUserAndDate(ctx, uid, DayOf(time.Now()))
	if err != nil {
		if errors.Is(err, errorvalues.ErrLogNotFound) {
			return nil, errorvalues.ErrLogNotFound
		}
		return nil, errors.New("sleep logs repository error: " + err.Error())
	}
	return sleepLog, nil
}

// WeeklySummary reads the trailing 7-day window once and reduces it. The
// window is computed at call time with an inclusive lower bound.
func (ss *SleepService) WeeklySummary(ctx context.Context, uid uuid.UUID) (*entity.WeeklyStats, []entity.SleepLog, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -7)
	logs, err := ss.logsRepo.GetByUserAndDateRange(ctx, uid, from, now)
	if err != nil {
		return nil, nil, errors.New("sleep logs repository error: " + err.Error())
	}
	stats := ReduceWeekly(logs)
	return &stats, logs, nil
}

func (ss *SleepService) ProfileSummary(ctx context.Context, uid uuid.UUID) (*entity.ProfileSummary, error) {
	profile, err := ss.profilesRepo.GetByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("profiles repository error: " + err.Error())
	}
	count, hours, err := ss.logsRepo.TotalsByUser(ctx, uid)
	if err != nil {
		return nil, errors.New("sleep logs repository error: " + err.Error())
	}
	recent, err := ss.logsRepo.GetRecentByUser(ctx, uid, recentLogsLimit)
	if err != nil {
		return nil, errors.New("sleep logs repository error: " + err.Error())
	}
	return &entity.ProfileSummary{
		TotalPoints: profile.TotalPoints,
		TotalLogs:   count,
		TotalHours:  hours,
		RecentLogs:  recent,
	}, nil
}
