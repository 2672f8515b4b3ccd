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

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

func TestLogSleep(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logsRepo := mocks.NewMockSleepLogsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewSleepService(logsRepo, profilesRepo)
	userID := uuid.New()
	sleepAt := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	wakeAt := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)

	t.Run("success credits twenty points for eight hours", func(t *testing.T) {
		logID := uuid.New()
		logsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, sleepLog *entity.SleepLog) error {
				assert.Equal(t, userID, sleepLog.UserID)
				assert.Equal(t, 8.0, sleepLog.DurationHours)
				assert.Equal(t, 20, sleepLog.PointsEarned)
				sleepLog.ID = logID
				sleepLog.CreatedAt = time.Now()
				return nil
			},
		)
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 20,
		}, nil)
		sleepLog, balance, err := serv.LogSleep(context.Background(), userID, &service.LogSleepRequest{
			SleepTime: sleepAt,
			WakeTime:  wakeAt,
		})
		require.NoError(t, err)
		assert.Equal(t, logID, sleepLog.ID)
		assert.Equal(t, 20, balance)
	})

	t.Run("wake before sleep still logs a positive duration", func(t *testing.T) {
		logsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, sleepLog *entity.SleepLog) error {
				assert.Equal(t, 8.0, sleepLog.DurationHours)
				assert.Equal(t, 20, sleepLog.PointsEarned)
				return nil
			},
		)
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 40,
		}, nil)
		_, balance, err := serv.LogSleep(context.Background(), userID, &service.LogSleepRequest{
			SleepTime: wakeAt,
			WakeTime:  sleepAt,
		})
		require.NoError(t, err)
		assert.Equal(t, 40, balance)
	})

	t.Run("missing wake time fails validation", func(t *testing.T) {
		_, _, err := serv.LogSleep(context.Background(), userID, &service.LogSleepRequest{
			SleepTime: sleepAt,
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})

	t.Run("duplicate log for today", func(t *testing.T) {
		logsRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errorvalues.ErrLogExistsToday)
		_, _, err := serv.LogSleep(context.Background(), userID, &service.LogSleepRequest{
			SleepTime: sleepAt,
			WakeTime:  wakeAt,
		})
		assert.ErrorIs(t, err, errorvalues.ErrLogExistsToday)
	})
}

func TestTodaysLog(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logsRepo := mocks.NewMockSleepLogsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewSleepService(logsRepo, profilesRepo)
	userID := uuid.New()

	t.Run("log exists", func(t *testing.T) {
		logsRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, gomock.Any()).Return(&entity.SleepLog{
			UserID:        userID,
			DurationHours: 7.5,
			PointsEarned:  20,
		}, nil)
		sleepLog, err := serv.TodaysLog(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 7.5, sleepLog.DurationHours)
	})

	t.Run("no log today", func(t *testing.T) {
		logsRepo.EXPECT().GetByUserAndDate(gomock.Any(), userID, gomock.Any()).Return(nil, errorvalues.ErrLogNotFound)
		_, err := serv.TodaysLog(context.Background(), userID)
		assert.ErrorIs(t, err, errorvalues.ErrLogNotFound)
	})
}

func TestWeeklySummary(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logsRepo := mocks.NewMockSleepLogsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewSleepService(logsRepo, profilesRepo)
	userID := uuid.New()
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	logsRepo.EXPECT().GetByUserAndDateRange(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return([]entity.SleepLog{
		weekLog(monday, 6, 10),
		weekLog(monday.AddDate(0, 0, 1), 8, 20),
		weekLog(monday.AddDate(0, 0, 2), 9, 20),
	}, nil)
	stats, logs, err := serv.WeeklySummary(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.InDelta(t, 7.67, stats.AverageDuration, 0.005)
	assert.Equal(t, "Wednesday", stats.BestDay)
	assert.Equal(t, 50, stats.TotalPoints)
}

func TestProfileSummary(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logsRepo := mocks.NewMockSleepLogsRepositoryI(ctrl)
	profilesRepo := mocks.NewMockProfilesRepositoryI(ctrl)

	serv := service.NewSleepService(logsRepo, profilesRepo)
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(&entity.Profile{
			UserID:      userID,
			TotalPoints: 85,
		}, nil)
		logsRepo.EXPECT().TotalsByUser(gomock.Any(), userID).Return(12, 93.5, nil)
		logsRepo.EXPECT().GetRecentByUser(gomock.Any(), userID, 10).Return([]entity.SleepLog{
			{UserID: userID, DurationHours: 8},
		}, nil)
		summary, err := serv.ProfileSummary(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 85, summary.TotalPoints)
		assert.Equal(t, 12, summary.TotalLogs)
		assert.Equal(t, 93.5, summary.TotalHours)
		assert.Len(t, summary.RecentLogs, 1)
	})

	t.Run("profile not found", func(t *testing.T) {
		profilesRepo.EXPECT().GetByUserID(gomock.Any(), userID).Return(nil, errorvalues.ErrProfileNotFound)
		_, err := serv.ProfileSummary(context.Background(), userID)
		assert.ErrorIs(t, err, errorvalues.ErrProfileNotFound)
	})
}
