package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/somnolab/somnia/internal/service"
	"github.com/somnolab/somnia/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestScorePoints(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc   string
		Hours  float64
		Points int
	}{
		{Desc: "very short sleep", Hours: 3.0, Points: 5},
		{Desc: "just under six", Hours: 5.999, Points: 5},
		{Desc: "lower bound of six tier", Hours: 6.0, Points: 10},
		{Desc: "just under seven", Hours: 6.999, Points: 10},
		{Desc: "lower bound of ideal tier", Hours: 7.0, Points: 20},
		{Desc: "ideal eight hours", Hours: 8.0, Points: 20},
		{Desc: "upper bound of ideal tier", Hours: 9.0, Points: 20},
		{Desc: "just over nine", Hours: 9.001, Points: 10},
		{Desc: "upper bound of long tier", Hours: 10.0, Points: 10},
		{Desc: "just over ten", Hours: 10.001, Points: 5},
		{Desc: "oversleep", Hours: 14.0, Points: 5},
		{Desc: "zero", Hours: 0, Points: 5},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Points, service.ScorePoints(tc.Hours))
		})
	}
}

func TestSleepDuration(t *testing.T) {
	t.Parallel()
	sleepAt := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	wakeAt := time.Date(2024, 1, 2, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, 8.0, service.SleepDuration(sleepAt, wakeAt))
	// Swapped arguments still produce a positive duration
	assert.Equal(t, service.SleepDuration(sleepAt, wakeAt), service.SleepDuration(wakeAt, sleepAt))
	assert.Equal(t, 0.0, service.SleepDuration(sleepAt, sleepAt))
}

func TestDayOf(t *testing.T) {
	t.Parallel()
	instant := time.Date(2024, 3, 15, 22, 45, 12, 0, time.UTC)
	day := service.DayOf(instant)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), day)
	// Late-evening and early-morning instants on the same day collapse
	// to the same bucket
	assert.Equal(t, day, service.DayOf(time.Date(2024, 3, 15, 0, 0, 1, 0, time.UTC)))
}

func weekLog(day time.Time, hours float64, points int) entity.SleepLog {
	return entity.SleepLog{
		ID:            uuid.New(),
		DurationHours: hours,
		PointsEarned:  points,
		LogDate:       day,
		CreatedAt:     day.Add(8 * time.Hour),
	}
}

func TestReduceWeekly(t *testing.T) {
	t.Parallel()
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty window", func(t *testing.T) {
		stats := service.ReduceWeekly(nil)
		assert.Equal(t, 0.0, stats.AverageDuration)
		assert.Empty(t, stats.BestDay)
		assert.Equal(t, 0, stats.TotalPoints)
	})

	t.Run("three nights", func(t *testing.T) {
		logs := []entity.SleepLog{
			weekLog(monday, 6, 10),
			weekLog(monday.AddDate(0, 0, 1), 8, 20),
			weekLog(monday.AddDate(0, 0, 2), 9, 20),
		}
		stats := service.ReduceWeekly(logs)
		assert.InDelta(t, 7.67, stats.AverageDuration, 0.005)
		assert.Equal(t, "Wednesday", stats.BestDay)
		assert.Equal(t, 9.0, stats.BestDuration)
		assert.Equal(t, 50, stats.TotalPoints)
	})

	t.Run("tie goes to earliest night", func(t *testing.T) {
		logs := []entity.SleepLog{
			weekLog(monday, 8, 20),
			weekLog(monday.AddDate(0, 0, 3), 8, 20),
		}
		stats := service.ReduceWeekly(logs)
		assert.Equal(t, "Monday", stats.BestDay)
		assert.Equal(t, 8.0, stats.BestDuration)
	})
}
