package service

import (
	"math"
	"time"

	"github.com/somnolab/somnia/pkg/entity"
)

// SleepDuration returns elapsed hours between the two instants. The
// absolute value is intentional: a wake time entered before the sleep time
// still yields a positive duration instead of an error.
// TODO: surface a warning to the client when wake < sleep, it may hide an
// AM/PM input mistake.
func SleepDuration(sleepTime, wakeTime time.Time) float64 {
	return math.Abs(wakeTime.Sub(sleepTime).Hours())
}

// ScorePoints maps a duration to a point award. First matching tier wins.
//
//	7-9 hours   -> 20
//	6-7 hours   -> 10
//	9-10 hours  -> 10
//	otherwise   -> 5
func ScorePoints(hours float64) int {
	switch {
	case hours >= 7 && hours <= 9:
		return 20
	case hours >= 6 && hours < 7:
		return 10
	case hours > 9 && hours <= 10:
		return 10
	default:
		return 5
	}
}

// DayOf buckets an instant to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReduceWeekly folds a window of logs into summary stats. Logs must be in
// ascending created_at order; the best-day comparison is strictly greater,
// so the earliest of tied nights wins. An empty window produces zeroed
// stats with no best day.
func ReduceWeekly(logs []entity.SleepLog) entity.WeeklyStats {
	stats := entity.WeeklyStats{}
	if len(logs) == 0 {
		return stats
	}
	totalHours := 0.0
	for _, sleepLog := range logs {
		totalHours += sleepLog.DurationHours
		stats.TotalPoints += sleepLog.PointsEarned
		if sleepLog.DurationHours > stats.BestDuration {
			stats.BestDuration = sleepLog.DurationHours
			stats.BestDay = sleepLog.CreatedAt.Weekday().String()
		}
	}
	stats.AverageDuration = totalHours / float64(len(logs))
	return stats
}
