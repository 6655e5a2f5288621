package scoring

import (
	"sort"
	"time"

	"github.com/ratedzzz/small-steps/internal/constants"
	"github.com/ratedzzz/small-steps/internal/ledger"
)

// Qualifies reports whether a day's percentage counts toward a streak
func Qualifies(percentage int) bool {
	return percentage >= constants.StreakThreshold
}

// Streak returns the current streak for habitID ending at today.
// It scans back up to 365 days and stops at the first day below the
// threshold. Today alone may be below it without breaking the streak;
// it then simply does not count.
func Streak(s ledger.State, habitID string, today time.Time) int {
	days := s.Progress[habitID]
	if len(days) == 0 {
		return 0
	}

	streak := 0
	for i := 0; i < constants.StreakScanDays; i++ {
		date := ledger.DateKey(today.AddDate(0, 0, -i))
		e, ok := days[date]
		if ok && Qualifies(e.Percentage()) {
			streak++
			continue
		}
		if i > 0 {
			break
		}
	}
	return streak
}

// LongestStreak returns the longest run of consecutive qualifying dates
// anywhere in the habit's history. Unparsable date keys are ignored.
func LongestStreak(s ledger.State, habitID string) int {
	var dates []time.Time
	for date, e := range s.Progress[habitID] {
		if !Qualifies(e.Percentage()) {
			continue
		}
		t, err := ledger.ParseDate(date, time.UTC)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// MissedDays counts consecutive days before today on which no habit
// qualified, capped at the scan window. With no habits it is 0.
func MissedDays(s ledger.State, today time.Time) int {
	if len(s.Habits) == 0 {
		return 0
	}

	missed := 0
	for i := 1; i <= constants.StreakScanDays; i++ {
		date := ledger.DateKey(today.AddDate(0, 0, -i))
		for _, h := range s.Habits {
			if e, ok := s.Entry(h.ID, date); ok && Qualifies(e.Percentage()) {
				return missed
			}
		}
		missed++
	}
	return missed
}
