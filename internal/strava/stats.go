package strava

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// All aggregate functions are pure over the activity list and a reference
// now. Calendar-day comparisons use now's location; callers pass now already
// shifted into the home timezone so every date boundary is judged in one
// zone.

// dayOf truncates t to its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Streak counts consecutive calendar days with at least one activity,
// ending today. A day with several activities counts once; the walk stops
// at the first day without any.
func Streak(activities []Activity, now time.Time) int {
	if len(activities) == 0 {
		return 0
	}
	loc := now.Location()

	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})

	streak := 0
	expected := dayOf(now, loc)
	for _, a := range sorted {
		day := dayOf(a.StartDate, loc)
		switch {
		case day.Equal(expected):
			streak++
			expected = expected.AddDate(0, 0, -1)
		case day.Before(expected):
			return streak
		}
		// A second activity on an already-counted day falls through.
	}
	return streak
}

// Summarize derives the headline widget stats. The month distance is shown
// by default; a streak of at least 7 days takes over the display slot.
func Summarize(activities []Activity, now time.Time) Summary {
	if len(activities) == 0 {
		return emptySummary()
	}

	streak := Streak(activities, now)
	monthKm := monthDistanceKm(activities, now)
	weekActs := sinceFilter(activities, now.AddDate(0, 0, -7))

	summary := Summary{
		DisplayStat:   km(monthKm),
		DisplayLabel:  labelMonth,
		Streak:        streak,
		MonthDistance: km(monthKm),
		WeekCount:     len(weekActs),
	}
	if streak >= streakPrefer {
		summary.DisplayStat = strconv.Itoa(streak)
		summary.DisplayLabel = labelStreak
	}
	return summary
}

// Detail derives the full statistics record for the stats page.
func Detail(activities []Activity, now time.Time) Detailed {
	if len(activities) == 0 {
		return Detailed{
			MonthDistance: "0.0",
			Latest:        Latest{Distance: "0.0", Time: noPace, Pace: noPace},
			Weekly:        Weekly{Run: "0.0", Ride: "0.0", Swim: "0.0", Total: "0.0"},
			Records:       Records{LongestRun: noRecord, Fastest5K: noRecord, MaxElevation: noRecord},
		}
	}

	latest := activities[0]
	weekActs := sinceFilter(activities, now.AddDate(0, 0, -7))

	return Detailed{
		Streak:        Streak(activities, now),
		MonthDistance: km(monthDistanceKm(activities, now)),
		WeekCount:     len(weekActs),
		Latest: Latest{
			Distance:  km(latest.Distance / 1000),
			Time:      formatMovingTime(latest.MovingTime),
			Pace:      formatPace(latest.MovingTime, latest.Distance),
			Elevation: int(latest.TotalElevationGain + 0.5),
		},
		Weekly:  weeklyByType(weekActs),
		Heatmap: heatmap(activities, now),
		Records: personalRecords(activities),
	}
}

func monthDistanceKm(activities []Activity, now time.Time) float64 {
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	total := 0.0
	for _, a := range sinceFilter(activities, monthStart) {
		total += a.Distance
	}
	return total / 1000
}

func sinceFilter(activities []Activity, cutoff time.Time) []Activity {
	var out []Activity
	for _, a := range activities {
		if !a.StartDate.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

func weeklyByType(weekActs []Activity) Weekly {
	var run, ride, swim float64
	for _, a := range weekActs {
		switch a.Type {
		case "Run":
			run += a.Distance
		case "Ride":
			ride += a.Distance
		case "Swim":
			swim += a.Distance
		}
	}
	return Weekly{
		Run:   km(run / 1000),
		Ride:  km(ride / 1000),
		Swim:  km(swim / 1000),
		Total: km((run + ride + swim) / 1000),
	}
}

// heatmap marks activity presence per calendar day over the last 7 days,
// oldest first, today last.
func heatmap(activities []Activity, now time.Time) [7]bool {
	loc := now.Location()
	var days [7]bool
	for i := 0; i < 7; i++ {
		day := dayOf(now.AddDate(0, 0, -(6 - i)), loc)
		for _, a := range activities {
			if dayOf(a.StartDate, loc).Equal(day) {
				days[i] = true
				break
			}
		}
	}
	return days
}

func personalRecords(activities []Activity) Records {
	records := Records{LongestRun: noRecord, Fastest5K: noRecord, MaxElevation: noRecord}

	longest := 0.0
	fastest5k := 0
	maxElevation := 0.0
	for _, a := range activities {
		if a.TotalElevationGain > maxElevation {
			maxElevation = a.TotalElevationGain
		}
		if a.Type != "Run" {
			continue
		}
		if a.Distance > longest {
			longest = a.Distance
		}
		if a.Distance >= 4500 && a.Distance <= 5500 {
			if fastest5k == 0 || a.MovingTime < fastest5k {
				fastest5k = a.MovingTime
			}
		}
	}

	if longest > 0 {
		records.LongestRun = km(longest/1000) + " km"
	}
	if fastest5k > 0 {
		records.Fastest5K = formatMovingTime(fastest5k)
	}
	if maxElevation > 0 {
		records.MaxElevation = strconv.Itoa(int(maxElevation+0.5)) + "m"
	}
	return records
}

// formatMovingTime renders seconds as H:MM:SS, or M:SS under an hour.
func formatMovingTime(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatPace renders minutes per kilometer as M:SS.
func formatPace(movingSeconds int, distanceMeters float64) string {
	if distanceMeters == 0 {
		return noPace
	}
	secPerKm := float64(movingSeconds) / (distanceMeters / 1000)
	m := int(secPerKm) / 60
	s := int(secPerKm) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func km(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
