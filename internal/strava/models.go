package strava

import "time"

// Activity is the raw upstream record, immutable once fetched.
type Activity struct {
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	StartDate          time.Time `json:"start_date"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"moving_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
}

// Summary is the headline widget record. DisplayStat/DisplayLabel carry the
// single stat the dashboard shows, chosen by the streak-preference policy.
type Summary struct {
	DisplayStat   string `json:"display_stat"`
	DisplayLabel  string `json:"display_label"`
	Streak        int    `json:"streak"`
	MonthDistance string `json:"month_distance"`
	WeekCount     int    `json:"week_count"`
}

type Latest struct {
	Distance  string `json:"distance"`
	Time      string `json:"time"`
	Pace      string `json:"pace"`
	Elevation int    `json:"elevation"`
}

type Weekly struct {
	Run   string `json:"run"`
	Ride  string `json:"ride"`
	Swim  string `json:"swim"`
	Total string `json:"total"`
}

type Records struct {
	LongestRun   string `json:"longest_run"`
	Fastest5K    string `json:"fastest_5k"`
	MaxElevation string `json:"max_elevation"`
}

type Detailed struct {
	Streak        int     `json:"streak"`
	MonthDistance string  `json:"month_distance"`
	WeekCount     int     `json:"week_count"`
	Latest        Latest  `json:"latest"`
	Weekly        Weekly  `json:"weekly"`
	Heatmap       [7]bool `json:"heatmap"`
	Records       Records `json:"records"`
}

const (
	noRecord     = "--"
	noPace       = "--:--"
	labelStreak  = "DAY STREAK"
	labelMonth   = "KM MONAT"
	labelNoData  = "Keine Daten"
	streakPrefer = 7
)

func emptySummary() Summary {
	return Summary{
		DisplayStat:   noRecord,
		DisplayLabel:  labelNoData,
		Streak:        0,
		MonthDistance: "0.0",
		WeekCount:     0,
	}
}
