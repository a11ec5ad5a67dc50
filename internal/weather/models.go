package weather

// Metar is the display-ready observation record. Every field is a string so
// a missing upstream value degrades to its sentinel instead of failing the
// whole record.
type Metar struct {
	Station       string `json:"station"`
	Raw           string `json:"raw"`
	FlightRules   string `json:"flight_rules"`
	WindDirection string `json:"wind_direction"`
	WindSpeed     string `json:"wind_speed"`
	Temperature   string `json:"temperature"`
	Dewpoint      string `json:"dewpoint"`
	Visibility    string `json:"visibility"`
	Altimeter     string `json:"altimeter"`
}

type Taf struct {
	Station  string           `json:"station"`
	Raw      string           `json:"raw"`
	Forecast []ForecastPeriod `json:"forecast"`
}

type ForecastPeriod struct {
	Raw string `json:"raw"`
}

type Notam struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type NotamList struct {
	Notams []Notam `json:"notams"`
}

const (
	unavailable    = "N/A"
	metarFallback  = "METAR nicht verfügbar"
	metarNoRawText = "Keine Daten verfügbar"
	tafFallback    = "TAF nicht verfügbar"
)

func fallbackMetar(station string) Metar {
	return Metar{
		Station:       station,
		Raw:           metarFallback,
		FlightRules:   unavailable,
		WindDirection: unavailable,
		WindSpeed:     unavailable,
		Temperature:   unavailable,
		Dewpoint:      unavailable,
		Visibility:    unavailable,
		Altimeter:     unavailable,
	}
}

func fallbackTaf(station string) Taf {
	return Taf{Station: station, Raw: tafFallback, Forecast: []ForecastPeriod{}}
}
