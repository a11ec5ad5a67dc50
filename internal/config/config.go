package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort         string  `mapstructure:"SERVER_PORT"`
	LogLevel           string  `mapstructure:"LOG_LEVEL"`
	NASAAPIKey         string  `mapstructure:"NASA_API_KEY"`
	AVWXToken          string  `mapstructure:"AVWX_TOKEN"`
	StravaClientID     string  `mapstructure:"STRAVA_CLIENT_ID"`
	StravaClientSecret string  `mapstructure:"STRAVA_CLIENT_SECRET"`
	StravaRefreshToken string  `mapstructure:"STRAVA_REFRESH_TOKEN"`
	HomeLat            float64 `mapstructure:"HOME_LAT"`
	HomeLon            float64 `mapstructure:"HOME_LON"`
	Timezone           string  `mapstructure:"TIMEZONE"`
	DinoDataFile       string  `mapstructure:"DINO_DATA_FILE"`
	SettingsFile       string  `mapstructure:"SETTINGS_FILE"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":5000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("NASA_API_KEY", "DEMO_KEY")
	viper.SetDefault("AVWX_TOKEN", "")
	viper.SetDefault("STRAVA_CLIENT_ID", "")
	viper.SetDefault("STRAVA_CLIENT_SECRET", "")
	viper.SetDefault("STRAVA_REFRESH_TOKEN", "")
	viper.SetDefault("HOME_LAT", 51.963)
	viper.SetDefault("HOME_LON", 8.534)
	viper.SetDefault("TIMEZONE", "Europe/Berlin")
	viper.SetDefault("DINO_DATA_FILE", "dinos.json")
	viper.SetDefault("SETTINGS_FILE", "settings.json")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// Location resolves the configured timezone, falling back to UTC when the
// name does not load. All calendar-day comparisons in the service use this
// one zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
