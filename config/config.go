package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Reminder Reminder
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Reminder controls the background sweep that nags learners about
// assessments closing soon. SweepHours is the interval between sweeps;
// LeadDays is how close to the end date an assessment must be before
// reminders go out.
type Reminder struct {
	SweepHours int
	LeadDays   int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REMINDER_SWEEP_HOURS", 24)
	viper.SetDefault("REMINDER_LEAD_DAYS", 2)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Reminder.SweepHours = viper.GetInt("REMINDER_SWEEP_HOURS")
	config.Reminder.LeadDays = viper.GetInt("REMINDER_LEAD_DAYS")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
