// Package logger initializes the process-wide logrus logger and provides the
// canonical field helpers used across the simulator.
package logger

import (
	"github.com/sirupsen/logrus"
)

// Init configures the standard logger. Development gets colored text, every
// other environment JSON.
func Init(level string, isDevelopment bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if isDevelopment {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// WithGame returns an entry tagged with the canonical game fields.
func WithGame(gameID, seasonID, phase string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"game_id":   gameID,
		"season_id": seasonID,
		"phase":     phase,
	})
}

// WithTeam returns an entry tagged with a team id.
func WithTeam(teamID string) *logrus.Entry {
	return logrus.WithField("team_id", teamID)
}
