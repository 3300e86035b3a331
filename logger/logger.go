package logger

import (
	"os"

	"github.com/555cider/admin-server/config"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Init configures the shared logger from the loaded configuration.
func Init() {
	Log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(config.AppConfig.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if config.AppConfig.Log.Format == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
