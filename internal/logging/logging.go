// Package logging builds the process-wide logger. Everything logs to stderr
// so the report renderers own stdout.
package logging

import (
	"go.uber.org/zap"
)

// New returns a sugared logger. Debug mode is verbose and caller-annotated;
// the default stays quiet below warnings so lint output is not drowned out.
func New(debug bool) *zap.SugaredLogger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		panic("logger init: " + err.Error())
	}
	return logger.Sugar()
}
