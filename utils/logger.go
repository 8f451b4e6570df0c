package utils

import (
	"go.uber.org/zap"
)

// Zlog is the shared application logger.
var Zlog *zap.Logger

// InitLogger configures Zlog. Development builds get console output,
// everything else gets production JSON.
func InitLogger(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Zlog = logger
	return nil
}
