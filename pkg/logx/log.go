package logx

import (
	"errors"
	"log"
	"syscall"

	"go.uber.org/zap"
)

// Logger is safe to use before NewLogger is called; it discards everything.
var Logger = zap.NewNop()

func NewLogger(env string) {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		log.Fatalf(`level=error msg="%s" desc="%s"`, err.Error(), "could not create new zap instance")
	}

	Logger = logger
}

// Sync flushes buffered entries. Call it once on shutdown.
func Sync() {
	err := Logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		// https://github.com/uber-go/zap/issues/328
		return
	}
	if err != nil {
		log.Printf(`level=error msg="%s" desc="%s"`, err.Error(), "could not sync (flush) logger")
	}
}
