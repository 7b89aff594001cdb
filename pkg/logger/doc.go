// Package logger is a thin factory over log/slog with consistent attribute
// helpers for the rest of the module.
//
// Defaults are production-safe (JSON, info level, stdout); development setups
// opt into text output:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithService("membergate"),
//	)
//	logger.SetAsDefault(log)
package logger
