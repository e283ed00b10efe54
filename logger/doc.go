// Package logger provides structured logging for audioscribe using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Logs are diagnostic
// output; the progress lines shown to the user are printed by the cli
// package, not logged.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("splitter")
//	log.Info("chunk exported", logger.Fields(logger.FieldChunk, 2))
package logger
