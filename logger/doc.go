// Package logger provides structured logging for amalfi instrumentation
// using zerolog.
//
// The combinator packages never log on their own. Loggers built here are
// handed to the instrument package, which logs step invocations at debug
// level.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("ingest").WithComponent("parse")
//	log.Debug("step done", logger.DurationFields(d))
package logger
