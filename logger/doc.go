// Package logger provides structured logging for the subprocess library
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// Pipelines log spawn, capture, and exit events at debug level with a
// pipeline_id correlation field; library users who want silence get the
// default Nop logger.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.Info("pipeline finished", map[string]interface{}{"exit_code": 0})
package logger
