// Package logger provides structured logging built on zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
// bootstrap registers the application logger under the service name, so
// other packages fetch it by name instead of passing it around:
//
//	log := logger.Get("fetchkit").WithComponent("httpclient")
//	log.Debug("request sent", logger.Fields("method", "GET", "url", u))
package logger
