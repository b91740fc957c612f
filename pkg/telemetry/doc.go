// Package telemetry provides structured logging for the oxbow build
// pipeline, wrapping zerolog with component-scoped child loggers and
// context.Context carriage.
package telemetry
