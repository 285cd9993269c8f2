// Package log provides blackbox's structured logging facade and utilities.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context, backed by a formatter/outputs
// pipeline. The recorder's diagnostic channel (file rotations, retention
// deletions, degraded-mode transitions) flows through this facade and never
// raises into the instrumented application.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("session"), log.Str("prefix", "trace"))
//	l.Info("trace file opened", log.Uint64("seq", 3))
//
// Use NewNopLogger where diagnostics are unwanted, e.g. library consumers
// that handle lifecycle callbacks themselves.
package log
