/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Supported log levels, from most to least verbose
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levels = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// levelOverride takes precedence over LOG_LEVEL once set
var levelOverride atomic.Pointer[string]

// Logger provides structured logging for compute client components
type Logger struct {
	logger    logr.Logger
	component string
	logLevel  string
}

// NewLogger creates a new logger for the specified component
func NewLogger(component string) *Logger {
	return &Logger{
		logger:    log.Log.WithName(component),
		component: component,
		logLevel:  getLogLevel(),
	}
}

// FromContext creates a logger from the logr logger carried by ctx
func FromContext(ctx context.Context, component string) *Logger {
	return &Logger{
		logger:    log.FromContext(ctx).WithName(component),
		component: component,
		logLevel:  getLogLevel(),
	}
}

// ValidLevel reports whether level is one of the supported log levels
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(level)]
	return ok
}

// SetLevel overrides the LOG_LEVEL environment variable for loggers created afterwards
func SetLevel(level string) {
	level = strings.ToLower(level)
	levelOverride.Store(&level)
}

// Info logs an info message with structured key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	if l.shouldLog(LevelInfo) {
		l.logger.Info(msg, keysAndValues...)
	}
}

// Error logs an error message with structured key-value pairs
func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(err, msg, keysAndValues...)
}

// Debug logs a debug message (only shown if debug logging is enabled)
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if l.shouldLog(LevelDebug) {
		l.logger.V(1).Info(msg, keysAndValues...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	if l.shouldLog(LevelWarn) {
		l.logger.Info("WARNING: "+msg, keysAndValues...)
	}
}

// WithValues returns a new logger with additional key-value pairs
func (l *Logger) WithValues(keysAndValues ...interface{}) *Logger {
	return &Logger{
		logger:    l.logger.WithValues(keysAndValues...),
		component: l.component,
		logLevel:  l.logLevel,
	}
}

// WithName returns a new logger with an additional name segment
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		logger:    l.logger.WithName(name),
		component: l.component + "." + name,
		logLevel:  l.logLevel,
	}
}

// GetComponent returns the component name
func (l *Logger) GetComponent() string {
	return l.component
}

func getLogLevel() string {
	if level := levelOverride.Load(); level != nil && *level != "" {
		return *level
	}
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if level == "" {
		return LevelInfo
	}
	return level
}

// shouldLog determines if a message should be logged based on the current log level
func (l *Logger) shouldLog(messageLevel string) bool {
	currentLevel, exists := levels[l.logLevel]
	if !exists {
		currentLevel = levels[LevelInfo]
	}
	msgLevel, exists := levels[messageLevel]
	if !exists {
		msgLevel = levels[LevelInfo]
	}
	return msgLevel >= currentLevel
}

// Component loggers. They are built on every call so that a level set by
// SetLevel or a logger installed with log.SetLogger is picked up.

// ClientLogger is used by the compute client
func ClientLogger() *Logger {
	return NewLogger("gce").WithName("client")
}

// WrapperLogger is used by the Compute Engine API wrapper
func WrapperLogger() *Logger {
	return NewLogger("gce").WithName("wrapper")
}

// CacheLogger is used by the caching wrapper
func CacheLogger() *Logger {
	return NewLogger("gce").WithName("cache")
}

// CLILogger is used by the command line tool
func CLILogger() *Logger {
	return NewLogger("gcpcompute")
}
