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
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// capture returns a logr.Logger recording every line at verbosity up to 1
func capture(lines *[]string) logr.Logger {
	return funcr.New(func(prefix, args string) {
		*lines = append(*lines, prefix+" "+args)
	}, funcr.Options{Verbosity: 1})
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-component")
	assert.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.GetComponent())
}

func TestFromContext(t *testing.T) {
	var lines []string
	ctx := log.IntoContext(context.Background(), capture(&lines))

	logger := FromContext(ctx, "test-component")
	assert.Equal(t, "test-component", logger.GetComponent())

	logger.Info("listed regions", "project", "p")
	if assert.Len(t, lines, 1) {
		assert.Contains(t, lines[0], "test-component")
		assert.Contains(t, lines[0], `"project"="p"`)
	}
}

func TestWithName(t *testing.T) {
	logger := NewLogger("base")
	childLogger := logger.WithName("child")
	assert.Equal(t, "base.child", childLogger.GetComponent())
}

func TestWithValues(t *testing.T) {
	logger := NewLogger("test")
	loggerWithValues := logger.WithValues("key", "value")
	assert.NotNil(t, loggerWithValues)
	assert.Equal(t, "test", loggerWithValues.GetComponent())
}

func TestComponentLoggers(t *testing.T) {
	assert.Equal(t, "gce.client", ClientLogger().GetComponent())
	assert.Equal(t, "gce.wrapper", WrapperLogger().GetComponent())
	assert.Equal(t, "gce.cache", CacheLogger().GetComponent())
	assert.Equal(t, "gcpcompute", CLILogger().GetComponent())
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected []string
	}{
		{name: "debug", level: "debug", expected: []string{"debug", "info", "WARNING: warn", "error"}},
		{name: "default", level: "", expected: []string{"info", "WARNING: warn", "error"}},
		{name: "warn", level: "WARN", expected: []string{"WARNING: warn", "error"}},
		{name: "error", level: "error", expected: []string{"error"}},
		{name: "unknown falls back to info", level: "verbose", expected: []string{"info", "WARNING: warn", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			var lines []string
			logger := FromContext(log.IntoContext(context.Background(), capture(&lines)), "test")

			logger.Debug("debug")
			logger.Info("info")
			logger.Warn("warn")
			logger.Error(nil, "error")

			var messages []string
			for _, line := range lines {
				for _, msg := range tt.expected {
					if strings.Contains(line, `"msg"="`+msg+`"`) {
						messages = append(messages, msg)
					}
				}
			}
			assert.Equal(t, tt.expected, messages)
		})
	}
}

func TestSetLevelOverridesEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	SetLevel("debug")
	defer SetLevel("")

	var lines []string
	logger := FromContext(log.IntoContext(context.Background(), capture(&lines)), "test")
	logger.Debug("visible")
	assert.Len(t, lines, 1)
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("debug"))
	assert.True(t, ValidLevel("INFO"))
	assert.False(t, ValidLevel("trace"))
	assert.False(t, ValidLevel(""))
}
