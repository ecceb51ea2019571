// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/robowrap/pkg/status"
)

// 🎯 Logger writes human readable progress to the console and structured
// events to zerolog
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.Formatter
	mu        sync.Mutex
}

// 🏭 New creates a new logger. Structured events are written to events at level.
func New(console, events io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: events}).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a logger around an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFormatter(),
		mu:        sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 🎯 WithContext adds both the logger and its zerolog logger to context, so
// packages that only use zerolog.Ctx see the same sink
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return NewContext(l.zlog.WithContext(ctx), l)
}

func resultColor(res status.Result) *color.Color {
	switch res.Status {
	case status.StatusSucceeded:
		return color.New(color.FgGreen)
	case status.StatusSkipped:
		return color.New(color.Faint)
	case status.StatusFailed:
		if res.Reason == status.ReasonSafetyFlag {
			return color.New(color.FgYellow)
		}
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// 📝 LogResult prints the outcome of one job
func (l *Logger) LogResult(ctx context.Context, res status.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, resultColor(res).Sprint(l.formatter.FormatResult(res)))

	ev := l.zlog.Info()
	if res.Status == status.StatusFailed {
		ev = l.zlog.Error().Err(res.Err)
	}
	ev.Str("file", res.File).
		Str("job", res.Job).
		Str("status", res.Status.String()).
		Str("reason", res.Reason.String()).
		Dur("duration", res.Duration).
		Msg("job finished")
}

// 📝 LogReport prints the batch tally
func (l *Logger) LogReport(ctx context.Context, report *status.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := color.New(color.Bold, color.FgGreen)
	if report.Failed() > 0 {
		c = color.New(color.Bold, color.FgRed)
	}
	fmt.Fprintf(l.console, "\n%s\n", c.Sprint(l.formatter.FormatTally(report)))

	l.zlog.Info().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Int("skipped", report.Skipped()).
		Msg("batch finished")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("robowrap")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
