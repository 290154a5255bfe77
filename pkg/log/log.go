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

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent transfer entries
	nameWidth   = 35 // Base width for source path
	kindWidth   = 6  // Width for operation kind
	sizeWidth   = 12 // Width for byte counts
	statusWidth = 15 // Width for status text
)

// 🎯 TransferOperation represents a finished transfer for logging
type TransferOperation struct {
	Source      string // Source path
	Destination string // Destination path
	Kind        string // Operation kind (copy/move)
	Status      string // Short status text
	Bytes       int64  // Bytes carried by the transfer
	Renamed     bool   // Whether the same-device rename fast path was taken
	Failed      bool   // Whether the operation failed
}

// 📦 BatchOperation represents a batch of transfers for logging
type BatchOperation struct {
	Kind        string // copy or move
	Destination string // Destination path or directory
	Sources     int    // Number of source files
	Concurrency int    // Max transfers in flight
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *BatchOperation
	transfers []TransferOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
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

// 📝 formatTransferOperation formats a transfer for display
func (l *Logger) formatTransferOperation(op TransferOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Renamed:
		symbol = '⟳'
		symbolColor = color.FgCyan
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	// Format kind with color
	var kindColor color.Attribute
	switch op.Kind {
	case "move":
		kindColor = color.FgYellow
	default:
		kindColor = color.FgCyan
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Source),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", sizeWidth, humanize.IBytes(uint64(op.Bytes))),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogTransferOperation logs a finished transfer
func (l *Logger) LogTransferOperation(ctx context.Context, op TransferOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to transfer list
	l.transfers = append(l.transfers, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatTransferOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Str("kind", op.Kind).
		Str("status", op.Status).
		Int64("bytes", op.Bytes).
		Bool("renamed", op.Renamed).
		Bool("failed", op.Failed).
		Msg("transfer operation")
}

// 📝 StartBatch starts a new batch of transfers
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.transfers = nil

	// Print batch header
	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Kind,
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d files", op.Sources),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d workers", op.Concurrency))

	// Log to zerolog
	l.zlog.Info().
		Str("kind", op.Kind).
		Str("destination", op.Destination).
		Int("sources", op.Sources).
		Int("concurrency", op.Concurrency).
		Msg("starting transfer batch")
}

// 📝 EndBatch ends the current batch of transfers
func (l *Logger) EndBatch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	failed := 0
	for _, op := range l.transfers {
		if op.Failed {
			failed++
		}
	}

	// Log summary
	l.zlog.Info().
		Str("kind", l.currentOp.Kind).
		Int("transfers", len(l.transfers)).
		Int("failed", failed).
		Msg("transfer batch complete")

	l.currentOp = nil
	l.transfers = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nativefsText := color.New(color.Bold, color.FgCyan).Sprint("nativefs")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nativefsText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
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

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
