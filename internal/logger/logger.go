package logger

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	timeColor    = color.New(color.FgHiBlack)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

func prefix() string {
	return timeColor.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

// Info logs general information.
func Info(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), infoColor.Sprintf(format, args...))
}

// Success logs a completed operation.
func Success(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), successColor.Sprintf("✓ "+format, args...))
}

// Warning logs a recoverable problem.
func Warning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), warnColor.Sprintf("⚠ "+format, args...))
}

// Error logs a failure.
func Error(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", prefix(), errorColor.Sprintf("✗ "+format, args...))
}
