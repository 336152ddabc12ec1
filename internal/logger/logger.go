/**
 * @description
 * Structured logger for the CourtEdge backend.
 * Info messages go to stdout, errors to stderr, so hosted log collectors
 * label severities correctly.
 *
 * @dependencies
 * - standard "os"
 * - standard "log"
 * - standard "fmt"
 */

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	// InfoLogger writes to stdout
	InfoLogger *log.Logger
	// ErrorLogger writes to stderr
	ErrorLogger *log.Logger
)

func init() {
	InfoLogger = log.New(os.Stdout, "", 0)
	ErrorLogger = log.New(os.Stderr, "", 0)
}

// Info logs an info message to stdout
func Info(format string, v ...interface{}) {
	InfoLogger.Println(fmt.Sprintf(format, v...))
}

// Error logs an error message to stderr
func Error(format string, v ...interface{}) {
	ErrorLogger.Println(fmt.Sprintf(format, v...))
}

// Fatal logs an error and exits
func Fatal(format string, v ...interface{}) {
	ErrorLogger.Fatalln(fmt.Sprintf(format, v...))
}

// New creates a new logger that writes to the specified writer
func New(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}
