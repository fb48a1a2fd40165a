package logging

import (
	"io"
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp     = "app"
	SourceWeb     = "web"
	SourceService = "service"
	SourceBatch   = "batch"
)

var (
	initOnce   sync.Once
	mu         sync.RWMutex
	baseLogger *log.Logger
)

// Init configures the base logger and stdlib log output.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// Logger returns a logfmt logger tagged with the provided source.  Loggers
// keep the level and output the base logger had when they were created.
func Logger(source string) *log.Logger {
	Init()
	mu.RLock()
	defer mu.RUnlock()
	return baseLogger.With("source", source)
}

// StdLogger returns a stdlib logger that writes logfmt output with a source.
func StdLogger(source string) *stdlog.Logger {
	return Logger(source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}

// SetLevel changes the level of loggers created from now on.  Valid levels
// are debug, info, warn, error and fatal.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Init()
	mu.Lock()
	defer mu.Unlock()
	baseLogger.SetLevel(lvl)
	return nil
}

// SetOutput redirects loggers created from now on to w.
func SetOutput(w io.Writer) {
	Init()
	mu.Lock()
	defer mu.Unlock()
	baseLogger.SetOutput(w)
}
