package library

import (
	"fmt"
	"runtime/debug"

	"github.com/mborders/logmatic"
	"github.com/sasha-s/go-deadlock"
)

var logger = logmatic.NewLogger()
var logLevel = 4
var logMutex = &deadlock.Mutex{}

func init() {
	logger.SetLevel(logmatic.TRACE)
	logger.ExitOnFatal = false
}

// SetLogLevel sets the highest level LogCLI will print. Levels above it are dropped.
func SetLogLevel(level int) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logLevel = level
}

// LogLevel returns the current threshold set by SetLogLevel.
func LogLevel() int {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logLevel
}

// Logs to the terminal. Level options are: 0 fatal error (stack dump), 1 serious error (stack dump), 2 warning, 3 debug, 4 info, 5 trace (stack dump).
func LogCLI(message interface{}, level int) {
	if level > LogLevel() {
		return
	}
	message = fmt.Sprint(message)
	switch level {
	case 5:
		debug.PrintStack()
		logger.Trace("%v", message)
	case 4:
		logger.Info("%v", message)
	case 3:
		logger.Debug("%v", message)
	case 2:
		logger.Warn("%v", message)
	case 1:
		debug.PrintStack()
		logger.Error("%v", message)
	case 0:
		debug.PrintStack()
		logger.Error("%v", message)
	}
}
