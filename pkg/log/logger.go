package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level orders log messages by severity; a sink shows messages at or above its level
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a name such as "info" or "WARN" into a Level
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warn" {
		return Warning, nil
	}
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// Logger is implemented by the named loggers returned from New and by anything that
// forwards render logs elsewhere, such as the web console.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var (
	mu             sync.Mutex
	leveledBackend logging.LeveledBackend
	defaultLevel   = Notice
	moduleLevels   = map[string]Level{}
)

// New returns the logger for a module. Each package keeps one in a package variable.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all output to sink. Levels set earlier stay in effect.
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	leveledBackend = logging.AddModuleLevel(backend)
	applyLevels()
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every module without a level of its own
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	defaultLevel = level
	applyLevels()
}

// SetModuleLevel overrides the verbosity of a single module, e.g. to quiet the mesh
// loader while debugging the renderer.
func SetModuleLevel(module string, level Level) {
	mu.Lock()
	defer mu.Unlock()

	moduleLevels[module] = level
	applyLevels()
}

func applyLevels() {
	leveledBackend.SetLevel(backendLevels[defaultLevel], "")
	for module, level := range moduleLevels {
		leveledBackend.SetLevel(backendLevels[level], module)
	}
}

func init() {
	SetSink(os.Stdout)
}
