// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// DefaultName is the logger name used by InitLogger for the global logger.
const DefaultName = "curl2py"

var (
	mu      sync.Mutex
	loggers = map[string]*log.Logger{}
)

// InitLogger sets up Apex with a custom handler and a log level from the
// CURL2PY_LOG env variable.
func InitLogger() {
	log.SetHandler(&CustomHandler{Name: DefaultName, Writer: os.Stderr})
	log.SetLevel(Level())
}

// Level resolves the configured level, ERROR when unset or unparsable.
func Level() log.Level {
	level := strings.ToUpper(os.Getenv("CURL2PY_LOG"))
	if level == "" {
		level = "ERROR"
	}
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.ErrorLevel
	}
	return l
}

// Get returns the logger registered under name, creating it on first use.
// Every call with the same name returns the same instance.
func Get(name string) log.Interface {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}

	l := &log.Logger{
		Handler: &CustomHandler{Name: name, Writer: os.Stderr},
		Level:   Level(),
	}
	loggers[name] = l

	l.Debugf("init logger with name=%s and level=%s", name, l.Level)
	return l
}

// CustomHandler formats log messages as "time - name - LEVEL - message" and
// writes them to Writer.
type CustomHandler struct {
	Name   string
	Writer io.Writer

	mu sync.Mutex
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintf(h.Writer, "%s - %s - %s - %s\n",
		ts.Format("2006-01-02 15:04:05"),
		h.Name,
		strings.ToUpper(e.Level.String()),
		e.Message)
	return err
}
