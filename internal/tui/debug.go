package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/engine"
)

// DebugLogger logs TUI state, input events, and gesture transitions to
// a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "rocinante-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{file: f, enabled: true}
	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogMouse logs a mouse event.
func LogMouse(msg tea.MouseMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("MOUSE", map[string]any{
		"x":      msg.X,
		"y":      msg.Y,
		"action": int(msg.Action),
		"button": int(msg.Button),
		"alt":    msg.Alt,
	})
}

// LogGesture logs the drag and resize machine state after an input.
func LogGesture(eng *engine.Engine, action string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}

	data := map[string]any{
		"action":       action,
		"drag_phase":   eng.Drag().Phase().String(),
		"resize_phase": eng.Resize().Phase().String(),
	}
	if item := eng.Drag().Item(); item != nil {
		data["drag_item"] = truncateStr(item.Title, 30)
		data["deliberate"] = eng.Drag().Deliberate()
		if target, droppable := eng.Drag().Target(); target != nil {
			data["target_day"] = target.Day
			data["target_start"] = target.StartMinute
			data["droppable"] = droppable
		}
	}
	if item := eng.Resize().Item(); item != nil {
		preview := eng.Resize().Preview()
		data["resize_item"] = truncateStr(item.Title, 30)
		data["handle"] = eng.Resize().Handle().String()
		data["preview_start"] = preview.StartMinute
		data["preview_dur"] = preview.Duration
	}

	debugLog.log("GESTURE", data)
}

// LogCommit logs a persisted placement change.
func LogCommit(id, title string, day, start, duration int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("COMMIT", map[string]any{
		"id":       id,
		"title":    truncateStr(title, 30),
		"day":      day,
		"start":    start,
		"duration": duration,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// truncateStr truncates a string to max length.
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
