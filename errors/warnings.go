package errors

import (
	"fmt"
	"strings"
)

// Warnings accumulates non-blocking diagnostics. The zero value is ready to
// use and a nil *Warnings discards everything.
type Warnings struct {
	list []string
}

// Addf records a formatted warning.
func (w *Warnings) Addf(format string, args ...any) {
	if w == nil {
		return
	}
	if len(args) > 0 {
		w.list = append(w.list, fmt.Sprintf(format, args...))
		return
	}
	w.list = append(w.list, format)
}

// List returns the recorded warnings in order.
func (w *Warnings) List() []string {
	if w == nil {
		return nil
	}
	return w.list
}

// Len returns the number of recorded warnings.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.list)
}

// Contains reports whether any warning contains substr.
func (w *Warnings) Contains(substr string) bool {
	for _, s := range w.List() {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func (w *Warnings) String() string {
	return strings.Join(w.List(), "\n")
}
