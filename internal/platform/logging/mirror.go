package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc sees every record that passed the level check, e.g. to forward
// it to an OTLP log exporter. args include fields bound through With.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Value // holds MirrorFunc

// SetMirror installs fn for the whole process. nil removes it.
func SetMirror(fn MirrorFunc) {
	mirror.Store(fn)
}

func currentMirror() MirrorFunc {
	fn, _ := mirror.Load().(MirrorFunc)
	return fn
}
