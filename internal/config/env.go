package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envReader reads typed values from the process environment and collects
// every parse or validation failure so Load can report them together.
// Blank values count as unset.
type envReader struct {
	errs []error
}

func (r *envReader) fail(format string, args ...any) {
	r.errs = append(r.errs, fmt.Errorf(format, args...))
}

func (r *envReader) raw(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func (r *envReader) str(key, def string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return def
}

func (r *envReader) boolean(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail("parse %s: %w", key, err)
		return def
	}
	return b
}

// integer rejects values below min.
func (r *envReader) integer(key string, def, min int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail("parse %s: %w", key, err)
		return def
	}
	if n < min {
		r.fail("%s must be >= %d", key, min)
	}
	return n
}

// positive rejects zero and negative durations.
func (r *envReader) positive(key string, def time.Duration) time.Duration {
	d := r.duration(key, def)
	if d <= 0 {
		r.fail("%s must be > 0", key)
	}
	return d
}

// nonNegative allows zero, which callers treat as "no bound".
func (r *envReader) nonNegative(key string, def time.Duration) time.Duration {
	d := r.duration(key, def)
	if d < 0 {
		r.fail("%s must be >= 0", key)
	}
	return d
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail("parse %s: %w", key, err)
		return def
	}
	return d
}

func (r *envReader) list(key, def string) []string {
	var out []string
	for _, item := range strings.Split(r.str(key, def), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// uptraceDSNFromHeaders pulls uptrace-dsn out of an OTEL_EXPORTER_OTLP_HEADERS
// style list such as `a=1, uptrace-dsn="https://..."`.
func uptraceDSNFromHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(item, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(v), `"'`)
		}
	}
	return ""
}
