package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Typed environment readers.  Each falls back to the default when the
// variable is unset or unparsable.

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "":
		return d
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

// envList splits a comma separated variable, trimming and upper-casing
// each entry.
func envList(k, d string) map[string]bool {
	out := map[string]bool{}
	for _, p := range strings.Split(envStr(k, d), ",") {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out[p] = true
		}
	}
	return out
}
