// Package format holds small display helpers shared by the CLI commands.
package format

import (
	"fmt"
	"time"
)

// Duration renders a duration in a compact human-readable form: "45s",
// "1m 30s", "2h 30m", "1d 6h".
func Duration(d time.Duration) string {
	total := int64(d.Seconds())

	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		m, s := total/60, total%60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm %ds", m, s)
	case total < 86400:
		h, m := total/3600, (total%3600)/60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	default:
		days, h := total/86400, (total%86400)/3600
		if h == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %dh", days, h)
	}
}

// RelativeTime renders a timestamp relative to now: "just now", "5m ago".
func RelativeTime(t time.Time) string {
	elapsed := time.Since(t)
	if elapsed < 0 {
		return "in the future"
	}
	if elapsed < time.Minute {
		return "just now"
	}
	return Duration(elapsed) + " ago"
}

// LocalTime renders a timestamp in the local timezone.
func LocalTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// Bytes renders a byte count in human-readable form.
func Bytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n >= gb:
		return fmt.Sprintf("%.2f GB", float64(n)/gb)
	case n >= mb:
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.2f KB", float64(n)/kb)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Truncate shortens a string to at most maxLen runes, with an ellipsis when
// something was cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
