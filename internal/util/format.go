package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats a short duration as "850ms" or "1.25s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatSigned formats v with an explicit sign and two decimals, padded to a
// fixed width so HUD columns do not jitter.
func FormatSigned(v float64) string {
	switch {
	case math.IsNaN(v):
		return "    NaN"
	case math.IsInf(v, 1):
		return "   +Inf"
	case math.IsInf(v, -1):
		return "   -Inf"
	}
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return fmt.Sprintf("%+7.2f", v)
}
