package format

import (
	"fmt"
	"strings"
)

// Currency formats an amount in minor units as US dollars.
// Example: Currency(100) => "$1.00"
func Currency(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	major := minor / 100
	cents := minor % 100
	head := thousandSep(major)
	tail := fmt.Sprintf("%02d", cents)
	if neg {
		return "-$" + head + "." + tail
	}
	return "$" + head + "." + tail
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}
