package utils

import (
	"strconv"
	"strings"
	"time"
)

const layoutStamp = "2006-01-02 15:04"

// FormatStamp renders t to the minute in its own location.
func FormatStamp(t time.Time) string {
	return t.Format(layoutStamp)
}

// FormatThousands renders an integer amount with dot thousand separators,
// the way prices are shown in the dashboard.
func FormatThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	out.WriteString(sign)
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
