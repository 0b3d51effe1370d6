package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDateTime 按框架约定把时间格式化为 ISO 8601。
// 亚秒部分默认截断到毫秒，precise 为 true 时保留到微秒；零偏移写作 "Z"。
func FormatDateTime(t time.Time, precise bool) string {
	var b strings.Builder
	b.WriteString(t.Format("2006-01-02T15:04:05"))

	if ns := t.Nanosecond(); ns != 0 {
		if precise {
			fmt.Fprintf(&b, ".%06d", ns/int(time.Microsecond))
		} else {
			fmt.Fprintf(&b, ".%03d", ns/int(time.Millisecond))
		}
	}

	if _, offset := t.Zone(); offset == 0 {
		b.WriteByte('Z')
	} else {
		b.WriteString(t.Format("-07:00"))
	}
	return b.String()
}

// FormatDuration 把时长格式化为总秒数字符串，始终带小数部分，例如 "90.0"
func FormatDuration(d time.Duration) string {
	s := strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
