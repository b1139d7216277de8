package logger

import (
	"regexp"
	"strings"
)

// ansiSequence matches CSI escapes such as "\x1b[1;33m" and "\x1b[0m".
var ansiSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// stripAnsiCodes drops the styling the pretty logger puts in messages so the
// JSON log file carries plain text.
func stripAnsiCodes(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	return ansiSequence.ReplaceAllString(s, "")
}
