package markdown

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)

// Preprocess rewrites **bold** spans to <strong> tags outside fenced code.
// CommonMark refuses emphasis in some positions (for example directly before
// CJK punctuation), which posts rely on rendering as bold anyway.
func Preprocess(source string) string {
	if source == "" || !strings.Contains(source, "**") {
		return source
	}

	lines := strings.SplitAfter(source, "\n")
	var open string // the run that opened the current fence
	for i, line := range lines {
		run, info := fenceRun(line)
		if open != "" {
			// A closing fence repeats the opening character at least as many
			// times and carries no info string.
			if run != "" && run[0] == open[0] && len(run) >= len(open) && info == "" {
				open = ""
			}
			continue
		}
		if run != "" && !(run[0] == '`' && strings.Contains(info, "`")) {
			open = run
			continue
		}
		lines[i] = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
	}
	return strings.Join(lines, "")
}

// fenceRun returns the run of three or more backticks or tildes opening line,
// indented by at most three spaces, and the trimmed text after it.
func fenceRun(line string) (run, info string) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return "", ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return "", ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return "", ""
	}
	return trimmed[:n], strings.TrimSpace(trimmed[n:])
}
