package plan

import (
	"regexp"
	"strings"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// Applied in order; later rules assume emphasis markers are already gone.
var markdownRewrites = []rewrite{
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*]+)\*`), "$1"},
	{regexp.MustCompile(`(?m)^#+\s*`), ""},
	{regexp.MustCompile("```[\\s\\S]*?```"), ""},
	{regexp.MustCompile("`([^`]+)`"), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`), "• "},
	{regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]`), "$1"},
	{regexp.MustCompile(`【([^】]+)】`), "$1"},
}

// CleanMarkdown strips emphasis, headings, code, list bullets and bracket
// decorations from model output.
func CleanMarkdown(text string) string {
	for _, rw := range markdownRewrites {
		text = rw.re.ReplaceAllString(text, rw.repl)
	}
	return strings.TrimSpace(text)
}
