package slug

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var urlSafe = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"AI Breakthrough Announced Today": "ai-breakthrough-announced-today",
		"  Leading   spaces\tand tabs ":   "leading-spaces-and-tabs",
		"Symbols!@# stripped?":            "symbols-stripped",
		"already-hyphenated title":        "already-hyphenated-title",
		"ÜniCode Dröpped":                 "nicode-drpped",
	}
	for input, want := range cases {
		assert.Equal(t, want, Make(input), "input %q", input)
	}
}

func TestWithTimestampDistinguishesIdenticalTitles(t *testing.T) {
	first := WithTimestamp("Breaking News")
	time.Sleep(2 * time.Millisecond)
	second := WithTimestamp("Breaking News")

	assert.NotEqual(t, first, second)
	assert.Regexp(t, urlSafe, first)
	assert.Regexp(t, urlSafe, second)
	assert.Contains(t, first, "breaking-news-")
}

func TestWithTimestampEmptyTitle(t *testing.T) {
	got := WithTimestamp("!!!")
	assert.Regexp(t, urlSafe, got)
}
