package nlp

import (
	"regexp"
	"strings"
)

// Sentence-final particles and interjections that carry no scheduling
// information. Removed wherever they appear as standalone words.
var fillerWords = map[string]struct{}{
	"ạ": {}, "nhé": {}, "nha": {}, "đi": {}, "nào": {}, "ơi": {},
	"à": {}, "ừm": {}, "nhá": {}, "nè": {}, "đấy": {}, "đó": {},
}

// Spelling variants collapsed into canonical forms. Applied in order.
var replacements = [][2]string{
	{"xoá", "xóa"},
	{"bthức", "báo thức"},
	{"nhắc nhở", "nhắc"},
	{"lịch trình", "lịch"},
	{"cuộc họp", "họp"},
	{"công việc", "việc"},
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Normalize lower-cases and trims raw text, strips filler particles and
// collapses spelling variants. Pure and idempotent: normalizing normalized
// text returns the same text.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	// Fillers are matched as whole words, not whitespace tokens, so a
	// particle glued to punctuation ("họp nhé!") is still stripped and
	// "đi" inside "điện" is not.
	text = wordRe.ReplaceAllStringFunc(text, func(w string) string {
		if _, filler := fillerWords[w]; filler {
			return ""
		}
		return w
	})
	text = strings.Join(strings.Fields(text), " ")

	// A replacement can recreate the phrase it consumed
	// ("lịch trình trình" shrinks to "lịch trình"), so the pass
	// repeats until the text is a fixed point.
	for {
		prev := text
		for _, r := range replacements {
			text = strings.ReplaceAll(text, r[0], r[1])
		}
		if text == prev {
			break
		}
	}

	return strings.TrimSpace(text)
}
