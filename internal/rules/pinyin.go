package rules

import (
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// Initials returns the lowercase pinyin initial letters of the Han
// characters in text, in order. Characters without pinyin data contribute
// nothing, so the result may be shorter than the input or empty.
func Initials(text string) string {
	args := pinyin.NewArgs()
	args.Style = pinyin.FirstLetter

	parts := pinyin.LazyPinyin(text, args)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(parts, ""))
}
