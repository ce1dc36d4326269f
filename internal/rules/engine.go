// Package rules implements the six deterministic phrase-encoding
// algorithms. All rules build on two primitives, the first code and the
// first two codes of a character, and the per-length branching keeps the
// output at four code units as phrases grow.
package rules

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/wubigen/internal/codetable"
	"github.com/heartmarshall/wubigen/internal/domain"
)

const codeWidth = 4

// Engine turns a phrase into a fixed-width code using the loaded code table.
type Engine struct {
	table *codetable.Table
}

// NewEngine creates an Engine over the given code table.
func NewEngine(table *codetable.Table) *Engine {
	return &Engine{table: table}
}

// Encode maps a phrase to its code under the given rule. The phrase must
// already be stripped to its codeable characters. RuleManual returns ""
// because the code is supplied by the caller; every other rule yields a
// lowercase code of exactly four characters, except RuleWubiPinyin which
// appends a variable-length pinyin-initial suffix.
func (e *Engine) Encode(phrase string, rule domain.Rule) (string, error) {
	chars := []rune(phrase)
	switch rule {
	case domain.RuleStandard:
		return e.standard(chars), nil
	case domain.RuleOnePerChar:
		return e.onePerChar(chars), nil
	case domain.RuleTwoTwoOne:
		return e.twoTwoOne(chars), nil
	case domain.RuleAllTwo:
		return e.allTwo(chars), nil
	case domain.RuleManual:
		return "", nil
	case domain.RuleWubiPinyin:
		return e.standard(chars) + Initials(phrase), nil
	}
	return "", fmt.Errorf("%w: %d", domain.ErrInvalidRule, rule)
}

// standard is the rule-1 branch table:
//
//	n=1  full code of the character, truncated/padded to 4
//	n=2  firstTwo + firstTwo
//	n=3  first + first + firstTwo
//	n=4  first of each
//	n≥5  first of c1, c2, c3 and the last character
func (e *Engine) standard(chars []rune) string {
	switch n := len(chars); {
	case n == 0:
		return strings.Repeat(codetable.UnknownFirst, codeWidth)
	case n == 1:
		return fit(e.table.FullCode(chars[0]))
	case n == 2:
		return take(e.table.FirstTwo(chars[0]) + e.table.FirstTwo(chars[1]))
	case n == 3:
		return take(e.table.FirstCode(chars[0]) + e.table.FirstCode(chars[1]) + e.table.FirstTwo(chars[2]))
	case n == 4:
		return take(e.firsts(chars))
	default:
		return take(e.firsts([]rune{chars[0], chars[1], chars[2], chars[n-1]}))
	}
}

// onePerChar shares the short-phrase branches with standard; from four
// characters on it takes the first code of every character.
func (e *Engine) onePerChar(chars []rune) string {
	if len(chars) <= 3 {
		return e.standard(chars)
	}
	return take(e.firsts(chars))
}

// twoTwoOne takes two codes from each of the first two characters and one
// code from every remaining character, capped at four.
func (e *Engine) twoTwoOne(chars []rune) string {
	if len(chars) <= 2 {
		return e.standard(chars)
	}
	var b strings.Builder
	b.WriteString(e.table.FirstTwo(chars[0]))
	b.WriteString(e.table.FirstTwo(chars[1]))
	for _, c := range chars[2:] {
		b.WriteString(e.table.FirstCode(c))
	}
	return take(b.String())
}

// allTwo accumulates two codes per character until four slots are filled,
// truncating the last contribution and right-padding with "x" when the
// phrase runs out early.
func (e *Engine) allTwo(chars []rune) string {
	var b strings.Builder
	for _, c := range chars {
		remaining := codeWidth - b.Len()
		if remaining <= 0 {
			break
		}
		two := e.table.FirstTwo(c)
		if len(two) > remaining {
			two = two[:remaining]
		}
		b.WriteString(two)
	}
	return fit(b.String())
}

func (e *Engine) firsts(chars []rune) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(e.table.FirstCode(c))
	}
	return b.String()
}

// take truncates a code to the fixed width.
func take(code string) string {
	if len(code) > codeWidth {
		return code[:codeWidth]
	}
	return code
}

// fit truncates to the fixed width and right-pads short codes with the
// unknown-character sentinel.
func fit(code string) string {
	code = take(code)
	if len(code) < codeWidth {
		code += strings.Repeat(codetable.UnknownFirst, codeWidth-len(code))
	}
	return code
}
