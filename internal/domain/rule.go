package domain

import "strconv"

// Rule selects one of the six phrase-encoding algorithms.
// The numeric values are part of the CLI surface (--rule 1..6).
type Rule int

const (
	// RuleStandard is the standard wubi phrase rule: degrade to at most
	// four code units as the phrase grows.
	RuleStandard Rule = iota + 1
	// RuleOnePerChar takes the first code of every character for phrases
	// of four or more characters.
	RuleOnePerChar
	// RuleTwoTwoOne takes two codes from each of the first two characters
	// and one from every remaining character.
	RuleTwoTwoOne
	// RuleAllTwo takes two codes per character until four slots are full.
	RuleAllTwo
	// RuleManual accepts a user-supplied code instead of deriving one.
	RuleManual
	// RuleWubiPinyin appends the phrase's pinyin initials to the
	// RuleStandard code.
	RuleWubiPinyin
)

func (r Rule) String() string {
	switch r {
	case RuleStandard:
		return "standard"
	case RuleOnePerChar:
		return "one_per_char"
	case RuleTwoTwoOne:
		return "two_two_one"
	case RuleAllTwo:
		return "all_two"
	case RuleManual:
		return "manual"
	case RuleWubiPinyin:
		return "wubi_pinyin"
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

func (r Rule) IsValid() bool {
	return r >= RuleStandard && r <= RuleWubiPinyin
}

// SkipsTableCheck reports whether the rule bypasses the "every codeable
// character must be in the code table" validation. Manual codes do not
// consult the table at all; wubi+pinyin tolerates unknown characters by
// falling back to the "x" sentinel.
func (r Rule) SkipsTableCheck() bool {
	return r == RuleManual || r == RuleWubiPinyin
}
