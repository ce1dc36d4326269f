package rules

import (
	"errors"
	"testing"

	"github.com/heartmarshall/wubigen/internal/codetable"
	"github.com/heartmarshall/wubigen/internal/domain"
)

func testTable() *codetable.Table {
	return codetable.New(map[rune]string{
		'你': "abcd",
		'好': "efgh",
		'金': "a",
		'木': "b",
		'水': "c",
		'火': "d",
		'土': "e",
		'打': "rghy",
		'字': "pbf",
		'一': "g",
	})
}

func encode(t *testing.T, phrase string, rule domain.Rule) string {
	t.Helper()
	code, err := NewEngine(testTable()).Encode(phrase, rule)
	if err != nil {
		t.Fatalf("Encode(%q, %s): %v", phrase, rule, err)
	}
	return code
}

func TestStandard(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{"n=1 full code", "打", "rghy"},
		{"n=1 short code padded", "一", "gxxx"},
		{"n=1 unknown char", "猫", "xxxx"},
		{"n=2 firstTwo each", "你好", "abef"},
		{"n=3 first+first+firstTwo", "你好打", "aerg"},
		{"n=4 first of each", "你好打字", "aerp"},
		{"n=5 first of c1..c3 and last", "金木水火土", "abce"},
		{"n=6 middle chars ignored", "金木水火火土", "abce"},
		{"unknown chars fall back to x", "你猫", "abxx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, tt.phrase, domain.RuleStandard); got != tt.want {
				t.Errorf("standard(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestOnePerChar(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{"n=1 matches standard", "打", "rghy"},
		{"n=2 matches standard", "你好", "abef"},
		{"n=3 matches standard", "你好打", "aerg"},
		{"n=4 first of each", "你好打字", "aerp"},
		{"n=5 first of each, take 4", "金木水火土", "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, tt.phrase, domain.RuleOnePerChar); got != tt.want {
				t.Errorf("onePerChar(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestTwoTwoOne(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{"n=1 matches standard", "打", "rghy"},
		{"n=2 matches standard", "你好", "abef"},
		{"n=3 firstTwo+firstTwo+first, take 4", "你好打", "abef"},
		{"n=4 same shape", "金木你好", "axbx"},
		{"n=5 remaining firsts never reached", "你好打字一", "abef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, tt.phrase, domain.RuleTwoTwoOne); got != tt.want {
				t.Errorf("twoTwoOne(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestAllTwo(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{"single char padded", "金", "axxx"},
		{"single short-code char padded", "一", "gxxx"},
		{"two chars fill exactly", "打字", "rgpb"},
		{"third char never contributes", "打字你", "rgpb"},
		{"unknown char contributes xx", "猫", "xxxx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode(t, tt.phrase, domain.RuleAllTwo); got != tt.want {
				t.Errorf("allTwo(%q) = %q, want %q", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestManualReturnsEmpty(t *testing.T) {
	if got := encode(t, "任意词组", domain.RuleManual); got != "" {
		t.Errorf("manual rule should return empty code, got %q", got)
	}
}

func TestWubiPinyin(t *testing.T) {
	// Standard code for 打字 is rg+pb; pinyin initials are d+z.
	if got := encode(t, "打字", domain.RuleWubiPinyin); got != "rgpbdz" {
		t.Errorf("wubiPinyin(打字) = %q, want %q", got, "rgpbdz")
	}
}

func TestEncode_InvalidRule(t *testing.T) {
	engine := NewEngine(testTable())
	for _, rule := range []domain.Rule{0, 7} {
		_, err := engine.Encode("打字", rule)
		if !errors.Is(err, domain.ErrInvalidRule) {
			t.Errorf("Encode with rule %d: error = %v, want ErrInvalidRule", rule, err)
		}
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"two chars", "打字", "dz"},
		{"greeting", "你好", "nh"},
		{"latin yields nothing", "hello", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initials(tt.text); got != tt.want {
				t.Errorf("Initials(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
