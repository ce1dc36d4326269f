package domain

import "testing"

func TestEntryLine(t *testing.T) {
	e := Entry{Phrase: "打字", Code: "rngf", Weight: 100}
	want := "打字\trngf\t100"
	if got := e.Line(); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Entry
		wantErr bool
	}{
		{"valid", "打字\trngf\t100", Entry{Phrase: "打字", Code: "rngf", Weight: 100}, false},
		{"extra fields ignored", "打字\trngf\t100\tcomment", Entry{Phrase: "打字", Code: "rngf", Weight: 100}, false},
		{"missing weight", "打字\trngf", Entry{}, true},
		{"non-numeric weight", "打字\trngf\thigh", Entry{}, true},
		{"negative weight", "打字\trngf\t-5", Entry{}, true},
		{"empty line", "", Entry{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntry(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseEntry(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRuleIsValid(t *testing.T) {
	for r := RuleStandard; r <= RuleWubiPinyin; r++ {
		if !r.IsValid() {
			t.Errorf("rule %d should be valid", r)
		}
	}
	for _, r := range []Rule{0, 7, -1} {
		if r.IsValid() {
			t.Errorf("rule %d should be invalid", r)
		}
	}
}

func TestRuleSkipsTableCheck(t *testing.T) {
	skips := map[Rule]bool{
		RuleStandard:   false,
		RuleOnePerChar: false,
		RuleTwoTwoOne:  false,
		RuleAllTwo:     false,
		RuleManual:     true,
		RuleWubiPinyin: true,
	}
	for r, want := range skips {
		if got := r.SkipsTableCheck(); got != want {
			t.Errorf("%s.SkipsTableCheck() = %v, want %v", r, got, want)
		}
	}
}

func TestReasonRetriable(t *testing.T) {
	retriable := map[Reason]bool{
		ReasonUncodeableChars: true,
		ReasonNoCodeableChars: true,
		ReasonAlreadyExists:   false,
		ReasonEmptyPhrase:     false,
		ReasonCancelled:       false,
		ReasonWriteError:      false,
	}
	for reason, want := range retriable {
		if got := reason.Retriable(); got != want {
			t.Errorf("%s.Retriable() = %v, want %v", reason, got, want)
		}
	}
}
