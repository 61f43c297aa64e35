package respond

import (
	"strings"
	"testing"
)

func TestClean_DropsRoleMarkerLines(t *testing.T) {
	raw := "System: you are a helpful bot\nIn the name of Allah, the Most Merciful, the Most Compassionate.\nPrayer is a pillar of Islam.\nAssistant: extra\nAnd Allah knows best."
	out := Clean(raw)

	if strings.Contains(strings.ToLower(out), "system:") {
		t.Error("system marker line survived cleaning")
	}
	if strings.Contains(strings.ToLower(out), "assistant:") {
		t.Error("assistant marker line survived cleaning")
	}
	if !strings.Contains(out, "Prayer is a pillar of Islam.") {
		t.Error("content line was lost")
	}
}

func TestClean_EnforcesOpening(t *testing.T) {
	out := Clean("Prayer is obligatory five times a day.")
	if !strings.HasPrefix(out, "As-salamu alaykum. ") {
		t.Errorf("missing greeting prefix: %q", out)
	}

	kept := Clean("Bismillah. Prayer is obligatory.")
	if !strings.HasPrefix(kept, "Bismillah") {
		t.Errorf("existing opening must be kept: %q", kept)
	}
	if strings.HasPrefix(kept, "As-salamu alaykum. Bismillah") {
		t.Error("greeting must not be prepended when an opening exists")
	}
}

func TestClean_EnforcesClosing(t *testing.T) {
	out := Clean("In the name of Allah. Prayer is obligatory.")
	if !strings.HasSuffix(out, "And Allah knows best.") {
		t.Errorf("missing closing: %q", out)
	}

	kept := Clean("In the name of Allah. Prayer is obligatory. Allah knows best.")
	if strings.Count(kept, "Allah knows best") != 1 {
		t.Errorf("closing must not be duplicated: %q", kept)
	}
}

func TestClean_StripsLeadingTokens(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"code fence", "```\nIn the name of Allah. Fasting purifies the soul. And Allah knows best."},
		{"markdown heading", "## In the name of Allah. Fasting purifies the soul. And Allah knows best."},
		{"answer prefix", "Answer: In the name of Allah. Fasting purifies the soul. And Allah knows best."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Clean(tt.raw)
			if !strings.HasPrefix(out, "In the name of Allah") {
				t.Errorf("leading token not stripped: %q", out)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Prayer is obligatory.",
		"System: hidden\nSome answer text here.",
		"In the name of Allah. Full answer. And Allah knows best.",
		"```\n# Heading\nAnswer: body text",
	}
	for _, raw := range inputs {
		once := Clean(raw)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\nonce:  %q\ntwice: %q", raw, once, twice)
		}
	}
}

func TestIsAcceptable(t *testing.T) {
	long := strings.Repeat("Prayer is a pillar of Islam. ", 4)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"substantive answer", long, true},
		{"too short", "Yes.", false},
		{"whitespace only", "   \n\t  ", false},
		{"refusal", "I cannot answer that question because it falls outside my scope entirely.", false},
		{"self disclosure", "As an AI, I can share that prayer is one of the five pillars of Islam.", false},
		{"missing information", "I don't have enough information about that topic to respond properly here.", false},
		{"refusal case insensitive", "I CANNOT ANSWER this, though the question is interesting and well formed.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAcceptable(tt.text); got != tt.want {
				t.Errorf("IsAcceptable(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
