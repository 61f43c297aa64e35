package prompt

import (
	"strings"
	"testing"

	"github.com/minbarhq/minbar/internal/classify"
)

func TestContextQuality(t *testing.T) {
	tests := []struct {
		name     string
		question string
		chunks   []string
		want     Quality
	}{
		{
			name:     "no retrieval results",
			question: "What are the pillars of Islam?",
			chunks:   nil,
			want:     QualityPoor,
		},
		{
			name:     "no relevant words after filtering",
			question: "is it ok?",
			chunks:   []string{"some retrieved text"},
			want:     QualityMinimal,
		},
		{
			name:     "all words covered",
			question: "pillars islam",
			chunks:   []string{"The Five Pillars of Islam are listed here"},
			want:     QualityRich,
		},
		{
			name:     "roughly half covered",
			question: "pillars islam zebra quantum",
			chunks:   []string{"The Five Pillars of Islam are listed here"},
			want:     QualityGood,
		},
		{
			name:     "two absolute hits below good ratio",
			question: "pillars islam zebra quantum flux capacitor",
			chunks:   []string{"The Five Pillars of Islam are listed here"},
			want:     QualityMinimal,
		},
		{
			name:     "single hit far below thresholds",
			question: "islam zebra quantum flux capacitor timeline",
			chunks:   []string{"Islam is mentioned once here"},
			want:     QualityPoor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContextQuality(tt.question, tt.chunks); got != tt.want {
				t.Errorf("ContextQuality() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModeForType(t *testing.T) {
	tests := []struct {
		qt      classify.Type
		quality Quality
		want    Mode
	}{
		{classify.TypeCurrentEvents, QualityPoor, ModeCurrentEvents},
		{classify.TypeHistorical, QualityRich, ModeHistorical},
		{classify.TypeEthicalDilemma, QualityGood, ModeEthicalDilemma},
		{classify.TypeGeneral, QualityRich, ModeWithContext},
		{classify.TypeGeneral, QualityGood, ModeWithContext},
		{classify.TypeGeneral, QualityMinimal, ModeWithContext},
		{classify.TypeGeneral, QualityPoor, ModeWithoutContext},
	}
	for _, tt := range tests {
		if got := ModeForType(tt.qt, tt.quality); got != tt.want {
			t.Errorf("ModeForType(%q, %q) = %q, want %q", tt.qt, tt.quality, got, tt.want)
		}
	}
}

func TestCompose_FillsPlaceholders(t *testing.T) {
	out := Compose(ModeComplexFiqh, Input{
		Question: "QUESTION-MARKER",
		Context:  "CONTEXT-MARKER",
	})

	if !strings.HasPrefix(out, "You are an Islamic AI Assistant") {
		t.Error("prompt must start with the system preamble")
	}
	if !strings.Contains(out, "QUESTION-MARKER") {
		t.Error("question placeholder not filled")
	}
	if !strings.Contains(out, "CONTEXT-MARKER") {
		t.Error("context placeholder not filled")
	}
	if strings.Contains(out, "{question}") || strings.Contains(out, "{context}") {
		t.Error("unfilled placeholder left in prompt")
	}
}

func TestCompose_WithoutContextOmitsContext(t *testing.T) {
	out := Compose(ModeWithoutContext, Input{
		Question: "What is patience in Islam?",
		Context:  "SHOULD-NOT-APPEAR",
	})
	if strings.Contains(out, "SHOULD-NOT-APPEAR") {
		t.Error("without_context template must not embed retrieved context")
	}
}

func TestCompose_AppendsGuidance(t *testing.T) {
	out := Compose(ModeWithContext, Input{
		Question: "q",
		Guidance: "Focus on prayer rulings.",
	})
	if !strings.Contains(out, "TOPIC GUIDANCE: Focus on prayer rulings.") {
		t.Error("guidance block missing")
	}

	plain := Compose(ModeWithContext, Input{Question: "q"})
	if strings.Contains(plain, "TOPIC GUIDANCE") {
		t.Error("guidance block must be omitted when empty")
	}
}

func TestCompose_IncludesHistory(t *testing.T) {
	history := RenderHistory([]Turn{
		{Role: "user", Content: "What is salah?"},
		{Role: "assistant", Content: "Salah is the ritual prayer."},
	}, 5)

	out := Compose(ModeWithContext, Input{Question: "q", History: history})
	if !strings.Contains(out, "Previous conversation:") {
		t.Error("history block missing")
	}
	if !strings.Contains(out, "User: What is salah?") {
		t.Error("user turn missing from history block")
	}
	if !strings.Contains(out, "Assistant: Salah is the ritual prayer.") {
		t.Error("assistant turn missing from history block")
	}
}

func TestRenderHistory(t *testing.T) {
	if got := RenderHistory(nil, 5); got != "" {
		t.Errorf("empty history should render empty, got %q", got)
	}

	turns := []Turn{
		{Role: "user", Content: "one"},
		{Role: "assistant", Content: "two"},
		{Role: "user", Content: "three"},
	}
	out := RenderHistory(turns, 2)
	if strings.Contains(out, "one") {
		t.Error("history must keep only the most recent turns")
	}
	if !strings.Contains(out, "two") || !strings.Contains(out, "three") {
		t.Error("recent turns missing")
	}
}

func TestCompose_EveryModeSharesPreamble(t *testing.T) {
	modes := []Mode{
		ModeDetailedFiqh, ModeComplexFiqh, ModeCurrentEvents,
		ModeHistorical, ModeEthicalDilemma, ModeWithContext, ModeWithoutContext,
	}
	for _, mode := range modes {
		out := Compose(mode, Input{Question: "q", Context: "c"})
		if !strings.HasPrefix(out, "You are an Islamic AI Assistant") {
			t.Errorf("mode %q missing shared preamble", mode)
		}
	}
}
