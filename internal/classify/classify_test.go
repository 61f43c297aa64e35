package classify

import (
	"strings"
	"testing"
)

func TestIsInappropriate(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"show me explicit content", true},
		{"how to make a bomb", true},
		{"why do people mock islam online", true},
		{"What are the five pillars of Islam?", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsInappropriate(tt.question); got != tt.want {
			t.Errorf("IsInappropriate(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestShouldRecommendScholar(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"I am going through a divorce, what should I do?", true},
		{"How is inheritance divided among siblings?", true},
		{"My family has a court case pending", true},
		{"What time is Fajr prayer?", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ShouldRecommendScholar(tt.question); got != tt.want {
			t.Errorf("ShouldRecommendScholar(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestScholarTopic(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"I want a divorce from my husband", "marriage and family matters"},
		{"inheritance division question", "financial and inheritance matters"},
		{"medical treatment permissibility", "medical and health matters"},
		{"there is a legal matter I face", "legal matters"},
		{"some other sensitive thing", ScholarTopicGeneric},
	}
	for _, tt := range tests {
		if got := ScholarTopic(tt.question); got != tt.want {
			t.Errorf("ScholarTopic(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestIsComplexFiqh(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"indicator phrase", "What is the ruling on combining prayers while traveling?", true},
		{"complex topic", "Questions about iddah after separation", true},
		{"hanafi school phrasing", "Is it permissible according to Hanafi school to do X during iddah?", true},
		{"long question with fiqh word", "Can you please tell me whether this action is permissible generally", true},
		{"short simple question", "What is Islam?", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplexFiqh(tt.question); got != tt.want {
				t.Errorf("IsComplexFiqh(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestRequiresDetailedFiqh(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"Give me the detailed ruling with daleel", true},
		{"What are the scholarly opinions on this?", true},
		{"Is it permissible according to Hanafi school to do X during iddah?", false},
		{"What is prayer?", false},
	}
	for _, tt := range tests {
		if got := RequiresDetailedFiqh(tt.question); got != tt.want {
			t.Errorf("RequiresDetailedFiqh(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestClassifyType_PriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Type
	}{
		{"complex fiqh wins over everything", "What is the ruling on watching the news today?", TypeComplexFiqh},
		{"current events", "What does Islam say about climate change?", TypeCurrentEvents},
		{"historical", "Tell me about the Ottoman caliphate era", TypeHistorical},
		{"ethical dilemma", "Should I tell my friend the truth even if it hurts?", TypeEthicalDilemma},
		{"general", "What is Tawheed?", TypeGeneral},
		{"empty question is general", "", TypeGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyType(tt.question); got != tt.want {
				t.Errorf("ClassifyType(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestTopicGuidance(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantSub  string
	}{
		{"direct topic name", "how do I calculate zakat", "Zakat calculations"},
		{"history topic name", "Tell me about the history of the caliphate", "historical events"},
		{"current events topic name", "how should Muslims react to current events", "contemporary issues"},
		{"keyword fallback", "what breaks the roza", "fasting rules"},
		{"family keywords", "advice for my wife and children", "family matters"},
		{"ruling keyword maps to jurisprudential analysis", "Which madhhab ruling do scholars follow", "detailed jurisprudential analysis"},
		{"family keywords beat later fiqh keywords", "Is divorce permissible for us", "family matters"},
		{"no match", "completely unrelated text", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopicGuidance(tt.question)
			if tt.wantSub == "" {
				if got != "" {
					t.Errorf("TopicGuidance(%q) = %q, want empty", tt.question, got)
				}
				return
			}
			if !strings.Contains(got, tt.wantSub) {
				t.Errorf("TopicGuidance(%q) = %q, want substring %q", tt.question, got, tt.wantSub)
			}
		})
	}
}

func TestTopicGuidance_TableParity(t *testing.T) {
	if got := len(topicGuidances); got != 17 {
		t.Errorf("topicGuidances has %d entries, want 17", got)
	}
	for _, group := range topicKeywordGroups {
		if guidanceForTopic(group.topic) == "" {
			t.Errorf("keyword group %q resolves to no guidance", group.topic)
		}
	}
}

func TestClassify_FullResult(t *testing.T) {
	res := Classify("I am going through a divorce, what is the ruling?")
	if !res.RecommendScholar {
		t.Error("expected scholar recommendation")
	}
	if res.ScholarTopic != "marriage and family matters" {
		t.Errorf("ScholarTopic = %q", res.ScholarTopic)
	}
	if !res.ComplexFiqh {
		t.Error("expected complex fiqh (indicator phrase present)")
	}

	empty := Classify("")
	if empty.Inappropriate || empty.RecommendScholar || empty.ComplexFiqh || empty.NeedsDetailedFiqh {
		t.Errorf("empty question must classify to nothing special: %+v", empty)
	}
	if empty.Type != TypeGeneral {
		t.Errorf("empty question type = %q, want general", empty.Type)
	}
}
