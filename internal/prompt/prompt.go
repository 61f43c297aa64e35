// Package prompt builds the instruction text sent to the generator from a
// classified question and its retrieved context.
//
// Every mode shares one system-identity preamble; the mode template fills in
// {question} and {context} placeholders, and a topic guidance block is
// appended when the classifier produced one. Prompt text is transient: it
// exists only for the duration of one generation call.
package prompt

import (
	"strings"
	"unicode"

	"github.com/minbarhq/minbar/internal/classify"
)

// Mode selects the prompt template for one generation call.
type Mode string

const (
	ModeDetailedFiqh   Mode = "detailed_fiqh"
	ModeComplexFiqh    Mode = "complex_fiqh"
	ModeCurrentEvents  Mode = "current_events"
	ModeHistorical     Mode = "historical"
	ModeEthicalDilemma Mode = "ethical_dilemma"
	ModeWithContext    Mode = "with_context"
	ModeWithoutContext Mode = "without_context"
)

// Quality is the coarse relevance tier of retrieved context: how well the
// retrieved chunks cover the question's salient words.
type Quality string

const (
	QualityRich    Quality = "rich"
	QualityGood    Quality = "good"
	QualityMinimal Quality = "minimal"
	QualityPoor    Quality = "poor"
)

// Quality thresholds. Fixed contract values.
const (
	richThreshold       = 0.8
	goodThreshold       = 0.4
	minimalAbsoluteHits = 2
)

// Turn is one prior conversation message rendered into the prompt.
type Turn struct {
	Role    string
	Content string
}

// Input carries everything Compose needs for one generation call.
type Input struct {
	Question string
	Context  string // joined retrieved chunks, may be empty
	History  string // rendered prior-conversation block, may be empty
	Guidance string // topic guidance from the classifier, may be empty
}

// ContextQuality grades how well the retrieved chunks cover the question.
// Relevant words are the distinct question words longer than 3 characters;
// a word counts as matched when it appears anywhere in the retrieved text.
func ContextQuality(question string, chunks []string) Quality {
	if len(chunks) == 0 {
		return QualityPoor
	}

	relevant := relevantWords(question)
	if len(relevant) == 0 {
		// Nothing to measure against; the retrieved context is at least
		// usable.
		return QualityMinimal
	}

	joined := strings.ToLower(strings.Join(chunks, "\n"))
	matched := 0
	for word := range relevant {
		if strings.Contains(joined, word) {
			matched++
		}
	}

	ratio := float64(matched) / float64(len(relevant))
	switch {
	case ratio >= richThreshold:
		return QualityRich
	case ratio >= goodThreshold:
		return QualityGood
	case matched >= minimalAbsoluteHits:
		return QualityMinimal
	default:
		return QualityPoor
	}
}

// ModeForType maps a classified question type and context quality to a
// prompt mode. The detailed/complex fiqh modes are chosen upstream by the
// orchestrator before this mapping applies.
func ModeForType(t classify.Type, quality Quality) Mode {
	switch t {
	case classify.TypeCurrentEvents:
		return ModeCurrentEvents
	case classify.TypeHistorical:
		return ModeHistorical
	case classify.TypeEthicalDilemma:
		return ModeEthicalDilemma
	default:
		switch quality {
		case QualityRich, QualityGood, QualityMinimal:
			return ModeWithContext
		default:
			return ModeWithoutContext
		}
	}
}

// Compose builds the final prompt: system preamble, optional prior
// conversation, the mode template with placeholders filled, and an optional
// topic guidance block.
func Compose(mode Mode, in Input) string {
	var tmpl string
	switch mode {
	case ModeDetailedFiqh:
		tmpl = detailedFiqhTemplate
	case ModeComplexFiqh:
		tmpl = complexFiqhTemplate
	case ModeCurrentEvents:
		tmpl = currentEventsTemplate
	case ModeHistorical:
		tmpl = historicalTemplate
	case ModeEthicalDilemma:
		tmpl = ethicalDilemmaTemplate
	case ModeWithoutContext:
		tmpl = withoutContextTemplate
	default:
		tmpl = withContextTemplate
	}

	body := strings.ReplaceAll(tmpl, "{question}", in.Question)
	body = strings.ReplaceAll(body, "{context}", in.Context)

	var b strings.Builder
	b.WriteString(systemBase)
	if in.History != "" {
		b.WriteString("\n\n")
		b.WriteString(in.History)
	}
	b.WriteString(body)
	if in.Guidance != "" {
		b.WriteString("\n\nTOPIC GUIDANCE: ")
		b.WriteString(in.Guidance)
	}
	return b.String()
}

// RenderHistory renders the most recent turns (up to limit) as the
// prior-conversation block. Returns "" for empty history.
func RenderHistory(turns []Turn, limit int) string {
	if len(turns) == 0 || limit <= 0 {
		return ""
	}
	if len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, turn := range turns {
		label := "Assistant"
		if turn.Role == "user" {
			label = "User"
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// relevantWords extracts the distinct question words longer than 3
// characters, lowercased.
func relevantWords(question string) map[string]struct{} {
	words := make(map[string]struct{})
	var b strings.Builder
	for _, r := range strings.ToLower(question) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 3 {
			words[b.String()] = struct{}{}
		}
		b.Reset()
	}
	if b.Len() > 3 {
		words[b.String()] = struct{}{}
	}
	return words
}
