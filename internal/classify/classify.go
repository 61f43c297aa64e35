// Package classify decides how an incoming question should be handled:
// refused, referred to a scholar, routed through the jurisprudence path, or
// answered with a type-specific prompt.
//
// Every function is a pure, total function over arbitrary strings — the
// empty question is simply a question that matches nothing. Matching is
// case-insensitive substring matching against the tables in tables.go; this
// is a deliberately simple heuristic, not NLP.
package classify

import "strings"

// Type is the question category used to select a prompt strategy.
type Type string

const (
	TypeComplexFiqh    Type = "complex_fiqh"
	TypeCurrentEvents  Type = "current_events"
	TypeHistorical     Type = "historical"
	TypeEthicalDilemma Type = "ethical_dilemma"
	TypeGeneral        Type = "general"
)

// Result is the full classification of one question, computed fresh per
// question and never cached.
type Result struct {
	Type              Type
	Inappropriate     bool
	RecommendScholar  bool
	ScholarTopic      string
	NeedsDetailedFiqh bool
	ComplexFiqh       bool
	TopicGuidance     string
}

// Classify runs the full classification for a question.
func Classify(question string) Result {
	res := Result{
		Inappropriate:     IsInappropriate(question),
		RecommendScholar:  ShouldRecommendScholar(question),
		NeedsDetailedFiqh: RequiresDetailedFiqh(question),
		ComplexFiqh:       IsComplexFiqh(question),
		Type:              ClassifyType(question),
		TopicGuidance:     TopicGuidance(question),
	}
	if res.RecommendScholar {
		res.ScholarTopic = ScholarTopic(question)
	}
	return res
}

// IsInappropriate reports whether the question contains a blocklisted term.
func IsInappropriate(question string) bool {
	return containsAny(strings.ToLower(question), blocklist)
}

// ShouldRecommendScholar reports whether the question touches a sensitive
// topic that a qualified scholar should handle instead of the generator.
func ShouldRecommendScholar(question string) bool {
	return containsAny(strings.ToLower(question), sensitiveTopics)
}

// ScholarTopic returns the topic label for the scholar-recommendation
// answer: the first matching keyword group, or the generic label.
func ScholarTopic(question string) string {
	lower := strings.ToLower(question)
	for _, group := range scholarTopicGroups {
		if containsAny(lower, group.keywords) {
			return group.label
		}
	}
	return ScholarTopicGeneric
}

// IsComplexFiqh reports whether the question needs jurisprudential
// treatment: an indicator phrase, a complex topic, or complex phrasing
// (more than 6 words plus a fiqh-adjacent word).
func IsComplexFiqh(question string) bool {
	lower := strings.ToLower(question)

	if containsAny(lower, complexIndicators) {
		return true
	}
	if containsAny(lower, complexTopics) {
		return true
	}
	return len(strings.Fields(question)) > 6 && containsAny(lower, complexPhrasingWords)
}

// RequiresDetailedFiqh reports whether the question asks for evidences and
// scholarly apparatus in the answer itself.
func RequiresDetailedFiqh(question string) bool {
	return containsAny(strings.ToLower(question), detailedFiqhIndicators)
}

// ClassifyType returns the question category, checked in fixed priority
// order: complex fiqh first, then current events, historical, ethical
// dilemma, and finally general.
func ClassifyType(question string) Type {
	if IsComplexFiqh(question) {
		return TypeComplexFiqh
	}

	lower := strings.ToLower(question)
	switch {
	case containsAny(lower, currentEventsKeywords):
		return TypeCurrentEvents
	case containsAny(lower, historicalKeywords):
		return TypeHistorical
	case containsAny(lower, ethicalKeywords):
		return TypeEthicalDilemma
	default:
		return TypeGeneral
	}
}

// TopicGuidance returns the guidance string for the first matching topic,
// or "" when no topic matches. Topic names are tried before keyword groups
// so that an explicit mention ("zakat") beats a looser keyword overlap.
func TopicGuidance(question string) string {
	lower := strings.ToLower(question)

	for _, topic := range topicGuidances {
		if strings.Contains(lower, topic.name) {
			return topic.guidance
		}
	}
	for _, group := range topicKeywordGroups {
		if containsAny(lower, group.keywords) {
			return guidanceForTopic(group.topic)
		}
	}
	return ""
}

func guidanceForTopic(name string) string {
	for _, topic := range topicGuidances {
		if topic.name == name {
			return topic.guidance
		}
	}
	return ""
}

// containsAny reports whether lower contains any of the terms.
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
