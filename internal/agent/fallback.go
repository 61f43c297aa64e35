package agent

import (
	"fmt"
	"strings"
)

// Fixed answer templates. These are returned verbatim (with placeholders
// filled) whenever a question is gated out or generation fails, so the
// pipeline can always produce an answer without the generator.

const inappropriateAnswer = `As-salamu alaykum.

The Prophet Muhammad (peace be upon him) said: "Whoever believes in Allah and the Last Day, let him speak good or remain silent." (Bukhari)

I'm here to provide beneficial Islamic knowledge. Let's focus on questions that bring us closer to Allah and increase our beneficial knowledge.

May Allah guide us to what is good and protect us from what is harmful.`

const scholarAnswerTemplate = `As-salamu alaykum.

For this specific matter involving %s, I strongly recommend consulting with qualified Islamic scholars who can:
- Consider all details of your specific situation
- Provide personalized guidance based on comprehensive Islamic jurisprudence
- Take into account contemporary contexts and individual circumstances
- Reference appropriate classical texts and scholarly opinions

Islamic scholars have the necessary training to apply Islamic principles to complex real-world situations while maintaining authenticity and accuracy.

May Allah grant us access to beneficial knowledge and righteous scholars.`

const genericFallbackTemplate = `As-salamu alaykum. Regarding your question about "%s":

I've consulted our Islamic knowledge sources. %s

For detailed personal guidance on specific situations, I recommend consulting with qualified Islamic scholars who can consider all aspects of your circumstance.

May Allah grant us understanding of His religion and guide us to what pleases Him.`

const fiqhFallbackTemplate = `As-salamu alaykum. Regarding your jurisprudential question about "%s":

This matter requires detailed fiqh analysis that I could not complete at this time. Questions of this nature are best addressed by qualified Hanafi scholars who can consult the classical texts directly, including Al-Hidayah, Fatawa Alamgiri, Radd al-Muhtar, and Bada'i' al-Sana'i'.

I recommend reaching out to a local scholar or a trusted fatwa institution so that all details of your situation can be considered.

May Allah grant us understanding of His religion and guide us to what pleases Him.`

// genericGuidanceNote fills the guidance slot when retrieval found nothing.
const genericGuidanceNote = "While I could not locate a specific passage for this question, the general principles of the Quran and Sunnah apply: seek what is beneficial, avoid what is harmful, and act with sincerity."

// maxFallbackSnippets bounds how many retrieved chunks are embedded in the
// generic fallback as general guidance.
const maxFallbackSnippets = 2

func scholarAnswer(topic string) string {
	return fmt.Sprintf(scholarAnswerTemplate, topic)
}

func fiqhFallback(question string) string {
	return fmt.Sprintf(fiqhFallbackTemplate, question)
}

func genericFallback(question string, chunks []string) string {
	guidance := genericGuidanceNote
	if len(chunks) > 0 {
		if len(chunks) > maxFallbackSnippets {
			chunks = chunks[:maxFallbackSnippets]
		}
		guidance = "Here is relevant guidance from our sources:\n\n" + strings.Join(chunks, "\n\n")
	}
	return fmt.Sprintf(genericFallbackTemplate, question, guidance)
}
