package classify

// Keyword tables for question classification. All matching is
// case-insensitive substring matching over the raw question; the tables are
// data so they can be tested and extended without touching the logic.

// blocklist marks questions the assistant refuses outright: explicit
// content, incitement, and mockery of core religious symbols.
var blocklist = []string{
	"explicit",
	"porn",
	"nude",
	"sexual act",
	"sex video",
	"how to kill",
	"kill someone",
	"make a bomb",
	"build a bomb",
	"terrorist attack",
	"join isis",
	"suicide method",
	"how to commit suicide",
	"curse allah",
	"insult allah",
	"insult the prophet",
	"mock the quran",
	"mock islam",
}

// sensitiveTopics route the question to a human scholar instead of the
// generator: personal rulings with real-world legal or medical stakes.
var sensitiveTopics = []string{
	"divorce",
	"marriage dispute",
	"inheritance",
	"financial dispute",
	"legal matter",
	"court case",
	"medical emergency",
	"life threatening",
	"specific fatwa",
	"personal fiqh ruling",
	"court ruling",
	"marriage crisis",
	"family dispute",
	"legal ruling",
}

// scholarTopicGroups map keyword groups to the topic label used in the
// scholar-recommendation template. First matching group wins; the generic
// label is the fallback.
var scholarTopicGroups = []struct {
	label    string
	keywords []string
}{
	{label: "marriage and family matters", keywords: []string{"divorce", "marriage", "marital"}},
	{label: "financial and inheritance matters", keywords: []string{"inheritance", "financial", "money dispute"}},
	{label: "medical and health matters", keywords: []string{"medical", "health emergency", "treatment"}},
	{label: "legal matters", keywords: []string{"legal", "court", "dispute"}},
}

// ScholarTopicGeneric is the fallback label when no keyword group matches.
const ScholarTopicGeneric = "this specific Islamic ruling"

// complexIndicators are linguistic markers of a jurisprudential question.
var complexIndicators = []string{
	"ruling on", "according to hanafi", "hanafi school", "school of thought",
	"fiqh ruling", "is it permissible", "is it allowed", "halal or haram",
	"what is the hukum", "is it valid", "detailed ruling", "jurisprudential",
	"classical opinion", "scholarly opinion", "madhab", "madhhab",
	"is it makruh", "is it wajib", "is it sunnah", "what is the daleel",
	"evidences for", "proofs for", "islamic ruling", "shariah ruling",
	"what does hanafi", "hanafi position", "hanafi view", "fiqh opinion",
}

// complexTopics are subject areas that need jurisprudential treatment even
// without an explicit indicator phrase.
var complexTopics = []string{
	"mourning", "grief", "black color", "clothing color", "customs",
	"inheritance", "financial rulings", "marriage conditions",
	"divorce procedures", "prayer validity", "fasting compensation",
	"zakat calculation", "business transactions", "medical issues",
	"funeral rites", "mourning period", "iddah", "menstruation",
	"post-natal bleeding", "janabah", "tayammum", "qada prayer",
	"interest", "riba", "insurance", "banking", "investments",
	"salah", "wudu", "ghusl", "taharah", "halal food", "slaughter",
	"financial", "business", "trade", "contract", "loan",
}

// complexPhrasingWords combine with question length (>6 words) to flag
// complex phrasing.
var complexPhrasingWords = []string{"fiqh", "ruling", "permissible", "hanafi", "shafi", "maliki"}

// detailedFiqhIndicators request evidences and scholarly apparatus in the
// answer itself.
var detailedFiqhIndicators = []string{
	"detailed ruling", "evidences", "proofs", "daleel", "evidence from quran",
	"hadith evidence", "scholarly opinions", "difference of opinion",
	"classical texts", "jurisprudential reasoning", "with proofs",
	"with evidences", "with daleel", "quranic evidence", "hadith proof",
	"comprehensive ruling", "full explanation",
}

var currentEventsKeywords = []string{
	"current", "recent", "news", "today", "nowadays", "modern", "contemporary",
	"palestine", "gaza", "israel", "conflict", "war", "crisis", "political",
	"climate change", "global warming", "pandemic", "covid", "technology",
	"social media", "internet", "ai", "artificial intelligence",
}

var historicalKeywords = []string{
	"history", "historical", "past", "century", "year ago", "in the past",
	"ottoman", "caliphate", "islamic empire", "golden age", "historical event",
	"world war", "battle", "ancient", "medieval",
}

var ethicalKeywords = []string{
	"should i", "what should", "what would islam say about", "is it permissible",
	"is it halal", "ethical", "moral", "dilemma", "problem", "issue",
	"difficult situation", "challenge", "decision",
}

// topicGuidances is the ordered topic→guidance table for the first lookup
// pass: the topic name itself as a substring of the question. First match
// wins.
var topicGuidances = []struct {
	name     string
	guidance string
}{
	{"prayer", "Focus on prayer rulings, times, conditions, spiritual benefits, and related Quran/Hadith evidences."},
	{"fasting", "Explain fasting rules, exemptions, spiritual benefits, Ramadan specifics with proper Islamic evidences."},
	{"zakat", "Detail Zakat calculations, conditions, recipients, spiritual importance with classical references."},
	{"hajj", "Describe Hajj rites, conditions, spiritual significance, preparations with authentic sources."},
	{"quran", "Provide Quranic guidance, interpretation principles, recitation benefits with proper tafsir references."},
	{"hadith", "Explain Hadith sciences, authenticity criteria, application in daily life with collection references."},
	{"fiqh", "Provide jurisprudential rulings with classical evidences, scholarly opinions, and practical applications."},
	{"aqeedah", "Explain Islamic beliefs, Tawheed, articles of faith with Quranic and rational evidences."},
	{"seerah", "Share Prophet Muhammad's life lessons, historical context with authentic biographical sources."},
	{"ethics", "Teach Islamic manners, character development, social conduct with Quran/Hadith foundations."},
	{"current events", "Apply Islamic principles to contemporary issues while maintaining traditional perspectives."},
	{"history", "Provide Islamic perspectives on historical events and extract moral and spiritual lessons."},
	{"family", "Islamic guidance on family matters, marriage, parenting, relationships with practical advice."},
	{"business", "Islamic business ethics, halal income principles, financial transactions with fiqh details."},
	{"health", "Islamic perspective on health, medicine, wellness with spiritual and practical guidance."},
	{"education", "Importance of knowledge in Islam, educational principles, and spiritual development."},
	{"complex_fiqh", "Provide detailed jurisprudential analysis with classical references and comprehensive evidences."},
}

// topicKeywordGroups is the second lookup pass, tried in order when no topic
// name matched. Each group resolves back into topicGuidances by name.
var topicKeywordGroups = []struct {
	topic    string
	keywords []string
}{
	{"prayer", []string{"prayer", "salah", "namaz", "salat"}},
	{"fasting", []string{"fast", "ramadan", "sawm", "roza"}},
	{"zakat", []string{"zakat", "charity", "sadaqah"}},
	{"hajj", []string{"hajj", "pilgrimage", "umrah"}},
	{"family", []string{"marriage", "divorce", "family", "parent", "child", "wife", "husband"}},
	{"business", []string{"business", "money", "trade", "work", "job", "income", "halal income"}},
	{"health", []string{"health", "medical", "medicine", "sick", "illness", "treatment"}},
	{"complex_fiqh", []string{"ruling", "hanafi", "school of thought", "fiqh", "permissible"}},
}
