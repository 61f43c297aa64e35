package retrieval

// Category groups the keywords that identify one knowledge topic. A question
// and a chunk that both match keywords from the same category earn the
// category bonus during scoring.
type Category struct {
	Name     string
	Keywords []string
}

// Categories is the topic-category keyword table used for retrieval scoring.
// Kept as data rather than scattered literals so it stays independently
// testable and extensible.
var Categories = []Category{
	{Name: "prayer", Keywords: []string{"prayer", "salah", "namaz", "salat", "rakat", "rakah", "worship", "fajr", "dhuhr", "asr", "maghrib", "isha", "sujud", "ruku"}},
	{Name: "fasting", Keywords: []string{"fasting", "fast", "ramadan", "sawm", "roza", "iftar", "suhoor", "sehri", "tarawih"}},
	{Name: "zakat", Keywords: []string{"zakat", "charity", "sadaqah", "poor", "wealth", "money", "donation", "nisab", "fitrah"}},
	{Name: "hajj", Keywords: []string{"hajj", "pilgrimage", "mecca", "kaaba", "umrah", "tawaf", "saee", "arafat", "muzdalifah", "jamarat"}},
	{Name: "wudu", Keywords: []string{"wudu", "ablution", "purification", "wash", "clean", "taharat", "ghusl", "tayammum"}},
	{Name: "quran", Keywords: []string{"quran", "koran", "surah", "ayat", "verse", "revelation", "recitation", "memorization"}},
	{Name: "hadith", Keywords: []string{"hadith", "prophet", "muhammad", "sunnah", "narration", "bukhari", "muslim", "tirmidhi"}},
	{Name: "islam", Keywords: []string{"islam", "muslim", "faith", "religion", "belief", "iman", "tawheed", "shahada"}},
	{Name: "fiqh", Keywords: []string{"fiqh", "jurisprudence", "halal", "haram", "fatwa", "ruling", "hanafi", "shafi", "maliki", "hanbali"}},
	{Name: "seerah", Keywords: []string{"seerah", "biography", "prophet life", "migration", "hijra", "medina", "mecca"}},
}

// matchesAny reports whether text contains any of the keywords.
func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if contains(text, kw) {
			return true
		}
	}
	return false
}
