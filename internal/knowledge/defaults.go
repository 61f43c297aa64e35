package knowledge

// defaultChunks returns the built-in knowledge set used when no corpus is
// available: a small collection of citations from core texts that keeps
// retrieval functional out of the box.
func defaultChunks() []Chunk {
	return []Chunk{
		{Source: "quran.txt", Text: "Qur'an 1:1-7 - Al-Fatihah (The Opening): In the name of Allah, the Entirely Merciful, the Especially Merciful. All praise is for Allah—Lord of all worlds."},
		{Source: "quran.txt", Text: "Qur'an 2:255 - Ayat al-Kursi: Allah - there is no deity except Him, the Ever-Living, the Sustainer of existence."},
		{Source: "quran.txt", Text: "Qur'an 112:1-4 - Al-Ikhlas: Say, He is Allah, the One. Allah, the Eternal Refuge."},
		{Source: "hadith_bukhari.txt", Text: "Hadith: The Prophet Muhammad (peace be upon him) said: 'Actions are judged by intentions.' (Sahih al-Bukhari 1)"},
		{Source: "hadith_bukhari.txt", Text: "Hadith: 'Seeking knowledge is obligatory for every Muslim.' (Sunan Ibn Majah 224)"},
		{Source: "hadith_muslim.txt", Text: "Hadith: 'None of you truly believes until he loves for his brother what he loves for himself.' (Sahih al-Bukhari 13)"},
		{Source: "fiqh_hanafi.txt", Text: "Five Pillars of Islam: Shahadah (Faith), Salah (Prayer), Zakat (Charity), Sawm (Fasting), Hajj (Pilgrimage)."},
		{Source: "fiqh_hanafi.txt", Text: "Prayer Times: Fajr (dawn), Dhuhr (midday), Asr (afternoon), Maghrib (sunset), Isha (night)."},
		{Source: "seerah.txt", Text: "The Prophet Muhammad (peace be upon him) was born in Mecca in 570 CE. Received first revelation at age 40. Hijra to Medina in 622 CE."},
	}
}
