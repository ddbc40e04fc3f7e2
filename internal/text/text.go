// Package text holds the English and Indonesian string packs.
package text

import (
	"fmt"
	"math/rand"
)

// FallbackPool feeds the share card when no journal entry exists.
type FallbackPool struct {
	Messages     []string
	Affirmations []string
	Steps        []string
}

// CardStrings are the fixed labels drawn onto a share card.
type CardStrings struct {
	Head      string
	Sub       string
	Prompt    string
	Label     string
	Journal   string
	Words     string
	Message   string
	Affirm    string
	Step      string
	StreakFmt string
}

// Pack is one language's strings. Function fields cover strings that
// embed counts and need per-language pluralization.
type Pack struct {
	Start    string
	Stop     string
	TimeLeft string
	Inhale   string
	Exhale   string

	SlideTitles [6]string

	TryJournal string
	Later      string
	Shuffle    string
	QuickBtn   string
	FullBtn    string

	MuteOn    string
	MuteOff   string
	ModeVideo string
	ModeAudio string

	LvLabel          string
	SessionWord      string
	DurWord          string
	MinSuffix        string
	StreakLabel      string
	LastJournalLabel string
	SummaryTitle     string
	SummaryClose     string
	SummaryRestart   string
	MilestoneAsk     string
	ShareDone        string

	Words   func(n int) string
	Caption func(streak, words int) string

	Prompts  []string
	Fallback FallbackPool
	Card     CardStrings
}

var packs = map[string]*Pack{"en": &EN, "id": &ID}

// ForLang returns the pack for a language code, falling back to English.
func ForLang(lang string) *Pack {
	if p, ok := packs[lang]; ok {
		return p
	}
	return &EN
}

// Pick returns a random element. The caller supplies the source so tests
// can seed it.
func Pick(rng *rand.Rand, arr []string) string {
	if len(arr) == 0 {
		return ""
	}
	return arr[rng.Intn(len(arr))]
}

var EN = Pack{
	Start:    "Start",
	Stop:     "Stop",
	TimeLeft: "Time left",
	Inhale:   "Inhale",
	Exhale:   "Exhale",

	SlideTitles: [6]string{
		"Paced breathing",
		"Posture reset",
		"Nature break",
		"Muscle release",
		"Cool down",
		"Journal",
	},

	TryJournal: "Write a quick journal?",
	Later:      "Later",
	Shuffle:    "Shuffle",
	QuickBtn:   "Quick · 2m",
	FullBtn:    "Full · 12m",

	MuteOn:    "Muted",
	MuteOff:   "Sound on",
	ModeVideo: "Video",
	ModeAudio: "Audio",

	LvLabel:          "Lv",
	SessionWord:      "session",
	DurWord:          "duration",
	MinSuffix:        "min",
	StreakLabel:      "day streak",
	LastJournalLabel: "Last journal",
	SummaryTitle:     "Session complete",
	SummaryClose:     "Close",
	SummaryRestart:   "Again",
	MilestoneAsk:     "Milestone! Share your streak?",
	ShareDone:        "Shared",

	Words: func(n int) string {
		if n == 1 {
			return "1 word"
		}
		return fmt.Sprintf("%d words", n)
	},
	Caption: func(streak, words int) string {
		return fmt.Sprintf("Day %d of my calm streak · %d words journaled #CalmNow #2MinuteJournal", streak, words)
	},

	Prompts: []string{
		"What went well today?",
		"What is one thing you can let go of?",
		"Name something you are grateful for.",
		"What would make tomorrow 1% easier?",
		"What did your body tell you today?",
		"Who made you smile recently?",
	},
	Fallback: FallbackPool{
		Messages: []string{
			"One relaxed step beats zero.",
			"Breathe, soften, begin again.",
			"Pause. Notice. Choose the smaller move.",
			"Storms pass. You're not the storm.",
			"Tiny calm, many times a day.",
		},
		Affirmations: []string{
			"I treat myself gently.",
			"I can pause and reset.",
			"I am learning to be kinder to me.",
			"I can take the smallest wise step.",
			"My breath can anchor me.",
		},
		Steps: []string{
			"Write one line: what went well.",
			"Sip water, drop your shoulders.",
			"Stand up, stretch 10 seconds.",
			"Look out the window for 20s.",
			"Put phone down for 1 minute.",
		},
	},
	Card: CardStrings{
		Head:      "You're good",
		Sub:       "Breathe softly… you are safer now.",
		Prompt:    "Prompt",
		Label:     "Emotion label",
		Journal:   "Today's journal",
		Words:     "Words today",
		Message:   "A small reminder",
		Affirm:    "Affirmation",
		Step:      "One tiny step",
		StreakFmt: "Streak %d",
	},
}

var ID = Pack{
	Start:    "Mulai",
	Stop:     "Berhenti",
	TimeLeft: "Sisa waktu",
	Inhale:   "Tarik napas",
	Exhale:   "Hembuskan",

	SlideTitles: [6]string{
		"Napas teratur",
		"Perbaiki postur",
		"Jeda alam",
		"Relaksasi otot",
		"Pendinginan",
		"Jurnal",
	},

	TryJournal: "Tulis jurnal singkat?",
	Later:      "Nanti",
	Shuffle:    "Acak",
	QuickBtn:   "Singkat · 2m",
	FullBtn:    "Penuh · 12m",

	MuteOn:    "Senyap",
	MuteOff:   "Suara aktif",
	ModeVideo: "Video",
	ModeAudio: "Audio",

	LvLabel:          "Lv",
	SessionWord:      "sesi",
	DurWord:          "durasi",
	MinSuffix:        "mnt",
	StreakLabel:      "hari beruntun",
	LastJournalLabel: "Jurnal terakhir",
	SummaryTitle:     "Sesi selesai",
	SummaryClose:     "Tutup",
	SummaryRestart:   "Lagi",
	MilestoneAsk:     "Pencapaian! Bagikan streak kamu?",
	ShareDone:        "Terbagikan",

	Words: func(n int) string {
		return fmt.Sprintf("%d kata", n)
	},
	Caption: func(streak, words int) string {
		return fmt.Sprintf("Hari ke-%d streak tenangku · %d kata di jurnal #CalmNow #2MinuteJournal", streak, words)
	},

	Prompts: []string{
		"Apa yang berjalan baik hari ini?",
		"Apa satu hal yang bisa kamu lepaskan?",
		"Sebutkan satu hal yang kamu syukuri.",
		"Apa yang membuat besok 1% lebih mudah?",
		"Apa yang tubuhmu sampaikan hari ini?",
		"Siapa yang membuatmu tersenyum baru-baru ini?",
	},
	Fallback: FallbackPool{
		Messages: []string{
			"Satu langkah santai lebih baik dari nol.",
			"Tarik napas, lembutkan, mulai lagi.",
			"Jeda. Amati. Pilih langkah terkecil.",
			"Badai berlalu. Kamu bukan badainya.",
			"Tenang kecil, berkali-kali sehari.",
		},
		Affirmations: []string{
			"Aku memperlakukan diriku dengan lembut.",
			"Aku bisa berhenti sejenak dan memulai ulang.",
			"Aku belajar lebih baik pada diriku.",
			"Aku bisa mengambil langkah bijak terkecil.",
			"Napasku bisa menjadi jangkarku.",
		},
		Steps: []string{
			"Tulis satu baris: apa yang berjalan baik.",
			"Minum air, turunkan bahumu.",
			"Berdiri, regangkan 10 detik.",
			"Pandangi jendela selama 20 detik.",
			"Letakkan ponsel selama 1 menit.",
		},
	},
	Card: CardStrings{
		Head:      "Kamu aman",
		Sub:       "Tarik napas pelan… kamu sudah lebih aman sekarang.",
		Prompt:    "Prompt",
		Label:     "Label emosi",
		Journal:   "Jurnal hari ini",
		Words:     "Kata hari ini",
		Message:   "Pengingat kecil",
		Affirm:    "Afirmasi",
		Step:      "Satu langkah kecil",
		StreakFmt: "Streak %d",
	},
}
