package personalization

import (
	"strings"

	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
)

// Lexicons are stored diacritic-folded; matching is substring-based so
// inflected forms ("stresată", "obosiți") hit their stem.
var (
	positiveLexicon = []string{
		"fericit", "bucuros", "bucuroas", "bine", "minunat", "excelent",
		"super", "grozav", "incantat", "multumit", "vesel", "relaxat",
		"optimist", "perfect", "extraordinar", "recunoscator", "entuziasmat",
		"linistit", "implinit", "sanatos",
	}
	negativeLexicon = []string{
		"trist", "stresat", "stresant", "obosit", "ingrijorat", "nervos",
		"suparat", "anxios", "anxietate", "deprimat", "frustrat", "speriat",
		"teama", "frica", "furios", "epuizat", "coplesit", "dezamagit",
		"panica", "singuratate",
	}
)

const (
	formalityBaseline = 5.0
	formalStep        = 1.0
	informalStep      = 0.5
	formalThreshold   = 7.0
)

var (
	formalMarkers = []string{
		"dumneavoastra", "va rog", "cu respect", "cu stima",
		"multumesc frumos", "as dori", "domnule", "doamna", "buna ziua",
		"cu deosebita consideratie",
	}
	informalMarkers = []string{
		"salut", "hey", "bro", "mersi", "misto", "haha", "lol",
		"super tare", "ce faci",
	}
	technicalMarkers = []string{
		"aplicatie", "sistem", "algoritm", "software", "platforma",
		"server", "baza de date", "setari", "eroare", "interfata",
		"procesare", "sincronizare",
	}
)

// ClassifyMood derives coarse sentiment from one message by counting
// lexicon hits. Ties and zero hits are neutral. Deterministic by
// construction: same input, same answer.
func ClassifyMood(message string) profile.Mood {
	folded := foldDiacritics(message)
	pos := countHits(folded, positiveLexicon)
	neg := countHits(folded, negativeLexicon)
	switch {
	case pos > neg:
		return profile.MoodPositive
	case neg > pos:
		return profile.MoodNegative
	default:
		return profile.MoodNeutral
	}
}

// FormalityScore scores a message batch on a 0..10 scale: neutral baseline
// 5, +1 per formal marker, -0.5 per informal marker, clamped.
func FormalityScore(messages []string) float64 {
	score := formalityBaseline
	for _, msg := range messages {
		folded := foldDiacritics(msg)
		score += formalStep * float64(countHits(folded, formalMarkers))
		score -= informalStep * float64(countHits(folded, informalMarkers))
	}
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// ClassifyStyle maps a message batch to a communication style tag.
// Technical-marker dominance wins over the formality score.
func ClassifyStyle(messages []string) profile.CommunicationStyle {
	tech := 0
	for _, msg := range messages {
		tech += countHits(foldDiacritics(msg), technicalMarkers)
	}
	if tech >= 2 {
		return profile.StyleTechnical
	}
	if FormalityScore(messages) >= formalThreshold {
		return profile.StyleFormal
	}
	return profile.StyleCasual
}

// detectStyle is the per-message fast-path variant: it returns "" when the
// message carries no signal, so the merger keeps the previous style.
func detectStyle(message string) profile.CommunicationStyle {
	folded := foldDiacritics(message)
	if countHits(folded, technicalMarkers) >= 2 {
		return profile.StyleTechnical
	}
	formal := countHits(folded, formalMarkers)
	informal := countHits(folded, informalMarkers)
	switch {
	case formal > 0 && formal >= informal:
		return profile.StyleFormal
	case informal > 0:
		return profile.StyleCasual
	default:
		return ""
	}
}

func countHits(folded string, lexicon []string) int {
	hits := 0
	for _, word := range lexicon {
		hits += strings.Count(folded, word)
	}
	return hits
}
