package personalization

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
)

// Message is one turn of a stored conversation.
type Message struct {
	ID      string    `json:"id"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// Conversation is one stored conversation supplied to the batch analyzer.
type Conversation struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Messages  []Message `json:"messages"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TopicCount is a taxonomy topic with its hit frequency.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// PersonalityProfile is the richer behavioral profile the batch pass
// derives. It is recomputed from history on demand, never persisted, and is
// allowed to disagree with the per-message fast path: the two operate at
// different granularity.
type PersonalityProfile struct {
	TopTopics               []TopicCount               `json:"top_topics,omitempty"`
	MoodTrend               profile.Mood               `json:"mood_trend"`
	EmotionalProfile        string                     `json:"emotional_profile"`
	QuestionTypes           map[string]int             `json:"question_types,omitempty"`
	PreferredTone           profile.CommunicationStyle `json:"preferred_tone"`
	FormalityScore          float64                    `json:"formality_score"`
	LearningStyle           []string                   `json:"learning_style,omitempty"`
	AvgMessageLength        int                        `json:"avg_message_length"`
	ConversationsPerWeek    float64                    `json:"conversations_per_week"`
	PreferredResponseLength string                     `json:"preferred_response_length"`
	AnalyzedConversations   int                        `json:"analyzed_conversations"`
	AnalyzedMessages        int                        `json:"analyzed_messages"`
}

// topicTaxonomy maps fixed topics to diacritic-folded keyword stems.
var topicTaxonomy = map[string][]string{
	"sănătate":      {"sanatate", "doctor", "medic", "simptom", "durere", "tratament", "analize"},
	"nutriție":      {"dieta", "mancare", "aliment", "nutriti", "vitamin", "supliment"},
	"sport":         {"sport", "alergare", "sala", "antrenament", "miscare", "fitness", "yoga"},
	"somn":          {"somn", "dormit", "insomnie", "odihna", "adormit"},
	"stres":         {"stres", "anxiet", "presiune", "ingrijor", "relaxa"},
	"produse":       {"produs", "comanda", "livrare", "pret", "plata", "cos", "retur"},
	"familie":       {"familie", "copil", "sot", "sotie", "parinti", "mama", "tata"},
	"muncă":         {"munca", "serviciu", "birou", "proiect", "job", "coleg", "sedinta"},
	"stil de viață": {"obicei", "rutina", "echilibru", "energie", "motivat"},
}

// questionMarkers maps question types to their folded lead-in words.
var questionMarkers = map[string][]string{
	"practic":     {"cum ", "cum?"},
	"informativ":  {"ce ", "care "},
	"analitic":    {"de ce", "din ce cauza"},
	"logistic":    {"cand ", "unde ", "cat dureaza", "cat costa"},
	"confirmativ": {"este adevarat", "e adevarat", "chiar "},
}

const detailedMessageRunes = 120

// Analyze runs the coarse-grained batch pass over a user's conversation
// history: topic frequencies, mood trend, question taxonomy and behavioral
// metrics, all independent of the per-message fast path.
func Analyze(conversations []Conversation) (*PersonalityProfile, error) {
	if len(conversations) == 0 {
		return nil, ErrNoConversations
	}

	p := &PersonalityProfile{
		QuestionTypes:         make(map[string]int),
		AnalyzedConversations: len(conversations),
	}

	topicHits := make(map[string]int)
	moodCounts := make(map[profile.Mood]int)
	var userMessages []string
	totalRunes := 0
	var earliest, latest time.Time

	for _, conv := range conversations {
		if !conv.StartedAt.IsZero() {
			if earliest.IsZero() || conv.StartedAt.Before(earliest) {
				earliest = conv.StartedAt
			}
			if latest.IsZero() || conv.StartedAt.After(latest) {
				latest = conv.StartedAt
			}
		}
		for _, msg := range conv.Messages {
			p.AnalyzedMessages++
			if msg.Role != RoleUser {
				continue
			}
			userMessages = append(userMessages, msg.Content)
			totalRunes += utf8.RuneCountInString(msg.Content)

			folded := foldDiacritics(msg.Content)
			for topic, stems := range topicTaxonomy {
				for _, stem := range stems {
					if strings.Contains(folded, stem) {
						topicHits[topic]++
					}
				}
			}
			moodCounts[ClassifyMood(msg.Content)]++
			classifyQuestions(folded, p.QuestionTypes)
		}
	}

	p.TopTopics = rankTopics(topicHits)
	p.MoodTrend, p.EmotionalProfile = moodSummary(moodCounts)
	p.FormalityScore = FormalityScore(userMessages)
	p.PreferredTone = ClassifyStyle(userMessages)
	p.LearningStyle = learningStyle(p.QuestionTypes, len(userMessages))

	if len(userMessages) > 0 {
		p.AvgMessageLength = totalRunes / len(userMessages)
	}
	if p.AvgMessageLength >= detailedMessageRunes {
		p.PreferredResponseLength = "detaliat"
	} else {
		p.PreferredResponseLength = "scurt"
	}
	p.ConversationsPerWeek = conversationsPerWeek(len(conversations), earliest, latest)

	return p, nil
}

// SynthesizeBehavior renders the batch profile into a bounded context
// block, richer than the fast-path one.
func SynthesizeBehavior(p *PersonalityProfile) string {
	if p == nil {
		return ""
	}
	var lines []string

	if len(p.TopTopics) > 0 {
		names := make([]string, 0, maxListedItems)
		for i, t := range p.TopTopics {
			if i == maxListedItems {
				break
			}
			names = append(names, t.Topic)
		}
		lines = append(lines, "Subiecte frecvente: "+strings.Join(names, ", ")+".")
	}

	lines = append(lines, "Profil emoțional: "+p.EmotionalProfile+".")

	switch p.PreferredTone {
	case profile.StyleFormal:
		lines = append(lines, "Ton preferat: formal.")
	case profile.StyleTechnical:
		lines = append(lines, "Ton preferat: tehnic, cu detalii.")
	default:
		lines = append(lines, "Ton preferat: relaxat.")
	}

	if len(p.LearningStyle) > 0 {
		lines = append(lines, "Stil de învățare: "+strings.Join(p.LearningStyle, ", ")+".")
	}

	lines = append(lines, fmt.Sprintf("Răspunsuri preferate: %s (mesaj mediu %d caractere).",
		p.PreferredResponseLength, p.AvgMessageLength))

	return strings.Join(lines, "\n")
}

// NewConversation builds a conversation record, assigning IDs where the
// caller left them blank.
func NewConversation(startedAt time.Time, messages []Message) Conversation {
	conv := Conversation{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
		Messages:  make([]Message, len(messages)),
	}
	copy(conv.Messages, messages)
	for i := range conv.Messages {
		if conv.Messages[i].ID == "" {
			conv.Messages[i].ID = uuid.NewString()
		}
	}
	return conv
}

func classifyQuestions(folded string, counts map[string]int) {
	if !strings.Contains(folded, "?") {
		return
	}
	for qType, markers := range questionMarkers {
		for _, marker := range markers {
			if strings.Contains(folded, marker) {
				counts[qType]++
				break
			}
		}
	}
}

func rankTopics(hits map[string]int) []TopicCount {
	ranked := make([]TopicCount, 0, len(hits))
	for topic, count := range hits {
		ranked = append(ranked, TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	return ranked
}

func moodSummary(counts map[profile.Mood]int) (profile.Mood, string) {
	pos, neg := counts[profile.MoodPositive], counts[profile.MoodNegative]
	switch {
	case pos > neg:
		return profile.MoodPositive, "predominant pozitiv"
	case neg > pos:
		return profile.MoodNegative, "predominant negativ"
	default:
		return profile.MoodNeutral, "echilibrat"
	}
}

func learningStyle(questions map[string]int, userMessages int) []string {
	var styles []string
	if questions["practic"] >= 2 {
		styles = append(styles, "practic")
	}
	if questions["analitic"] >= 2 {
		styles = append(styles, "analitic")
	}
	total := 0
	for _, c := range questions {
		total += c
	}
	if userMessages > 0 && float64(total)/float64(userMessages) > 0.5 {
		styles = append(styles, "explorator")
	}
	return styles
}

func conversationsPerWeek(count int, earliest, latest time.Time) float64 {
	if count == 0 || earliest.IsZero() || latest.IsZero() {
		return 0
	}
	span := latest.Sub(earliest)
	if span < 24*time.Hour {
		span = 24 * time.Hour
	}
	weeks := span.Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}
	return float64(count) / weeks
}
