package profile

import (
	"strings"
	"time"
)

// Mood is the coarse sentiment derived from a single message.
type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNegative Mood = "negative"
	MoodNeutral  Mood = "neutral"
)

// CommunicationStyle tags how a user prefers to be addressed.
type CommunicationStyle string

const (
	StyleFormal    CommunicationStyle = "formal"
	StyleCasual    CommunicationStyle = "casual"
	StyleTechnical CommunicationStyle = "technical"
)

const (
	// RecentContextCap bounds the session-continuity ring buffer.
	RecentContextCap = 10
	// ListFieldCap bounds every append-dedupe list field. Oldest entries
	// are evicted first once the cap is reached.
	ListFieldCap = 50
	// ExcerptMaxLen bounds the stored message excerpt in recent context.
	ExcerptMaxLen = 80
)

// Trait is a personality tag with observation timestamps. Traits are never
// removed by the merger; consumers can decay stale ones using LastObserved.
type Trait struct {
	Name          string    `json:"name"`
	FirstObserved time.Time `json:"first_observed"`
	LastObserved  time.Time `json:"last_observed"`
}

// ContextEntry is one slot of the recent-context ring buffer. It is
// event-log-like session state, not a long-term fact.
type ContextEntry struct {
	Excerpt   string    `json:"excerpt"`
	Timestamp time.Time `json:"timestamp"`
	Mood      Mood      `json:"mood"`
}

// UserProfile is the per-user personalization record. One document per
// user ID; never shared across users.
type UserProfile struct {
	UserID             string             `json:"user_id"`
	Name               string             `json:"name,omitempty"`
	Age                int                `json:"age,omitempty"`
	Occupation         string             `json:"occupation,omitempty"`
	Location           string             `json:"location,omitempty"`
	Interests          []string           `json:"interests,omitempty"`
	PersonalityTraits  []Trait            `json:"personality_traits,omitempty"`
	HealthConditions   []string           `json:"health_conditions,omitempty"`
	Medications        []string           `json:"medications,omitempty"`
	Desires            []string           `json:"desires,omitempty"`
	Concerns           []string           `json:"concerns,omitempty"`
	Pleasures          []string           `json:"pleasures,omitempty"`
	CommunicationStyle CommunicationStyle `json:"communication_style,omitempty"`
	RecentContext      []ContextEntry     `json:"recent_context,omitempty"`
	ConversationCount  int                `json:"conversation_count"`
	CreatedAt          time.Time          `json:"created_at"`
	LastUpdated        time.Time          `json:"last_updated"`
}

// New returns an empty profile for a user, created lazily on first contact.
func New(userID string, now time.Time) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		CreatedAt:   now.UTC(),
		LastUpdated: now.UTC(),
	}
}

// HasTrait reports whether a personality trait is already recorded.
func (p *UserProfile) HasTrait(name string) bool {
	for _, t := range p.PersonalityTraits {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so merges never mutate the caller's profile.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Interests = append([]string(nil), p.Interests...)
	cp.PersonalityTraits = append([]Trait(nil), p.PersonalityTraits...)
	cp.HealthConditions = append([]string(nil), p.HealthConditions...)
	cp.Medications = append([]string(nil), p.Medications...)
	cp.Desires = append([]string(nil), p.Desires...)
	cp.Concerns = append([]string(nil), p.Concerns...)
	cp.Pleasures = append([]string(nil), p.Pleasures...)
	cp.RecentContext = append([]ContextEntry(nil), p.RecentContext...)
	return &cp
}

// PartialFacts is the sparse set of attributes detected in one message.
// Zero values mean "not detected", never "explicitly empty".
type PartialFacts struct {
	Name             string
	Age              int
	Occupation       string
	Location         string
	Interests        []string
	HealthConditions []string
	Medications      []string
	Desires          []string
	Concerns         []string
	Pleasures        []string
	Style            CommunicationStyle
	Excerpt          string
}

// Empty reports whether nothing was detected.
func (f PartialFacts) Empty() bool {
	return f.Count() == 0
}

// Count returns the number of detected fields and list entries.
func (f PartialFacts) Count() int {
	n := 0
	if f.Name != "" {
		n++
	}
	if f.Age != 0 {
		n++
	}
	if f.Occupation != "" {
		n++
	}
	if f.Location != "" {
		n++
	}
	if f.Style != "" {
		n++
	}
	n += len(f.Interests) + len(f.HealthConditions) + len(f.Medications)
	n += len(f.Desires) + len(f.Concerns) + len(f.Pleasures)
	return n
}
