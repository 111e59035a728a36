package profile

import (
	"strings"
	"time"
)

// moodTraits maps a detected mood to the personality tags it implies.
var moodTraits = map[Mood][]string{
	MoodNegative: {"emotiv", "sensibil la stres"},
	MoodPositive: {"optimist"},
}

// Merge combines freshly extracted facts with an existing profile and
// returns the updated copy. It is pure: no I/O, no mutation of the input.
//
// Policies:
//   - scalar facts (name, age, occupation, location): first-non-null-wins;
//   - list facts: case-insensitive append-dedupe, insertion order kept;
//   - communication style: last-detected-wins;
//   - personality traits: accumulated from mood, observation timestamps
//     refreshed on re-detection, never removed;
//   - recent context: FIFO ring buffer of RecentContextCap entries.
//
// Re-applying identical facts leaves every fact-valued field unchanged;
// only RecentContext and LastUpdated move, because they are event-log-like.
func Merge(existing *UserProfile, facts PartialFacts, mood Mood, now time.Time) *UserProfile {
	p := existing.Clone()
	now = now.UTC()

	if p.Name == "" && facts.Name != "" {
		p.Name = facts.Name
	}
	if p.Age == 0 && validAge(facts.Age) {
		p.Age = facts.Age
	}
	if p.Occupation == "" && facts.Occupation != "" {
		p.Occupation = facts.Occupation
	}
	if p.Location == "" && facts.Location != "" {
		p.Location = facts.Location
	}
	if facts.Style != "" {
		p.CommunicationStyle = facts.Style
	}

	p.Interests = appendDedupe(p.Interests, facts.Interests)
	p.HealthConditions = appendDedupe(p.HealthConditions, facts.HealthConditions)
	p.Medications = appendDedupe(p.Medications, facts.Medications)
	p.Desires = appendDedupe(p.Desires, facts.Desires)
	p.Concerns = appendDedupe(p.Concerns, facts.Concerns)
	p.Pleasures = appendDedupe(p.Pleasures, facts.Pleasures)

	for _, name := range moodTraits[mood] {
		p.PersonalityTraits = observeTrait(p.PersonalityTraits, name, now)
	}

	if facts.Excerpt != "" {
		p.RecentContext = append(p.RecentContext, ContextEntry{
			Excerpt:   truncateExcerpt(facts.Excerpt),
			Timestamp: now,
			Mood:      mood,
		})
		if len(p.RecentContext) > RecentContextCap {
			p.RecentContext = p.RecentContext[len(p.RecentContext)-RecentContextCap:]
		}
		p.ConversationCount++
	}

	p.LastUpdated = now
	return p
}

// ApplyCorrection overwrites scalar facts with the caller-supplied values.
// This is the explicit correction path; the regular merge never overwrites
// an already-set scalar.
func ApplyCorrection(existing *UserProfile, facts PartialFacts, now time.Time) *UserProfile {
	p := existing.Clone()
	if facts.Name != "" {
		p.Name = facts.Name
	}
	if validAge(facts.Age) {
		p.Age = facts.Age
	}
	if facts.Occupation != "" {
		p.Occupation = facts.Occupation
	}
	if facts.Location != "" {
		p.Location = facts.Location
	}
	p.LastUpdated = now.UTC()
	return p
}

func validAge(age int) bool {
	return age >= 13 && age <= 100
}

// appendDedupe unions new items into a list, case-insensitively, preserving
// existing order and appending unseen items at the end. The list is capped
// at ListFieldCap with oldest-first eviction.
func appendDedupe(existing, add []string) []string {
	if len(add) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(add))
	for _, v := range existing {
		seen[strings.ToLower(v)] = true
	}
	out := existing
	for _, v := range add {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	if len(out) > ListFieldCap {
		out = out[len(out)-ListFieldCap:]
	}
	return out
}

func observeTrait(traits []Trait, name string, now time.Time) []Trait {
	for i, t := range traits {
		if strings.EqualFold(t.Name, name) {
			traits[i].LastObserved = now
			return traits
		}
	}
	return append(traits, Trait{Name: name, FirstObserved: now, LastObserved: now})
}

func truncateExcerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= ExcerptMaxLen {
		return s
	}
	return string(runes[:ExcerptMaxLen])
}
