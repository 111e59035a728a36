package personalization

import (
	"fmt"
	"strings"

	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
)

const (
	// maxListedItems bounds every list field rendered into the context
	// block, so the block stays small no matter how large a profile grows.
	maxListedItems = 5
	maxHealthItems = 3
)

// Synthesize renders the profile into a bounded, fixed-order text block for
// prompt injection. Only present fields produce lines; absent fields are
// skipped, never rendered as "unknown". Pure rendering, no side effects.
func Synthesize(p *profile.UserProfile) string {
	if p == nil {
		return ""
	}

	var lines []string

	switch p.CommunicationStyle {
	case profile.StyleFormal:
		lines = append(lines, "Adresare: dumneavoastră, ton politicos și respectuos.")
	case profile.StyleTechnical:
		lines = append(lines, "Adresare: direct, cu explicații precise și detalii concrete.")
	case profile.StyleCasual:
		lines = append(lines, "Adresare: tu, ton prietenos și relaxat.")
	}

	if p.Name != "" {
		lines = append(lines, fmt.Sprintf("Folosește numele: %s.", p.Name))
	}

	if core := coreFactsLine(p); core != "" {
		lines = append(lines, core)
	}

	if len(p.Interests) > 0 {
		lines = append(lines, "Interese: "+joinTop(p.Interests, maxListedItems)+".")
	}

	if len(p.HealthConditions) > 0 {
		lines = append(lines, "Sănătate (menționează cu empatie, fără sfaturi medicale): "+
			joinTop(p.HealthConditions, maxHealthItems)+".")
	}
	if len(p.Medications) > 0 {
		lines = append(lines, "Medicație cunoscută: "+joinTop(p.Medications, maxHealthItems)+".")
	}

	if guidance := traitGuidance(p); guidance != "" {
		lines = append(lines, guidance)
	}

	if p.ConversationCount > 0 {
		lines = append(lines, fmt.Sprintf("Istoric: %d conversații (%s).",
			p.ConversationCount, experienceLevel(p.ConversationCount)))
	}

	return strings.Join(lines, "\n")
}

func coreFactsLine(p *profile.UserProfile) string {
	var parts []string
	if p.Age != 0 {
		parts = append(parts, fmt.Sprintf("%d ani", p.Age))
	}
	if p.Occupation != "" {
		parts = append(parts, p.Occupation)
	}
	if p.Location != "" {
		parts = append(parts, "din "+p.Location)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Profil: " + strings.Join(parts, ", ") + "."
}

func traitGuidance(p *profile.UserProfile) string {
	var hints []string
	if p.HasTrait("sensibil la stres") || p.HasTrait("emotiv") {
		hints = append(hints, "are nevoie de încurajare și un ton calm")
	}
	if p.HasTrait("optimist") {
		hints = append(hints, "răspunde cu energie pozitivă")
	}
	if len(hints) == 0 {
		return ""
	}
	return "Ghidaj: " + strings.Join(hints, "; ") + "."
}

func experienceLevel(count int) string {
	switch {
	case count < 3:
		return "utilizator nou"
	case count < 20:
		return "utilizator obișnuit"
	default:
		return "utilizator fidel"
	}
}

func joinTop(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
