package personalization

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vitalia-ro/wellness-ai-platform/internal/profile"
)

// factKind identifies which profile field a rule feeds.
type factKind int

const (
	factName factKind = iota
	factAge
	factOccupation
	factLocation
	factInterest
	factHealth
	factMedication
	factDesire
	factConcern
	factPleasure
)

// scalarKinds stop at the first matching rule; list kinds collect every
// matching rule.
var scalarKinds = map[factKind]bool{
	factName:       true,
	factAge:        true,
	factOccupation: true,
	factLocation:   true,
}

// factRule is one entry of the extraction rule table: a pattern plus a
// validator that cleans the captured value or rejects it.
type factRule struct {
	kind     factKind
	re       *regexp.Regexp
	validate func(raw string) (string, bool)
}

// phraseCapture matches free text up to the next clause boundary.
const phraseCapture = `([^,.!?;\n]+)`

// nameCapture matches one or two words, letters only.
const nameCapture = `([\p{L}][\p{L}'-]*(?:\s+[\p{L}][\p{L}'-]*)?)`

// factRules is the single rule table every extraction call walks. Order
// matters for scalar kinds: stronger phrasings come first.
var factRules = []factRule{
	// name
	{factName, regexp.MustCompile(`(?i)numele meu (?:este|e)\s+` + nameCapture), validateName},
	{factName, regexp.MustCompile(`(?i)m[ăa] num[ei]sc\s+` + nameCapture), validateName},
	{factName, regexp.MustCompile(`(?i)m[ăa] cheam[ăa]\s+` + nameCapture), validateName},
	{factName, regexp.MustCompile(`(?i)spune[- ]?mi\s+` + nameCapture), validateName},
	{factName, regexp.MustCompile(`(?i)\bsunt\s+` + nameCapture), validateName},

	// age
	{factAge, regexp.MustCompile(`(?i)\bam\s+(\d{1,3})\s*(?:de\s+)?ani\b`), validateAge},
	{factAge, regexp.MustCompile(`(?i)\bv[âa]rsta mea (?:este|e)\s+(?:de\s+)?(\d{1,3})\b`), validateAge},

	// occupation
	{factOccupation, regexp.MustCompile(`(?i)lucrez ca\s+` + phraseCapture), validatePhrase},
	{factOccupation, regexp.MustCompile(`(?i)sunt de profesie\s+` + phraseCapture), validatePhrase},
	{factOccupation, regexp.MustCompile(`(?i)(?:profesia|meseria) mea (?:este|e)\s+` + phraseCapture), validatePhrase},
	{factOccupation, regexp.MustCompile(`(?i)lucrez (?:în|in) domeniul\s+` + phraseCapture), validatePhrase},
	{factOccupation, regexp.MustCompile(`(?i)m[ăa] ocup cu\s+` + phraseCapture), validatePhrase},

	// location
	{factLocation, regexp.MustCompile(`(?i)locuiesc (?:în|in|la)\s+` + phraseCapture), validatePhrase},
	{factLocation, regexp.MustCompile(`(?i)stau (?:în|in|la)\s+` + phraseCapture), validatePhrase},
	{factLocation, regexp.MustCompile(`(?i)m[ăa] aflu (?:în|in|la)\s+` + phraseCapture), validatePhrase},
	{factLocation, regexp.MustCompile(`(?i)sunt din\s+` + phraseCapture), validatePhrase},

	// interests
	{factInterest, regexp.MustCompile(`(?i)[îi]mi place (?:s[ăa]\s+)?` + phraseCapture), validatePhrase},
	{factInterest, regexp.MustCompile(`(?i)[îi]mi plac\s+` + phraseCapture), validatePhrase},
	{factInterest, regexp.MustCompile(`(?i)ador (?:s[ăa]\s+)?` + phraseCapture), validatePhrase},
	{factInterest, regexp.MustCompile(`(?i)(?:sunt )?pasionat[ăa]? de\s+` + phraseCapture), validatePhrase},
	{factInterest, regexp.MustCompile(`(?i)hobby-?ul meu (?:este|e)\s+` + phraseCapture), validatePhrase},

	// health conditions
	{factHealth, regexp.MustCompile(`(?i)suf[ăa]r de\s+` + phraseCapture), validatePhrase},
	{factHealth, regexp.MustCompile(`(?i)am fost diagnosticat[ăa]? cu\s+` + phraseCapture), validatePhrase},
	{factHealth, regexp.MustCompile(`(?i)am probleme (?:cu|de)\s+` + phraseCapture), validatePhrase},
	{factHealth, regexp.MustCompile(`(?i)m[ăa] doare\s+` + phraseCapture), validatePhrase},
	{factHealth, regexp.MustCompile(`(?i)am dureri de\s+` + phraseCapture), validatePhrase},

	// medications
	{factMedication, regexp.MustCompile(`(?i)\biau (?:zilnic\s+)?` + phraseCapture), validateMedication},
	{factMedication, regexp.MustCompile(`(?i)mi s-a prescris\s+` + phraseCapture), validatePhrase},
	{factMedication, regexp.MustCompile(`(?i)(?:sunt|m[ăa] aflu) (?:în|in|sub) tratament cu\s+` + phraseCapture), validatePhrase},

	// desires
	{factDesire, regexp.MustCompile(`(?i)[îi]mi doresc (?:s[ăa]\s+)?` + phraseCapture), validatePhrase},
	{factDesire, regexp.MustCompile(`(?i)vreau s[ăa]\s+` + phraseCapture), validatePhrase},
	{factDesire, regexp.MustCompile(`(?i)a[șs] (?:vrea|dori) s[ăa]\s+` + phraseCapture), validatePhrase},
	{factDesire, regexp.MustCompile(`(?i)sper s[ăa]\s+` + phraseCapture), validatePhrase},
	{factDesire, regexp.MustCompile(`(?i)visez s[ăa]\s+` + phraseCapture), validatePhrase},

	// concerns
	{factConcern, regexp.MustCompile(`(?i)m[ăa] [îi]ngrijoreaz[ăa]\s+` + phraseCapture), validatePhrase},
	{factConcern, regexp.MustCompile(`(?i)sunt [îi]ngrijorat[ăa]? (?:de|din cauza|c[ăa])\s+` + phraseCapture), validatePhrase},
	{factConcern, regexp.MustCompile(`(?i)m[ăa] tem (?:de|c[ăa])\s+` + phraseCapture), validatePhrase},
	{factConcern, regexp.MustCompile(`(?i)[îi]mi fac griji (?:despre|pentru|din cauza)\s+` + phraseCapture), validatePhrase},
	{factConcern, regexp.MustCompile(`(?i)m[ăa] streseaz[ăa]\s+` + phraseCapture), validatePhrase},

	// pleasures
	{factPleasure, regexp.MustCompile(`(?i)m[ăa] bucur (?:de|c[âa]nd)\s+` + phraseCapture), validatePhrase},
	{factPleasure, regexp.MustCompile(`(?i)m[ăa] relaxeaz[ăa]\s+` + phraseCapture), validatePhrase},
	{factPleasure, regexp.MustCompile(`(?i)savurez\s+` + phraseCapture), validatePhrase},
}

// nameStoplist holds diacritic-folded words that regularly follow "sunt"
// without being names: sentiment adjectives, fillers, connectors. Without
// it "Sunt foarte fericit" would yield the name "Foarte".
var nameStoplist = map[string]bool{
	"bine": true, "foarte": true, "fericit": true, "fericita": true,
	"trist": true, "trista": true, "bucuros": true, "bucuroasa": true,
	"obosit": true, "obosita": true, "stresat": true, "stresata": true,
	"suparat": true, "suparata": true, "ingrijorat": true, "ingrijorata": true,
	"multumit": true, "multumita": true, "incantat": true, "incantata": true,
	"entuziasmat": true, "entuziasmata": true, "relaxat": true, "relaxata": true,
	"ocupat": true, "ocupata": true, "liber": true, "libera": true,
	"singur": true, "singura": true, "bolnav": true, "bolnava": true,
	"sigur": true, "sigura": true, "curios": true, "curioasa": true,
	"gata": true, "aici": true, "acolo": true, "acasa": true, "online": true,
	"nou": true, "noua": true, "super": true, "ok": true, "okay": true,
	"si": true, "iar": true, "dar": true, "cam": true, "doar": true,
	"putin": true, "putina": true, "tare": true, "chiar": true,
	"interesat": true, "interesata": true, "pasionat": true, "pasionata": true,
	"convins": true, "convinsa": true, "mereu": true, "azi": true, "astazi": true,
	"din": true, "de": true, "la": true, "pe": true, "un": true, "o": true,
	"eu": true, "persoana": true, "cineva": true, "clientul": true, "clienta": true,
}

var diacriticFolder = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
	"Ă", "a", "Â", "a", "Î", "i", "Ș", "s", "Ş", "s", "Ț", "t", "Ţ", "t",
)

// foldDiacritics lower-cases and strips Romanian diacritics so pattern
// lookups tolerate both spellings.
func foldDiacritics(s string) string {
	return strings.ToLower(diacriticFolder.Replace(s))
}

// Extract scans one Romanian-language message and returns the sparse fact
// set it detects. A message in which nothing matches yields an empty
// PartialFacts and no error; only blank input is rejected.
func Extract(message string) (profile.PartialFacts, error) {
	if strings.TrimSpace(message) == "" {
		return profile.PartialFacts{}, ErrEmptyMessage
	}

	facts := profile.PartialFacts{Excerpt: strings.TrimSpace(message)}
	scalarDone := map[factKind]bool{}

	for _, rule := range factRules {
		if scalarKinds[rule.kind] {
			if scalarDone[rule.kind] {
				continue
			}
			m := rule.re.FindStringSubmatch(message)
			if len(m) < 2 {
				continue
			}
			value, ok := rule.validate(m[1])
			if !ok {
				continue
			}
			setScalarFact(&facts, rule.kind, value)
			scalarDone[rule.kind] = true
			continue
		}

		for _, m := range rule.re.FindAllStringSubmatch(message, -1) {
			if len(m) < 2 {
				continue
			}
			if value, ok := rule.validate(m[1]); ok {
				appendListFact(&facts, rule.kind, value)
			}
		}
	}

	return facts, nil
}

func setScalarFact(f *profile.PartialFacts, kind factKind, value string) {
	switch kind {
	case factName:
		f.Name = value
	case factAge:
		f.Age, _ = strconv.Atoi(value)
	case factOccupation:
		f.Occupation = value
	case factLocation:
		f.Location = value
	}
}

func appendListFact(f *profile.PartialFacts, kind factKind, value string) {
	switch kind {
	case factInterest:
		f.Interests = append(f.Interests, value)
	case factHealth:
		f.HealthConditions = append(f.HealthConditions, value)
	case factMedication:
		f.Medications = append(f.Medications, value)
	case factDesire:
		f.Desires = append(f.Desires, value)
	case factConcern:
		f.Concerns = append(f.Concerns, value)
	case factPleasure:
		f.Pleasures = append(f.Pleasures, value)
	}
}

// validateName keeps up to two plausible name words, stopping at the first
// word the stoplist rejects. Returns false when no word survives.
func validateName(raw string) (string, bool) {
	var words []string
	for _, w := range strings.Fields(strings.TrimSpace(raw)) {
		w = strings.Trim(w, ".,!?\"'()-")
		if !looksLikeName(w) {
			break
		}
		words = append(words, capitalize(w))
		if len(words) == 2 {
			break
		}
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

func looksLikeName(word string) bool {
	n := utf8.RuneCountInString(word)
	if n < 2 || n > 30 {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return !nameStoplist[foldDiacritics(word)]
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// validateAge enforces the 13..100 range; out-of-range candidates are
// dropped silently.
func validateAge(raw string) (string, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || age < 13 || age > 100 {
		return "", false
	}
	return strconv.Itoa(age), true
}

// connectors end a captured phrase; "lucrez ca designer și îmi place să
// desenez" must not absorb the second clause into the occupation.
var connectors = []string{" și ", " si ", " iar ", " dar ", " însă ", " insa "}

func cutAtConnector(v string) string {
	lower := strings.ToLower(v)
	cut := len(v)
	for _, c := range connectors {
		if idx := strings.Index(lower, c); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(v[:cut])
}

// validatePhrase trims the capture, cuts trailing clauses and rejects
// degenerate values.
func validatePhrase(raw string) (string, bool) {
	v := cutAtConnector(strings.TrimSpace(raw))
	v = strings.Trim(v, ".,!?\"'")
	if utf8.RuneCountInString(v) < 3 {
		return "", false
	}
	return v, true
}

// mundaneIntakes are everyday "iau X" objects that are not medication.
var mundaneIntakes = map[string]bool{
	"pranzul": true, "micul dejun": true, "cina": true, "masa": true,
	"autobuzul": true, "metroul": true, "trenul": true, "taxiul": true,
	"o pauza": true, "pauza": true, "legatura": true, "notite": true,
}

func validateMedication(raw string) (string, bool) {
	v, ok := validatePhrase(raw)
	if !ok {
		return "", false
	}
	if mundaneIntakes[foldDiacritics(v)] {
		return "", false
	}
	return v, true
}
