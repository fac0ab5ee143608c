package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Locale selects which display-name column DisplayName reads.
type Locale string

const (
	French  Locale = "fr"
	English Locale = "en"
)

const (
	unknownFrench  = "Inconnu"
	unknownEnglish = "Unknown"
)

type entry struct {
	code2     string   // ISO 639-1 (2-letter)
	code3     string   // ISO 639-2/T (3-letter)
	alt3      string   // ISO 639-2/B when it differs (e.g. "fre" vs "fra")
	displayFR string   // French display name
	displayEN string   // English display name
	words     []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"fr", "fra", "fre", "Français", "French", []string{"french", "francais", "français"}},
	{"en", "eng", "", "Anglais", "English", []string{"english", "anglais"}},
	{"es", "spa", "", "Espagnol", "Spanish", []string{"spanish", "espagnol"}},
	{"de", "deu", "ger", "Allemand", "German", []string{"german", "allemand"}},
	{"it", "ita", "", "Italien", "Italian", []string{"italian", "italien"}},
	{"pt", "por", "", "Portugais", "Portuguese", []string{"portuguese", "portugais"}},
	{"nl", "nld", "dut", "Néerlandais", "Dutch", []string{"dutch", "neerlandais"}},
	{"zh", "zho", "chi", "Chinois", "Chinese", []string{"chinese", "chinois"}},
	{"ja", "jpn", "", "Japonais", "Japanese", []string{"japanese", "japonais"}},
	{"ru", "rus", "", "Russe", "Russian", []string{"russian", "russe"}},
	{"ar", "ara", "", "Arabe", "Arabic", []string{"arabic", "arabe"}},
	{"pl", "pol", "", "Polonais", "Polish", []string{"polish", "polonais"}},
	{"tr", "tur", "", "Turc", "Turkish", []string{"turkish", "turc"}},
	{"ko", "kor", "", "Coréen", "Korean", []string{"korean", "coreen"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return lookupTag(code)
}

// lookupTag resolves BCP 47 tags ("fr-CA", "pt_BR") by their base language.
func lookupTag(code string) *entry {
	tag, err := xlanguage.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return nil
	}
	base, confidence := tag.Base()
	if confidence != xlanguage.Exact {
		return nil
	}
	if e, ok := byCode2[base.String()]; ok {
		return e
	}
	if e, ok := byCode3[base.ISO3()]; ok {
		return e
	}
	return nil
}

// ParseLocale maps a configured locale string to a Locale, defaulting to French.
func ParseLocale(value string) Locale {
	if strings.EqualFold(strings.TrimSpace(value), string(English)) {
		return English
	}
	return French
}

// Known reports whether code resolves to a table entry.
func Known(code string) bool {
	return lookup(code) != nil
}

// DisplayName returns the display name of code in the given locale, or the
// locale's unknown sentinel.
func DisplayName(code string, locale Locale) string {
	e := lookup(code)
	if locale == English {
		if e == nil {
			return unknownEnglish
		}
		return e.displayEN
	}
	if e == nil {
		return unknownFrench
	}
	return e.displayFR
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2 (3-letter).
// Unrecognized 3-letter codes pass through; anything else becomes "und".
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}
