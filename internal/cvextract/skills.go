package cvextract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

// MaxSkills caps the number of extracted skills.
const MaxSkills = 20

var skillsSectionPattern = regexp.MustCompile(`(?i)(?:skills|technical skills|technologies?|competencies?)\s*:?\s*([^\n]{50,1000})`)

// skillBank is searched in order; matches keep the casing used in the text.
var skillBank = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(JavaScript|TypeScript|Python|Java|C\+\+|C#|Ruby|PHP|Go|Rust|Swift|Kotlin)\b`),
	regexp.MustCompile(`(?i)\b(React|Angular|Vue|Node\.js|Express|Django|Flask|Spring|Laravel)\b`),
	regexp.MustCompile(`(?i)\b(HTML|CSS|SCSS|SASS|Tailwind|Bootstrap)\b`),
	regexp.MustCompile(`(?i)\b(SQL|MySQL|PostgreSQL|MongoDB|Redis|Firebase)\b`),
	regexp.MustCompile(`(?i)\b(AWS|Azure|GCP|Docker|Kubernetes|Git|CI/CD)\b`),
	regexp.MustCompile(`(?i)\b(UI/UX|Figma|Adobe|Photoshop|Illustrator)\b`),
}

// Runs of letters, whitespace, "/" and "&" between other punctuation.
var skillTokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z\s/&]+`)

const (
	maxSkillTokens     = 20
	minSkillTokenRunes = 2  // exclusive
	maxSkillTokenRunes = 30 // exclusive
)

// orderedSet keeps distinct strings in insertion order.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

// SkillsSection returns the 50-1000 characters after a skills heading on
// the same line, or "".
func SkillsSection(text string) string {
	m := skillsSectionPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractSkills finds known technologies in the skills section, then adds
// free-form tokens from the same section. Names are compared case-sensitively.
// At most MaxSkills entries are returned, each at the default level.
func ExtractSkills(text string) []portfolio.Skill {
	span := SkillsSection(text)
	if span == "" {
		return nil
	}

	var found orderedSet
	for _, re := range skillBank {
		for _, m := range re.FindAllString(span, -1) {
			found.add(m)
		}
	}

	for _, tok := range skillTokenPattern.FindAllString(span, maxSkillTokens) {
		tok = strings.TrimSpace(tok)
		n := utf8.RuneCountInString(tok)
		if n > minSkillTokenRunes && n < maxSkillTokenRunes {
			found.add(tok)
		}
	}

	names := found.items
	if len(names) > MaxSkills {
		names = names[:MaxSkills]
	}
	if len(names) == 0 {
		return nil
	}
	skills := make([]portfolio.Skill, 0, len(names))
	for _, n := range names {
		skills = append(skills, portfolio.Skill{Name: n, Level: portfolio.DefaultSkillLevel})
	}
	return skills
}
