package cvextract

import (
	"regexp"
	"strings"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

// MaxExperience caps the number of extracted positions.
const MaxExperience = 10

const (
	experienceMinSection = 200
	experienceMaxSection = 5000
	minLineRunes         = 10 // exclusive
	placeholderCompany   = "Company"
)

var (
	experienceHeader = regexp.MustCompile(`(?i)(?:experience|work experience|employment|career)(\s*:?\s*)`)

	// <Position> at <Company> (<dates>) <description>
	jobPattern = regexp.MustCompile(`(?i)([A-Z][^\n]+?)\s+at\s+([A-Z][^\n]+?)(?:\s+\(([^\n]+?)\))?\s*([^\n]{50,300})`)
)

// ExperienceSection returns the experience span of text, or "".
func ExperienceSection(text string) string {
	return section(text, experienceHeader, experienceMinSection, experienceMaxSection)
}

// ExtractExperience reads "<Position> at <Company> (<dates>) <description>"
// entries from the experience section. When none match, non-trivial lines
// are grouped as position, company, description. Start dates that cannot be
// read are set to now and flagged as estimated.
func ExtractExperience(text string, now time.Time) []portfolio.Experience {
	span := ExperienceSection(text)
	if span == "" {
		return nil
	}

	var out []portfolio.Experience
	for _, m := range jobPattern.FindAllStringSubmatch(span, MaxExperience) {
		e := portfolio.Experience{
			Position:    strings.TrimSpace(m[1]),
			Company:     strings.TrimSpace(m[2]),
			Description: strings.TrimSpace(m[4]),
		}
		dates := ParseDates(m[3])
		setDates(&e, dates, now)
		out = append(out, e)
	}

	if len(out) == 0 {
		out = groupExperienceLines(meaningfulLines(span, minLineRunes), now)
	}
	if len(out) > MaxExperience {
		out = out[:MaxExperience]
	}
	return out
}

func groupExperienceLines(lines []string, now time.Time) []portfolio.Experience {
	var out []portfolio.Experience
	for i := 0; i < len(lines) && len(out) < MaxExperience; i += 3 {
		e := portfolio.Experience{
			Position: lines[i],
			Company:  placeholderCompany,
		}
		if i+1 < len(lines) {
			e.Company = lines[i+1]
		}
		if i+2 < len(lines) {
			e.Description = lines[i+2]
		}
		setDates(&e, DateRange{}, now)
		out = append(out, e)
	}
	return out
}

func setDates(e *portfolio.Experience, r DateRange, now time.Time) {
	e.StartDate = r.Start
	e.EndDate = r.End
	if e.StartDate == "" {
		e.StartDate = now.Format(DateLayout)
		e.StartDateEstimated = true
	}
}
