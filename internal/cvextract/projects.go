package cvextract

import (
	"regexp"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

// MaxProjects caps the number of extracted projects.
const MaxProjects = 10

const (
	projectsMinSection        = 200
	projectsMaxSection        = 3000
	placeholderProjectSummary = "Project description"
)

var projectsHeader = regexp.MustCompile(`(?i)(?:projects|portfolio|projects?)(\s*:?\s*)`)

// ProjectsSection returns the projects span of text, or "".
func ProjectsSection(text string) string {
	return section(text, projectsHeader, projectsMinSection, projectsMaxSection)
}

// ExtractProjects pairs non-trivial lines of the projects section as title
// and description.
func ExtractProjects(text string) []portfolio.Project {
	span := ProjectsSection(text)
	if span == "" {
		return nil
	}
	lines := meaningfulLines(span, minLineRunes)

	var out []portfolio.Project
	for i := 0; i < len(lines) && len(out) < MaxProjects; i += 2 {
		p := portfolio.Project{Title: lines[i], Description: placeholderProjectSummary}
		if i+1 < len(lines) {
			p.Description = lines[i+1]
		}
		out = append(out, p)
	}
	return out
}
