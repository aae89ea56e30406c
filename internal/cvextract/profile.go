package cvextract

import (
	"regexp"
	"strings"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

const maxBioLength = 500

var (
	labeledNamePattern = regexp.MustCompile(`(?i)name\s*:?\s*([^\n]+)`)
	// Two or more capitalized words at the start of a line.
	capitalizedNamePattern = regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)

	emailPattern = regexp.MustCompile(`(?i)([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	phonePattern = regexp.MustCompile(`(\+?[\d\s\-()]{10,})`)

	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:title|position|role)\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)(?:software engineer|developer|designer|manager|director|senior|junior|lead)\s+([^\n]+)`),
	}

	bioPattern      = regexp.MustCompile(`(?i)(?:about|summary|objective|profile)\s*:?\s*([^\n]{50,500})`)
	locationPattern = regexp.MustCompile(`(?i)(?:location|address|city|based in)\s*:?\s*([^\n]+)`)

	linkedInPattern = regexp.MustCompile(`(?i)(?:linkedin|linkedin\.com/in/)([a-zA-Z0-9-]+)`)
	gitHubPattern   = regexp.MustCompile(`(?i)(?:github|github\.com/)([a-zA-Z0-9-]+)`)
	websitePattern  = regexp.MustCompile(`(?i)(https?://[^\s]+)`)
)

// firstGroup returns the trimmed first capture group of the first match.
func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ExtractName returns a "Name:" label value, else the first line that starts
// with two or more capitalized words.
func ExtractName(text string) string {
	if v, ok := firstGroup(labeledNamePattern, text); ok {
		return v
	}
	v, _ := firstGroup(capitalizedNamePattern, text)
	return v
}

// ExtractEmail returns the first email-like token.
func ExtractEmail(text string) string {
	v, _ := firstGroup(emailPattern, text)
	return v
}

// ExtractPhone returns the first run of at least 10 digits, spaces, dashes,
// parentheses, optionally prefixed with "+".
func ExtractPhone(text string) string {
	v, _ := firstGroup(phonePattern, text)
	return v
}

// ExtractTitle tries a "Title:"/"Position:"/"Role:" label first, then a line
// led by a job-title keyword.
func ExtractTitle(text string) string {
	for _, re := range titlePatterns {
		if v, ok := firstGroup(re, text); ok {
			return v
		}
	}
	return ""
}

// ExtractBio returns 50-500 characters following an about/summary heading.
func ExtractBio(text string) string {
	v, _ := firstGroup(bioPattern, text)
	return truncateRunes(v, maxBioLength)
}

// ExtractLocation returns the value after a location/address/city heading.
func ExtractLocation(text string) string {
	v, _ := firstGroup(locationPattern, text)
	return v
}

// ExtractSocialLinks builds canonical LinkedIn and GitHub URLs from handles
// and captures the first bare URL as the website. Nil when nothing matched.
func ExtractSocialLinks(text string) *portfolio.SocialLinks {
	var links portfolio.SocialLinks
	if m := linkedInPattern.FindStringSubmatch(text); m != nil {
		links.LinkedIn = "https://linkedin.com/in/" + m[1]
	}
	if m := gitHubPattern.FindStringSubmatch(text); m != nil {
		links.GitHub = "https://github.com/" + m[1]
	}
	if m := websitePattern.FindStringSubmatch(text); m != nil {
		links.Website = m[1]
	}
	if links.IsZero() {
		return nil
	}
	return &links
}
