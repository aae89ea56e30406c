// Package cvextract turns free-form resume text into a partial portfolio.
//
// Extraction is a pipeline of independent rules. Each rule reads the whole
// document and fills one part of the result; rules never see each other's
// output. The pipeline is best effort: a rule that finds nothing leaves its
// field absent.
package cvextract

import (
	"fmt"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

// Document is the input shared by all rules.
type Document struct {
	Text string
	// Now is used for dates that cannot be read from the text.
	Now time.Time
}

// Rule fills one part of an extraction result.
type Rule struct {
	Name  string
	Apply func(doc *Document, out *portfolio.Partial)
}

// Error reports a fault inside the pipeline. No partial result accompanies it.
type Error struct {
	Rule   string
	Detail string
}

func (e *Error) Error() string {
	return "Error parsing CV: " + e.Detail
}

// DefaultRules returns the standard pipeline in application order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "name", Apply: profileField(ExtractName, func(p *portfolio.Profile, v string) { p.Name = v })},
		{Name: "email", Apply: profileField(ExtractEmail, func(p *portfolio.Profile, v string) { p.Email = v })},
		{Name: "phone", Apply: profileField(ExtractPhone, func(p *portfolio.Profile, v string) { p.Phone = v })},
		{Name: "title", Apply: profileField(ExtractTitle, func(p *portfolio.Profile, v string) { p.Title = v })},
		{Name: "bio", Apply: profileField(ExtractBio, func(p *portfolio.Profile, v string) { p.Bio = v })},
		{Name: "location", Apply: profileField(ExtractLocation, func(p *portfolio.Profile, v string) { p.Location = v })},
		{Name: "social", Apply: socialRule},
		{Name: "skills", Apply: func(doc *Document, out *portfolio.Partial) { out.Skills = ExtractSkills(doc.Text) }},
		{Name: "experience", Apply: func(doc *Document, out *portfolio.Partial) { out.Experience = ExtractExperience(doc.Text, doc.Now) }},
		{Name: "projects", Apply: func(doc *Document, out *portfolio.Partial) { out.Projects = ExtractProjects(doc.Text) }},
	}
}

// Extractor runs a rule pipeline. It holds no mutable state and is safe for
// concurrent use.
type Extractor struct {
	rules []Rule
	now   func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock used for unreadable dates.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithRules replaces the default pipeline.
func WithRules(rules ...Rule) Option {
	return func(e *Extractor) { e.rules = rules }
}

// New creates an Extractor with the default pipeline and the system clock.
func New(opts ...Option) *Extractor {
	e := &Extractor{rules: DefaultRules(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs every rule over text. On any rule fault it returns an *Error
// and a nil result.
func (e *Extractor) Extract(text string) (*portfolio.Partial, error) {
	doc := &Document{Text: text, Now: e.now()}
	out := &portfolio.Partial{}
	for _, r := range e.rules {
		if err := apply(r, doc, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func apply(r Rule, doc *Document, out *portfolio.Partial) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &Error{Rule: r.Name, Detail: fmt.Sprint(v)}
		}
	}()
	r.Apply(doc, out)
	return nil
}

// profileField adapts a text-to-string extractor into a rule that sets one
// profile field, creating the profile only when a value is found.
func profileField(extract func(string) string, set func(*portfolio.Profile, string)) func(*Document, *portfolio.Partial) {
	return func(doc *Document, out *portfolio.Partial) {
		if v := extract(doc.Text); v != "" {
			set(profileOf(out), v)
		}
	}
}

func socialRule(doc *Document, out *portfolio.Partial) {
	if links := ExtractSocialLinks(doc.Text); links != nil {
		profileOf(out).SocialLinks = links
	}
}

func profileOf(out *portfolio.Partial) *portfolio.Profile {
	if out.Profile == nil {
		out.Profile = &portfolio.Profile{}
	}
	return out.Profile
}
