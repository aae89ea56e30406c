// Package portfolio defines the portfolio document edited by owners and
// served publicly once published.
package portfolio

import (
	"fmt"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
)

// Status is the lifecycle state of a portfolio copy.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// DefaultTemplateID is assigned to new portfolios.
const DefaultTemplateID = "template-1"

// DefaultSkillLevel is the proficiency given to skills the owner has not rated.
const DefaultSkillLevel = 75

// SocialLinks holds canonical profile URLs.
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// IsZero reports whether no link is set.
func (l SocialLinks) IsZero() bool {
	return l == SocialLinks{}
}

// Profile is the hero/about part of a portfolio.
type Profile struct {
	Name        string       `json:"name,omitempty"`
	Title       string       `json:"title,omitempty"`
	Bio         string       `json:"bio,omitempty"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Location    string       `json:"location,omitempty"`
	AvatarURL   string       `json:"avatarUrl,omitempty"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}

// Skill is a named skill with an optional 1-100 level.
type Skill struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Level    int    `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// Project is a showcased piece of work.
type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	CodeURL      string   `json:"codeUrl,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Featured     bool     `json:"featured,omitempty"`
}

// Experience is a position held. An empty EndDate means the position is current.
// Dates are YYYY-MM-DD. StartDateEstimated marks a start date that could not
// be read from the source and was filled with the import date.
type Experience struct {
	ID                 string `json:"id,omitempty"`
	Company            string `json:"company"`
	Position           string `json:"position"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate,omitempty"`
	Description        string `json:"description"`
	Location           string `json:"location,omitempty"`
	StartDateEstimated bool   `json:"startDateEstimated,omitempty"`
}

// Theme controls colors and typography of the rendered portfolio.
type Theme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	Font           string `json:"font"`
	FontSize       string `json:"fontSize,omitempty"`
}

// DefaultTheme returns the theme applied to new portfolios.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   "#3b82f6",
		SecondaryColor: "#1e40af",
		Font:           "Inter",
		FontSize:       "16px",
	}
}

// Portfolio is one persisted copy (draft or published) of an owner's portfolio.
type Portfolio struct {
	Profile     Profile      `json:"profile"`
	Skills      []Skill      `json:"skills"`
	Projects    []Project    `json:"projects"`
	Experience  []Experience `json:"experience"`
	Theme       Theme        `json:"theme"`
	TemplateID  string       `json:"templateId"`
	Status      Status       `json:"status"`
	LastUpdated time.Time    `json:"lastUpdated"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// New returns the empty draft shown to an owner who has not saved anything yet.
func New(now time.Time) Portfolio {
	return Portfolio{
		Profile:     Profile{SocialLinks: &SocialLinks{}},
		Skills:      []Skill{},
		Projects:    []Project{},
		Experience:  []Experience{},
		Theme:       DefaultTheme(),
		TemplateID:  DefaultTemplateID,
		Status:      StatusDraft,
		LastUpdated: now,
		CreatedAt:   now,
	}
}

// Validate checks structural rules. Template existence is checked by the
// caller against its registry.
func (p *Portfolio) Validate() error {
	if p.TemplateID == "" {
		return fmt.Errorf("%w: templateId is required", domain.ErrValidation)
	}
	if p.Status != "" && p.Status != StatusDraft && p.Status != StatusPublished {
		return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, p.Status)
	}
	for i := range p.Skills {
		if p.Skills[i].Name == "" {
			return fmt.Errorf("%w: skill %d has no name", domain.ErrValidation, i)
		}
		if p.Skills[i].Level < 0 || p.Skills[i].Level > 100 {
			return fmt.Errorf("%w: skill %q level must be between 1 and 100", domain.ErrValidation, p.Skills[i].Name)
		}
	}
	for i := range p.Projects {
		if p.Projects[i].Title == "" {
			return fmt.Errorf("%w: project %d has no title", domain.ErrValidation, i)
		}
	}
	for i := range p.Experience {
		if p.Experience[i].Position == "" && p.Experience[i].Company == "" {
			return fmt.Errorf("%w: experience %d needs a position or company", domain.ErrValidation, i)
		}
	}
	return nil
}

// Partial is an import result. Only the populated parts are merged into a draft.
type Partial struct {
	Profile    *Profile     `json:"profile,omitempty"`
	Skills     []Skill      `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Projects   []Project    `json:"projects,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (p *Partial) IsEmpty() bool {
	return p.Profile == nil && len(p.Skills) == 0 && len(p.Experience) == 0 && len(p.Projects) == 0
}
