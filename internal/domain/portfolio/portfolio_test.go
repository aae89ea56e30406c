package portfolio

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := New(now)

	if p.TemplateID != DefaultTemplateID {
		t.Errorf("templateId = %q, want %q", p.TemplateID, DefaultTemplateID)
	}
	if p.Status != StatusDraft {
		t.Errorf("status = %q, want draft", p.Status)
	}
	if p.Theme.PrimaryColor != "#3b82f6" || p.Theme.SecondaryColor != "#1e40af" {
		t.Errorf("unexpected theme colors: %+v", p.Theme)
	}
	if p.Theme.Font != "Inter" || p.Theme.FontSize != "16px" {
		t.Errorf("unexpected theme font: %+v", p.Theme)
	}
	if p.Skills == nil || p.Projects == nil || p.Experience == nil {
		t.Error("collections must be empty, not nil")
	}
	if !p.CreatedAt.Equal(now) || !p.LastUpdated.Equal(now) {
		t.Error("timestamps not set from now")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("new portfolio should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Portfolio)
	}{
		{"missing template", func(p *Portfolio) { p.TemplateID = "" }},
		{"bad status", func(p *Portfolio) { p.Status = "archived" }},
		{"unnamed skill", func(p *Portfolio) { p.Skills = []Skill{{Level: 10}} }},
		{"level too high", func(p *Portfolio) { p.Skills = []Skill{{Name: "Go", Level: 101}} }},
		{"untitled project", func(p *Portfolio) { p.Projects = []Project{{Description: "x"}} }},
		{"empty experience", func(p *Portfolio) { p.Experience = []Experience{{Description: "x"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(time.Now())
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestMerge_Profile(t *testing.T) {
	p := New(time.Now())
	p.Profile.Name = "Old Name"
	p.Profile.Bio = "keep me"
	p.Profile.SocialLinks = &SocialLinks{Twitter: "https://twitter.com/old"}

	st := p.Merge(&Partial{Profile: &Profile{
		Name:        "New Name",
		Email:       "new@example.com",
		SocialLinks: &SocialLinks{GitHub: "https://github.com/new"},
	}}, sequentialIDs())

	if p.Profile.Name != "New Name" {
		t.Errorf("name = %q, want New Name", p.Profile.Name)
	}
	if p.Profile.Bio != "keep me" {
		t.Errorf("bio overwritten by empty import: %q", p.Profile.Bio)
	}
	if p.Profile.SocialLinks.Twitter == "" || p.Profile.SocialLinks.GitHub == "" {
		t.Errorf("social links not merged per key: %+v", p.Profile.SocialLinks)
	}
	if st.ProfileFields != 3 {
		t.Errorf("profile fields = %d, want 3", st.ProfileFields)
	}
}

func TestMerge_SkillsDeduplicated(t *testing.T) {
	p := New(time.Now())
	p.Skills = []Skill{{ID: "s0", Name: "Go", Level: 90}}

	st := p.Merge(&Partial{Skills: []Skill{
		{Name: "go", Level: DefaultSkillLevel},
		{Name: "Docker", Level: DefaultSkillLevel},
		{Name: "docker", Level: DefaultSkillLevel},
	}}, sequentialIDs())

	if st.Skills != 1 {
		t.Fatalf("added %d skills, want 1", st.Skills)
	}
	if len(p.Skills) != 2 {
		t.Fatalf("len(skills) = %d, want 2", len(p.Skills))
	}
	if p.Skills[0].Level != 90 {
		t.Error("existing skill level changed")
	}
	if p.Skills[1].Name != "Docker" || p.Skills[1].ID != "id-1" {
		t.Errorf("unexpected appended skill: %+v", p.Skills[1])
	}
}

func TestMerge_AppendsWithFreshIDs(t *testing.T) {
	p := New(time.Now())
	st := p.Merge(&Partial{
		Experience: []Experience{{Position: "Dev", Company: "Acme", StartDate: "2020-01-01"}},
		Projects:   []Project{{Title: "A", Description: "a"}, {Title: "B", Description: "b"}},
	}, sequentialIDs())

	if st.Experience != 1 || st.Projects != 2 {
		t.Fatalf("stats = %+v", st)
	}
	ids := map[string]bool{}
	for _, e := range p.Experience {
		ids[e.ID] = true
	}
	for _, pr := range p.Projects {
		ids[pr.ID] = true
	}
	if len(ids) != 3 || ids[""] {
		t.Errorf("expected 3 distinct ids, got %v", ids)
	}
}

func TestMerge_Nil(t *testing.T) {
	p := New(time.Now())
	if st := p.Merge(nil, sequentialIDs()); st != (MergeStats{}) {
		t.Errorf("nil import changed stats: %+v", st)
	}
}

func TestPartialIsEmpty(t *testing.T) {
	if !(&Partial{}).IsEmpty() {
		t.Error("zero partial should be empty")
	}
	if (&Partial{Skills: []Skill{{Name: "Go"}}}).IsEmpty() {
		t.Error("partial with skills should not be empty")
	}
}
