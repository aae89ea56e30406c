package cvextract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/portfolio"
)

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const sampleCV = `John Smith
email: john.smith@example.com
phone: +1 (555) 123-4567
title: Senior Software Engineer
location: Berlin, Germany
linkedin.com/in/johnsmith
github.com/jsmith
website: https://jsmith.dev

Skills: JavaScript, TypeScript, React, Node.js, Docker, AWS and problem solving
`

func TestExtractProfile(t *testing.T) {
	e := New(WithClock(func() time.Time { return fixedNow }))

	got, err := e.Extract(sampleCV)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Profile == nil {
		t.Fatal("expected profile")
	}
	p := got.Profile
	checks := map[string][2]string{
		"name":     {p.Name, "John Smith"},
		"email":    {p.Email, "john.smith@example.com"},
		"phone":    {p.Phone, "+1 (555) 123-4567"},
		"title":    {p.Title, "Senior Software Engineer"},
		"location": {p.Location, "Berlin, Germany"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}
	if p.Bio != "" {
		t.Errorf("bio = %q, want empty", p.Bio)
	}
	want := &portfolio.SocialLinks{
		LinkedIn: "https://linkedin.com/in/johnsmith",
		GitHub:   "https://github.com/jsmith",
		Website:  "https://jsmith.dev",
	}
	if !reflect.DeepEqual(p.SocialLinks, want) {
		t.Errorf("social links = %+v, want %+v", p.SocialLinks, want)
	}
	if len(got.Experience) != 0 || len(got.Projects) != 0 {
		t.Errorf("expected no experience or projects, got %d/%d", len(got.Experience), len(got.Projects))
	}
}

func TestExtractEmptyText(t *testing.T) {
	got, err := New().Extract("")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !got.IsEmpty() {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	e := New(WithClock(func() time.Time { return fixedNow }))
	text := sampleCV + "\n" + jobsSection(3)

	first, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	second, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestExtractRuleFault(t *testing.T) {
	ran := false
	e := New(WithRules(
		Rule{Name: "email", Apply: func(doc *Document, out *portfolio.Partial) {
			ran = true
			profileOf(out).Email = ExtractEmail(doc.Text)
		}},
		Rule{Name: "broken", Apply: func(*Document, *portfolio.Partial) {
			panic("index out of range")
		}},
	))

	got, err := e.Extract(sampleCV)
	if got != nil {
		t.Fatalf("expected nil result on fault, got %+v", got)
	}
	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if !ran {
		t.Fatal("expected rules before the fault to run")
	}
	if extractErr.Rule != "broken" {
		t.Errorf("rule = %q, want broken", extractErr.Rule)
	}
	if err.Error() != "Error parsing CV: index out of range" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestExtractUsesClockForUndatedJobs(t *testing.T) {
	e := New(WithClock(func() time.Time { return fixedNow }))
	text := "Experience\n" +
		"Backend Engineer at Initech\n" +
		"Designed and operated the payments platform for enterprise customers.\n" +
		strings.Repeat("Additional notes about responsibilities and scope.\n", 4)

	got, err := e.Extract(text)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got.Experience) == 0 {
		t.Fatal("expected experience")
	}
	first := got.Experience[0]
	if first.StartDate != "2025-06-15" || !first.StartDateEstimated {
		t.Errorf("start = %q estimated=%v, want 2025-06-15 estimated", first.StartDate, first.StartDateEstimated)
	}
	if first.EndDate != "" {
		t.Errorf("end = %q, want empty", first.EndDate)
	}
}

// jobsSection builds an experience section with n dated entries.
func jobsSection(n int) string {
	var b strings.Builder
	b.WriteString("Experience\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Engineer %d at Company %d (Jan 2020 - Present)\n", i, i)
		b.WriteString("Built and maintained backend services for the platform team.\n")
	}
	return b.String()
}
