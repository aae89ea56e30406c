package cvextract

import (
	"regexp"
	"strings"
	"testing"
)

var testHeader = regexp.MustCompile(`(?i)(?:experience)(\s*:?\s*)`)

func TestSectionTooShort(t *testing.T) {
	text := "Experience: " + strings.Repeat("x", 150)
	if got := section(text, testHeader, 200, 5000); got != "" {
		t.Errorf("expected empty section, got %d runes", len(got))
	}
}

func TestSectionTruncates(t *testing.T) {
	text := "Experience:\n" + strings.Repeat("y", 6000)
	got := section(text, testHeader, 200, 5000)
	if len(got) != 5000 || strings.Trim(got, "y") != "" {
		t.Errorf("got %d runes", len(got))
	}
}

func TestSectionKeepsSeparatorWhenShort(t *testing.T) {
	text := "Experience:" + strings.Repeat(" ", 100) + strings.Repeat("x", 150)
	got := section(text, testHeader, 200, 5000)
	want := strings.Repeat(" ", 50) + strings.Repeat("x", 150)
	if got != want {
		t.Errorf("got %q", got)
	}
}

func TestMeaningfulLines(t *testing.T) {
	got := meaningfulLines("  short \n  this line is long enough  \n\n0123456789\n01234567890", 10)
	want := []string{"this line is long enough", "01234567890"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q", got)
	}
}

func TestRuneHelpers(t *testing.T) {
	if got := truncateRunes("héllo", 2); got != "hé" {
		t.Errorf("truncateRunes = %q", got)
	}
	if got := lastRunes("héllo", 4); got != "éllo" {
		t.Errorf("lastRunes = %q", got)
	}
}
