package portfolio

import "strings"

// MergeStats reports how much of an import was applied.
type MergeStats struct {
	ProfileFields int `json:"profileFields"`
	Skills        int `json:"skills"`
	Experience    int `json:"experience"`
	Projects      int `json:"projects"`
}

// Merge applies an import to p. Non-empty profile fields overwrite, social
// links merge per key, skills already present (case-insensitive name) are
// skipped, and experience and projects are appended. Every added record gets
// an ID from newID.
func (p *Portfolio) Merge(imp *Partial, newID func() string) MergeStats {
	var st MergeStats
	if imp == nil {
		return st
	}

	if imp.Profile != nil {
		st.ProfileFields = mergeProfile(&p.Profile, imp.Profile)
	}

	seen := make(map[string]bool, len(p.Skills))
	for i := range p.Skills {
		seen[strings.ToLower(p.Skills[i].Name)] = true
	}
	for _, s := range imp.Skills {
		key := strings.ToLower(s.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.ID = newID()
		p.Skills = append(p.Skills, s)
		st.Skills++
	}

	for _, e := range imp.Experience {
		e.ID = newID()
		p.Experience = append(p.Experience, e)
		st.Experience++
	}

	for _, pr := range imp.Projects {
		pr.ID = newID()
		p.Projects = append(p.Projects, pr)
		st.Projects++
	}

	return st
}

func mergeProfile(dst, src *Profile) int {
	n := 0
	set := func(d *string, v string) {
		if v != "" {
			*d = v
			n++
		}
	}
	set(&dst.Name, src.Name)
	set(&dst.Title, src.Title)
	set(&dst.Bio, src.Bio)
	set(&dst.Email, src.Email)
	set(&dst.Phone, src.Phone)
	set(&dst.Location, src.Location)
	set(&dst.AvatarURL, src.AvatarURL)

	if src.SocialLinks != nil && !src.SocialLinks.IsZero() {
		if dst.SocialLinks == nil {
			dst.SocialLinks = &SocialLinks{}
		}
		set(&dst.SocialLinks.LinkedIn, src.SocialLinks.LinkedIn)
		set(&dst.SocialLinks.GitHub, src.SocialLinks.GitHub)
		set(&dst.SocialLinks.Twitter, src.SocialLinks.Twitter)
		set(&dst.SocialLinks.Website, src.SocialLinks.Website)
	}
	return n
}
