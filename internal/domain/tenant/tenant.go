// Package tenant defines the per-user tenant record and the rules for the
// username and custom domain aliases that point at it.
package tenant

import (
	"fmt"
	"time"

	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain"
)

// Plan names a subscription tier. Only informational for now.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// ValidPlans is the set of accepted plan values. The empty plan is also allowed.
var ValidPlans = map[Plan]bool{
	PlanFree:       true,
	PlanPro:        true,
	PlanEnterprise: true,
}

// Config is the tenant record stored at tenants/<userId>.
// UserID is immutable; the aliases are mutable and resolved at read time.
type Config struct {
	UserID       string    `json:"userId"`
	Username     string    `json:"username,omitempty"`
	CustomDomain string    `json:"customDomain,omitempty"`
	Subdomain    string    `json:"subdomain,omitempty"`
	IsActive     bool      `json:"isActive"`
	Plan         Plan      `json:"plan,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// SettingsRequest is the owner-editable part of a tenant record.
type SettingsRequest struct {
	Username     string `json:"username"`
	CustomDomain string `json:"customDomain"`
	IsActive     *bool  `json:"isActive,omitempty"`
	Plan         Plan   `json:"plan,omitempty"`
}

// Normalize trims and canonicalizes the aliases in place.
func (r *SettingsRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	if r.CustomDomain != "" {
		r.CustomDomain = NormalizeDomain(r.CustomDomain)
	}
}

// Validate checks the request after Normalize has been applied.
func (r *SettingsRequest) Validate() error {
	if r.Username != "" {
		if err := ValidateUsername(r.Username); err != nil {
			return err
		}
	}
	if r.CustomDomain != "" {
		if err := ValidateCustomDomain(r.CustomDomain); err != nil {
			return err
		}
	}
	if r.Plan != "" && !ValidPlans[r.Plan] {
		return fmt.Errorf("%w: invalid plan %q", domain.ErrValidation, r.Plan)
	}
	return nil
}
