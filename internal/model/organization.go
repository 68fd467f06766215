package model

import (
	"slices"
	"time"
)

type OrgStructure string

const (
	StructureNonprofit OrgStructure = "nonprofit"
	StructureCharity   OrgStructure = "charity"
	StructureCoop      OrgStructure = "coop"
	StructureOther     OrgStructure = "other"
)

func (s OrgStructure) Valid() bool {
	switch s {
	case StructureNonprofit, StructureCharity, StructureCoop, StructureOther:
		return true
	}
	return false
}

const DefaultCountry = "CA"

type Address struct {
	Street     string `json:"street,omitempty" yaml:"street,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	Province   string `json:"province,omitempty" yaml:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
}

// OrganizationProfile is the normalized description of an applicant
// organization. It is read-only for the duration of a discovery request.
type OrganizationProfile struct {
	LegalName          string       `json:"legal_name" yaml:"legal_name"`
	OperatingName      string       `json:"operating_name,omitempty" yaml:"operating_name,omitempty"`
	RegistrationNumber string       `json:"cra_business_number,omitempty" yaml:"cra_business_number,omitempty"`
	Structure          OrgStructure `json:"org_structure,omitempty" yaml:"org_structure,omitempty"`
	NAICSCode          string       `json:"naics_code,omitempty" yaml:"naics_code,omitempty"`
	SectorTags         []string     `json:"sector_tags,omitempty" yaml:"sector_tags,omitempty"`
	Address            *Address     `json:"address,omitempty" yaml:"address,omitempty"`
	ContactEmail       string       `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
	Website            string       `json:"website,omitempty" yaml:"website,omitempty"`
}

// Province returns the address province, or "" when no address is set.
func (p OrganizationProfile) Province() string {
	if p.Address == nil {
		return ""
	}
	return p.Address.Province
}

// DisplayName prefers the operating name over the legal name.
func (p OrganizationProfile) DisplayName() string {
	if p.OperatingName != "" {
		return p.OperatingName
	}
	return p.LegalName
}

// UniqueSectorTags returns the sector tags in first-seen order with
// duplicates and blanks removed.
func (p OrganizationProfile) UniqueSectorTags() []string {
	seen := make(map[string]struct{}, len(p.SectorTags))
	out := make([]string, 0, len(p.SectorTags))
	for _, tag := range p.SectorTags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (p OrganizationProfile) Clone() OrganizationProfile {
	out := p
	out.SectorTags = slices.Clone(p.SectorTags)
	if p.Address != nil {
		addr := *p.Address
		out.Address = &addr
	}
	return out
}

// Organization is a persisted organization profile.
type Organization struct {
	ID        int64               `json:"id"`
	Profile   OrganizationProfile `json:"profile"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
