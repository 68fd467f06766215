package service

import (
	"fmt"
	"strings"

	"github.com/WanderingWalnut/Grantly/internal/discovery"
	"github.com/WanderingWalnut/Grantly/internal/domain"
	"github.com/WanderingWalnut/Grantly/internal/model"
)

const opValidateProfile = "organization.validate"

// validateProfile trims the names, fills the address country and rejects
// profiles discovery cannot use. The input is not modified.
func validateProfile(p model.OrganizationProfile) (model.OrganizationProfile, error) {
	p = p.Clone()
	p.LegalName = strings.TrimSpace(p.LegalName)
	p.OperatingName = strings.TrimSpace(p.OperatingName)

	if p.LegalName == "" {
		return p, domain.ValidationError(opValidateProfile, "legal_name is required")
	}
	if p.Structure != "" && !p.Structure.Valid() {
		return p, domain.ValidationError(opValidateProfile, fmt.Sprintf("unknown org_structure %q", p.Structure))
	}
	if p.Address != nil {
		if p.Address.Province != "" {
			if _, ok := discovery.NormalizeProvince(p.Address.Province); !ok {
				return p, domain.ValidationError(opValidateProfile, fmt.Sprintf("unknown province %q", p.Address.Province))
			}
		}
		if strings.TrimSpace(p.Address.Country) == "" {
			p.Address.Country = model.DefaultCountry
		}
	}
	if p.Website != "" && !model.IsAbsoluteURL(p.Website) {
		return p, domain.ValidationError(opValidateProfile, "website must be an absolute http(s) url")
	}
	return p, nil
}
