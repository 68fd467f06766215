package discovery

import (
	"net/url"
	"strings"
)

// hostOf returns the lowercase host of link without port, or "" when link
// does not parse.
func hostOf(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// hostMatches reports whether host is domain itself or one of its subdomains.
func hostMatches(host, domain string) bool {
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func hostMatchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if hostMatches(host, d) {
			return true
		}
	}
	return false
}

// InferJurisdiction returns the sponsor/region implied by the link's domain.
// ok is false when no entry in JurisdictionDomains matches.
func InferJurisdiction(link string) (j Jurisdiction, ok bool) {
	host := hostOf(link)
	for _, entry := range JurisdictionDomains {
		if hostMatches(host, entry.Domain) {
			return entry, true
		}
	}
	return Jurisdiction{}, false
}

// NormalizeProvince resolves a province code, name or alias to its two-letter
// code. ok is false for unknown input.
func NormalizeProvince(s string) (code string, ok bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", false
	}
	for _, p := range Provinces {
		if key == strings.ToLower(p.Code) || key == strings.ToLower(p.Name) {
			return p.Code, true
		}
	}
	if code, ok := ProvinceAliases[key]; ok {
		return code, true
	}
	return "", false
}

// ProvinceName returns the display name for a code, name or alias; unknown
// input is returned trimmed and unchanged.
func ProvinceName(s string) string {
	code, ok := NormalizeProvince(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	for _, p := range Provinces {
		if p.Code == code {
			return p.Name
		}
	}
	return strings.TrimSpace(s)
}

func isNationalRegion(region string) bool {
	r := strings.TrimSpace(region)
	return r == "" || strings.EqualFold(r, "national")
}
