package discovery

// Lookup tables driving query construction, normalization and relevance
// filtering. Every table is matched case-insensitively against lowercase text.

// Jurisdiction maps a government domain to the sponsor and region it implies.
type Jurisdiction struct {
	Domain  string
	Sponsor string
	Region  string
}

// JurisdictionDomains is ordered; the first domain matching a host wins.
var JurisdictionDomains = []Jurisdiction{
	{Domain: "alberta.ca", Sponsor: "Government of Alberta", Region: "Alberta"},
	{Domain: "gov.bc.ca", Sponsor: "Government of British Columbia", Region: "British Columbia"},
	{Domain: "saskatchewan.ca", Sponsor: "Government of Saskatchewan", Region: "Saskatchewan"},
	{Domain: "gov.mb.ca", Sponsor: "Government of Manitoba", Region: "Manitoba"},
	{Domain: "ontario.ca", Sponsor: "Government of Ontario", Region: "Ontario"},
	{Domain: "quebec.ca", Sponsor: "Gouvernement du Québec", Region: "Quebec"},
	{Domain: "canada.ca", Sponsor: "Government of Canada", Region: "National"},
	{Domain: "gc.ca", Sponsor: "Government of Canada", Region: "National"},
}

// Province is a Canadian province or territory.
type Province struct {
	Code string
	Name string
}

var Provinces = []Province{
	{Code: "AB", Name: "Alberta"},
	{Code: "BC", Name: "British Columbia"},
	{Code: "MB", Name: "Manitoba"},
	{Code: "NB", Name: "New Brunswick"},
	{Code: "NL", Name: "Newfoundland and Labrador"},
	{Code: "NS", Name: "Nova Scotia"},
	{Code: "NT", Name: "Northwest Territories"},
	{Code: "NU", Name: "Nunavut"},
	{Code: "ON", Name: "Ontario"},
	{Code: "PE", Name: "Prince Edward Island"},
	{Code: "QC", Name: "Quebec"},
	{Code: "SK", Name: "Saskatchewan"},
	{Code: "YT", Name: "Yukon"},
}

// ProvinceAliases maps informal spellings to a province code. Codes and full
// names are matched directly from Provinces and need no entry here.
var ProvinceAliases = map[string]string{
	"alta":            "AB",
	"b.c.":            "BC",
	"man":             "MB",
	"newfoundland":    "NL",
	"labrador":        "NL",
	"nwt":             "NT",
	"ont":             "ON",
	"pei":             "PE",
	"p.e.i.":          "PE",
	"québec":          "QC",
	"que":             "QC",
	"sask":            "SK",
	"yukon territory": "YT",
}

// CountryTLD is the top-level domain accepted by the lenient domain gate.
const CountryTLD = ".ca"

// JurisdictionHints are accepted by the lenient domain gate when the host is
// outside the country TLD.
var JurisdictionHints = []string{
	"canada",
	"canadian",
	"government of canada",
	"alberta",
	"british columbia",
	"saskatchewan",
	"manitoba",
	"ontario",
	"quebec",
	"nova scotia",
	"new brunswick",
	"prince edward island",
	"newfoundland",
	"yukon",
	"nunavut",
	"northwest territories",
}

// ClosedPhrases mark a program that no longer accepts applications.
var ClosedPhrases = []string{
	"applications are closed",
	"application intake is closed",
	"intake is closed",
	"intake has closed",
	"program is closed",
	"program has ended",
	"program has closed",
	"funding has ended",
	"no longer accepting applications",
	"not accepting applications",
	"deadline has passed",
	"archived content",
	"this page has been archived",
}

// ApplyPhrases mark a program page that explains how to apply.
var ApplyPhrases = []string{
	"how to apply",
	"apply now",
	"apply online",
	"apply for funding",
	"application form",
	"application guide",
	"accepting applications",
	"applications are open",
	"intake is open",
	"submit an application",
	"submit your application",
}

// IndividualPhrases mark programs aimed at individuals rather than organizations.
var IndividualPhrases = []string{
	"income support",
	"student aid",
	"student loan",
	"student grant",
	"personal income",
	"individuals and families",
	"benefit for individuals",
	"tax credit for individuals",
	"disability benefit",
	"employment insurance",
	"pension",
}

// OrganizationPhrases mark programs open to organizations.
var OrganizationPhrases = []string{
	"nonprofit",
	"non-profit",
	"not-for-profit",
	"charity",
	"charities",
	"community organization",
	"community group",
	"eligible organizations",
	"eligible organisations",
	"eligible applicants",
	"societies",
	"cooperative",
	"co-operative",
}

// HubPages are generic funding landing pages whose title says nothing about
// the specific program; the program is inferred from the snippet instead.
var HubPages = []string{
	"https://www.alberta.ca/funding-for-non-profits",
	"https://www.alberta.ca/community-grants",
	"https://www.canada.ca/en/services/funding.html",
	"https://www.canada.ca/en/employment-social-development/services/funding.html",
}

// ProgramKeyword maps a snippet keyword to the canonical program name.
type ProgramKeyword struct {
	Keyword string
	Program string
}

// ProgramKeywords is ordered; more specific keywords come first.
var ProgramKeywords = []ProgramKeyword{
	{Keyword: "cfep small", Program: "Community Facility Enhancement Program (CFEP) Small"},
	{Keyword: "cfep large", Program: "Community Facility Enhancement Program (CFEP) Large"},
	{Keyword: "community facility enhancement", Program: "Community Facility Enhancement Program (CFEP)"},
	{Keyword: "cfep", Program: "Community Facility Enhancement Program (CFEP)"},
	{Keyword: "cip operating", Program: "Community Initiatives Program (CIP) Operating"},
	{Keyword: "cip project", Program: "Community Initiatives Program (CIP) Project-Based"},
	{Keyword: "community initiatives program", Program: "Community Initiatives Program (CIP)"},
	{Keyword: "other initiatives program", Program: "Other Initiatives Program (OIP)"},
	{Keyword: "new horizons for seniors", Program: "New Horizons for Seniors Program"},
	{Keyword: "community services recovery", Program: "Community Services Recovery Fund"},
	{Keyword: "enabling accessibility fund", Program: "Enabling Accessibility Fund"},
	{Keyword: "canada summer jobs", Program: "Canada Summer Jobs"},
	{Keyword: "canada cultural spaces", Program: "Canada Cultural Spaces Fund"},
}

// ProgramSubPages are the known program pages targeted one query each by the
// fan-out query strategy.
var ProgramSubPages = []string{
	"alberta.ca/community-facility-enhancement-program",
	"alberta.ca/community-initiatives-program",
	"alberta.ca/other-initiatives-program",
	"canada.ca/en/employment-social-development/services/funding/new-horizons-seniors-community",
	"canada.ca/en/employment-social-development/services/funding/community-services-recovery",
	"canada.ca/en/employment-social-development/programs/enabling-accessibility-fund",
	"canada.ca/en/canadian-heritage/services/funding/cultural-spaces-fund",
}

// HowToApplyVariants is the closed set of phrase variants added to every
// fan-out query.
var HowToApplyVariants = []string{
	"how to apply",
	"application form",
	"apply now",
	"eligibility",
}

// DefaultSearchDomains restrict live searches and the relevance domain gate.
var DefaultSearchDomains = []string{"canada.ca", "gc.ca", "alberta.ca"}
