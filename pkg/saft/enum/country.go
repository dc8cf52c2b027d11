package enum

// Country is an ISO 3166-1 alpha-2 code, or "Desconhecido" when the country
// of an address is unknown.
type Country string

const (
	CountryPT      Country = "PT"
	CountryES      Country = "ES"
	CountryUnknown Country = "Desconhecido"
)

var countryCodes = newCodeSet[Country]("Country", append(iso3166, CountryUnknown)...)

var iso3166 = []Country{
	"AD", "AE", "AF", "AG", "AI", "AL", "AM", "AO", "AQ", "AR", "AS", "AT", "AU", "AW", "AX", "AZ",
	"BA", "BB", "BD", "BE", "BF", "BG", "BH", "BI", "BJ", "BL", "BM", "BN", "BO", "BQ", "BR", "BS",
	"BT", "BV", "BW", "BY", "BZ", "CA", "CC", "CD", "CF", "CG", "CH", "CI", "CK", "CL", "CM", "CN",
	"CO", "CR", "CU", "CV", "CW", "CX", "CY", "CZ", "DE", "DJ", "DK", "DM", "DO", "DZ", "EC", "EE",
	"EG", "EH", "ER", "ES", "ET", "FI", "FJ", "FK", "FM", "FO", "FR", "GA", "GB", "GD", "GE", "GF",
	"GG", "GH", "GI", "GL", "GM", "GN", "GP", "GQ", "GR", "GS", "GT", "GU", "GW", "GY", "HK", "HM",
	"HN", "HR", "HT", "HU", "ID", "IE", "IL", "IM", "IN", "IO", "IQ", "IR", "IS", "IT", "JE", "JM",
	"JO", "JP", "KE", "KG", "KH", "KI", "KM", "KN", "KP", "KR", "KW", "KY", "KZ", "LA", "LB", "LC",
	"LI", "LK", "LR", "LS", "LT", "LU", "LV", "LY", "MA", "MC", "MD", "ME", "MF", "MG", "MH", "MK",
	"ML", "MM", "MN", "MO", "MP", "MQ", "MR", "MS", "MT", "MU", "MV", "MW", "MX", "MY", "MZ", "NA",
	"NC", "NE", "NF", "NG", "NI", "NL", "NO", "NP", "NR", "NU", "NZ", "OM", "PA", "PE", "PF", "PG",
	"PH", "PK", "PL", "PM", "PN", "PR", "PS", "PT", "PW", "PY", "QA", "RE", "RO", "RS", "RU", "RW",
	"SA", "SB", "SC", "SD", "SE", "SG", "SH", "SI", "SJ", "SK", "SL", "SM", "SN", "SO", "SR", "SS",
	"ST", "SV", "SX", "SY", "SZ", "TC", "TD", "TF", "TG", "TH", "TJ", "TK", "TL", "TM", "TN", "TO",
	"TR", "TT", "TV", "TW", "TZ", "UA", "UG", "UM", "US", "UY", "UZ", "VA", "VC", "VE", "VG", "VI",
	"VN", "VU", "WF", "WS", "XK", "YE", "YT", "ZA", "ZM", "ZW",
}

// NewCountry validates code against ISO 3166-1.
func NewCountry(code string) (Country, error) {
	return countryCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v Country) Valid() bool {
	return countryCodes.has(v)
}

// CountryValues returns every code, sorted.
func CountryValues() []Country {
	return countryCodes.values()
}

// TaxCountryRegion is a country code or one of the Portuguese autonomous
// regions (PT-AC Azores, PT-MA Madeira).
type TaxCountryRegion string

const (
	TaxCountryRegionPT   TaxCountryRegion = "PT"
	TaxCountryRegionPTAC TaxCountryRegion = "PT-AC"
	TaxCountryRegionPTMA TaxCountryRegion = "PT-MA"
)

var taxCountryRegionCodes = func() codeSet[TaxCountryRegion] {
	values := make([]TaxCountryRegion, 0, len(iso3166)+2)
	for _, c := range iso3166 {
		values = append(values, TaxCountryRegion(c))
	}
	values = append(values, TaxCountryRegionPTAC, TaxCountryRegionPTMA)
	return newCodeSet("TaxCountryRegion", values...)
}()

// NewTaxCountryRegion validates code.
func NewTaxCountryRegion(code string) (TaxCountryRegion, error) {
	return taxCountryRegionCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v TaxCountryRegion) Valid() bool {
	return taxCountryRegionCodes.has(v)
}
