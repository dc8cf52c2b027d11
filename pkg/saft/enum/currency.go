package enum

// CurrencyCode is an ISO 4217 currency code.
type CurrencyCode string

// Codes named in code. Every other ISO 4217 code is accepted by NewCurrencyCode.
const (
	CurrencyCodeEUR CurrencyCode = "EUR"
	CurrencyCodeUSD CurrencyCode = "USD"
	CurrencyCodeGBP CurrencyCode = "GBP"
	CurrencyCodeBRL CurrencyCode = "BRL"
	CurrencyCodeAOA CurrencyCode = "AOA"
	CurrencyCodeCHF CurrencyCode = "CHF"
)

var currencyCodes = newCodeSet[CurrencyCode]("CurrencyCode", iso4217...)

var iso4217 = []CurrencyCode{
	"AED", "AFN", "ALL", "AMD", "ANG", "AOA", "ARS", "AUD", "AWG", "AZN", "BAM", "BBD",
	"BDT", "BGN", "BHD", "BIF", "BMD", "BND", "BOB", "BOV", "BRL", "BSD", "BTN", "BWP",
	"BYN", "BZD", "CAD", "CDF", "CHE", "CHF", "CHW", "CLF", "CLP", "CNY", "COP", "COU",
	"CRC", "CUC", "CUP", "CVE", "CZK", "DJF", "DKK", "DOP", "DZD", "EGP", "ERN", "ETB",
	"EUR", "FJD", "FKP", "GBP", "GEL", "GHS", "GIP", "GMD", "GNF", "GTQ", "GYD", "HKD",
	"HNL", "HTG", "HUF", "IDR", "ILS", "INR", "IQD", "IRR", "ISK", "JMD", "JOD", "JPY",
	"KES", "KGS", "KHR", "KMF", "KPW", "KRW", "KWD", "KYD", "KZT", "LAK", "LBP", "LKR",
	"LRD", "LSL", "LYD", "MAD", "MDL", "MGA", "MKD", "MMK", "MNT", "MOP", "MRU", "MUR",
	"MVR", "MWK", "MXN", "MXV", "MYR", "MZN", "NAD", "NGN", "NIO", "NOK", "NPR", "NZD",
	"OMR", "PAB", "PEN", "PGK", "PHP", "PKR", "PLN", "PYG", "QAR", "RON", "RSD", "RUB",
	"RWF", "SAR", "SBD", "SCR", "SDG", "SEK", "SGD", "SHP", "SLE", "SLL", "SOS", "SRD",
	"SSP", "STN", "SVC", "SYP", "SZL", "THB", "TJS", "TMT", "TND", "TOP", "TRY", "TTD",
	"TWD", "TZS", "UAH", "UGX", "USD", "USN", "UYI", "UYU", "UYW", "UZS", "VED", "VES",
	"VND", "VUV", "WST", "XAF", "XAG", "XAU", "XBA", "XBB", "XBC", "XBD", "XCD", "XDR",
	"XOF", "XPD", "XPF", "XPT", "XSU", "XTS", "XUA", "XXX", "YER", "ZAR", "ZMW", "ZWL",
}

// NewCurrencyCode validates code against ISO 4217.
func NewCurrencyCode(code string) (CurrencyCode, error) {
	return currencyCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v CurrencyCode) Valid() bool {
	return currencyCodes.has(v)
}

// CurrencyCodeValues returns every code, sorted.
func CurrencyCodeValues() []CurrencyCode {
	return currencyCodes.values()
}
