package enum

// Tax related codes.

// TaxType is the tax of a line or tax table entry.
type TaxType string

const (
	TaxTypeIVA TaxType = "IVA" // value added tax
	TaxTypeIS  TaxType = "IS"  // stamp duty
	TaxTypeNS  TaxType = "NS"  // not subject
)

var taxTypeCodes = newCodeSet("TaxType",
	TaxTypeIVA,
	TaxTypeIS,
	TaxTypeNS,
)

// NewTaxType validates code against the closed set.
func NewTaxType(code string) (TaxType, error) {
	return taxTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v TaxType) Valid() bool {
	return taxTypeCodes.has(v)
}

// TaxTypeValues returns every code, sorted.
func TaxTypeValues() []TaxType {
	return taxTypeCodes.values()
}

// MovementTaxType is the tax of a stock movement line.
type MovementTaxType string

const (
	MovementTaxTypeIVA MovementTaxType = "IVA" // value added tax
	MovementTaxTypeNS  MovementTaxType = "NS"  // not subject
)

var movementTaxTypeCodes = newCodeSet("MovementTaxType",
	MovementTaxTypeIVA,
	MovementTaxTypeNS,
)

// NewMovementTaxType validates code against the closed set.
func NewMovementTaxType(code string) (MovementTaxType, error) {
	return movementTaxTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v MovementTaxType) Valid() bool {
	return movementTaxTypeCodes.has(v)
}

// MovementTaxTypeValues returns every code, sorted.
func MovementTaxTypeValues() []MovementTaxType {
	return movementTaxTypeCodes.values()
}

// TaxExemptionCode is the legal reason of a VAT exemption.
type TaxExemptionCode string

const (
	TaxExemptionCodeM01 TaxExemptionCode = "M01"
	TaxExemptionCodeM02 TaxExemptionCode = "M02"
	TaxExemptionCodeM04 TaxExemptionCode = "M04"
	TaxExemptionCodeM05 TaxExemptionCode = "M05"
	TaxExemptionCodeM06 TaxExemptionCode = "M06"
	TaxExemptionCodeM07 TaxExemptionCode = "M07"
	TaxExemptionCodeM09 TaxExemptionCode = "M09"
	TaxExemptionCodeM10 TaxExemptionCode = "M10"
	TaxExemptionCodeM11 TaxExemptionCode = "M11"
	TaxExemptionCodeM12 TaxExemptionCode = "M12"
	TaxExemptionCodeM13 TaxExemptionCode = "M13"
	TaxExemptionCodeM14 TaxExemptionCode = "M14"
	TaxExemptionCodeM15 TaxExemptionCode = "M15"
	TaxExemptionCodeM16 TaxExemptionCode = "M16"
	TaxExemptionCodeM19 TaxExemptionCode = "M19"
	TaxExemptionCodeM20 TaxExemptionCode = "M20"
	TaxExemptionCodeM21 TaxExemptionCode = "M21"
	TaxExemptionCodeM25 TaxExemptionCode = "M25"
	TaxExemptionCodeM26 TaxExemptionCode = "M26"
	TaxExemptionCodeM30 TaxExemptionCode = "M30"
	TaxExemptionCodeM31 TaxExemptionCode = "M31"
	TaxExemptionCodeM32 TaxExemptionCode = "M32"
	TaxExemptionCodeM33 TaxExemptionCode = "M33"
	TaxExemptionCodeM34 TaxExemptionCode = "M34"
	TaxExemptionCodeM40 TaxExemptionCode = "M40"
	TaxExemptionCodeM41 TaxExemptionCode = "M41"
	TaxExemptionCodeM42 TaxExemptionCode = "M42"
	TaxExemptionCodeM43 TaxExemptionCode = "M43"
	TaxExemptionCodeM44 TaxExemptionCode = "M44"
	TaxExemptionCodeM45 TaxExemptionCode = "M45"
	TaxExemptionCodeM46 TaxExemptionCode = "M46"
	TaxExemptionCodeM99 TaxExemptionCode = "M99"
)

var taxExemptionCodeCodes = newCodeSet("TaxExemptionCode",
	TaxExemptionCodeM01,
	TaxExemptionCodeM02,
	TaxExemptionCodeM04,
	TaxExemptionCodeM05,
	TaxExemptionCodeM06,
	TaxExemptionCodeM07,
	TaxExemptionCodeM09,
	TaxExemptionCodeM10,
	TaxExemptionCodeM11,
	TaxExemptionCodeM12,
	TaxExemptionCodeM13,
	TaxExemptionCodeM14,
	TaxExemptionCodeM15,
	TaxExemptionCodeM16,
	TaxExemptionCodeM19,
	TaxExemptionCodeM20,
	TaxExemptionCodeM21,
	TaxExemptionCodeM25,
	TaxExemptionCodeM26,
	TaxExemptionCodeM30,
	TaxExemptionCodeM31,
	TaxExemptionCodeM32,
	TaxExemptionCodeM33,
	TaxExemptionCodeM34,
	TaxExemptionCodeM40,
	TaxExemptionCodeM41,
	TaxExemptionCodeM42,
	TaxExemptionCodeM43,
	TaxExemptionCodeM44,
	TaxExemptionCodeM45,
	TaxExemptionCodeM46,
	TaxExemptionCodeM99,
)

// NewTaxExemptionCode validates code against the closed set.
func NewTaxExemptionCode(code string) (TaxExemptionCode, error) {
	return taxExemptionCodeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v TaxExemptionCode) Valid() bool {
	return taxExemptionCodeCodes.has(v)
}

// TaxExemptionCodeValues returns every code, sorted.
func TaxExemptionCodeValues() []TaxExemptionCode {
	return taxExemptionCodeCodes.values()
}

// WithholdingTaxType is the tax withheld at source.
type WithholdingTaxType string

const (
	WithholdingTaxTypeIRS WithholdingTaxType = "IRS" // personal income tax
	WithholdingTaxTypeIRC WithholdingTaxType = "IRC" // corporate income tax
	WithholdingTaxTypeIS  WithholdingTaxType = "IS"  // stamp duty
)

var withholdingTaxTypeCodes = newCodeSet("WithholdingTaxType",
	WithholdingTaxTypeIRS,
	WithholdingTaxTypeIRC,
	WithholdingTaxTypeIS,
)

// NewWithholdingTaxType validates code against the closed set.
func NewWithholdingTaxType(code string) (WithholdingTaxType, error) {
	return withholdingTaxTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v WithholdingTaxType) Valid() bool {
	return withholdingTaxTypeCodes.has(v)
}

// WithholdingTaxTypeValues returns every code, sorted.
func WithholdingTaxTypeValues() []WithholdingTaxType {
	return withholdingTaxTypeCodes.values()
}

// TaxAccountingBasis is the kind of data in the file.
type TaxAccountingBasis string

const (
	TaxAccountingBasisC TaxAccountingBasis = "C" // accounting
	TaxAccountingBasisE TaxAccountingBasis = "E" // invoicing issued by third parties
	TaxAccountingBasisF TaxAccountingBasis = "F" // invoicing
	TaxAccountingBasisI TaxAccountingBasis = "I" // integrated accounting and invoicing
	TaxAccountingBasisP TaxAccountingBasis = "P" // partial invoicing
	TaxAccountingBasisR TaxAccountingBasis = "R" // receipts
	TaxAccountingBasisS TaxAccountingBasis = "S" // self-billing
	TaxAccountingBasisT TaxAccountingBasis = "T" // transport documents
)

var taxAccountingBasisCodes = newCodeSet("TaxAccountingBasis",
	TaxAccountingBasisC,
	TaxAccountingBasisE,
	TaxAccountingBasisF,
	TaxAccountingBasisI,
	TaxAccountingBasisP,
	TaxAccountingBasisR,
	TaxAccountingBasisS,
	TaxAccountingBasisT,
)

// NewTaxAccountingBasis validates code against the closed set.
func NewTaxAccountingBasis(code string) (TaxAccountingBasis, error) {
	return taxAccountingBasisCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v TaxAccountingBasis) Valid() bool {
	return taxAccountingBasisCodes.has(v)
}

// TaxAccountingBasisValues returns every code, sorted.
func TaxAccountingBasisValues() []TaxAccountingBasis {
	return taxAccountingBasisCodes.values()
}
