package enum

// Payment and product codes.

// PaymentMechanism is the means of a payment.
type PaymentMechanism string

const (
	PaymentMechanismCC PaymentMechanism = "CC" // credit card
	PaymentMechanismCD PaymentMechanism = "CD" // debit card
	PaymentMechanismCH PaymentMechanism = "CH" // bank cheque
	PaymentMechanismCI PaymentMechanism = "CI" // international documentary credit
	PaymentMechanismCO PaymentMechanism = "CO" // gift cheque or card
	PaymentMechanismCS PaymentMechanism = "CS" // balance compensation
	PaymentMechanismDE PaymentMechanism = "DE" // electronic money
	PaymentMechanismLC PaymentMechanism = "LC" // commercial bill
	PaymentMechanismMB PaymentMechanism = "MB" // ATM payment reference
	PaymentMechanismNU PaymentMechanism = "NU" // cash
	PaymentMechanismOU PaymentMechanism = "OU" // other
	PaymentMechanismPR PaymentMechanism = "PR" // barter
	PaymentMechanismTB PaymentMechanism = "TB" // bank transfer
	PaymentMechanismTR PaymentMechanism = "TR" // restaurant ticket
)

var paymentMechanismCodes = newCodeSet("PaymentMechanism",
	PaymentMechanismCC,
	PaymentMechanismCD,
	PaymentMechanismCH,
	PaymentMechanismCI,
	PaymentMechanismCO,
	PaymentMechanismCS,
	PaymentMechanismDE,
	PaymentMechanismLC,
	PaymentMechanismMB,
	PaymentMechanismNU,
	PaymentMechanismOU,
	PaymentMechanismPR,
	PaymentMechanismTB,
	PaymentMechanismTR,
)

// NewPaymentMechanism validates code against the closed set.
func NewPaymentMechanism(code string) (PaymentMechanism, error) {
	return paymentMechanismCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v PaymentMechanism) Valid() bool {
	return paymentMechanismCodes.has(v)
}

// PaymentMechanismValues returns every code, sorted.
func PaymentMechanismValues() []PaymentMechanism {
	return paymentMechanismCodes.values()
}

// ProductType is the kind of a product.
type ProductType string

const (
	ProductTypeP ProductType = "P" // product
	ProductTypeS ProductType = "S" // service
	ProductTypeO ProductType = "O" // other
	ProductTypeE ProductType = "E" // special consumption tax
	ProductTypeI ProductType = "I" // taxes, fees and parafiscal levies
)

var productTypeCodes = newCodeSet("ProductType",
	ProductTypeP,
	ProductTypeS,
	ProductTypeO,
	ProductTypeE,
	ProductTypeI,
)

// NewProductType validates code against the closed set.
func NewProductType(code string) (ProductType, error) {
	return productTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v ProductType) Valid() bool {
	return productTypeCodes.has(v)
}

// ProductTypeValues returns every code, sorted.
func ProductTypeValues() []ProductType {
	return productTypeCodes.values()
}
