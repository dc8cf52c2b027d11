package enum

// Document type and status codes.

// InvoiceType is the type of a sales invoice.
type InvoiceType string

const (
	InvoiceTypeFT InvoiceType = "FT" // invoice
	InvoiceTypeFS InvoiceType = "FS" // simplified invoice
	InvoiceTypeFR InvoiceType = "FR" // invoice-receipt
	InvoiceTypeND InvoiceType = "ND" // debit note
	InvoiceTypeNC InvoiceType = "NC" // credit note
)

var invoiceTypeCodes = newCodeSet("InvoiceType",
	InvoiceTypeFT,
	InvoiceTypeFS,
	InvoiceTypeFR,
	InvoiceTypeND,
	InvoiceTypeNC,
)

// NewInvoiceType validates code against the closed set.
func NewInvoiceType(code string) (InvoiceType, error) {
	return invoiceTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v InvoiceType) Valid() bool {
	return invoiceTypeCodes.has(v)
}

// InvoiceTypeValues returns every code, sorted.
func InvoiceTypeValues() []InvoiceType {
	return invoiceTypeCodes.values()
}

// MovementType is the type of a stock movement document.
type MovementType string

const (
	MovementTypeGR MovementType = "GR" // delivery note
	MovementTypeGT MovementType = "GT" // transport guide
	MovementTypeGA MovementType = "GA" // own fixed assets movement guide
	MovementTypeGC MovementType = "GC" // consignment guide
	MovementTypeGD MovementType = "GD" // return guide
)

var movementTypeCodes = newCodeSet("MovementType",
	MovementTypeGR,
	MovementTypeGT,
	MovementTypeGA,
	MovementTypeGC,
	MovementTypeGD,
)

// NewMovementType validates code against the closed set.
func NewMovementType(code string) (MovementType, error) {
	return movementTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v MovementType) Valid() bool {
	return movementTypeCodes.has(v)
}

// MovementTypeValues returns every code, sorted.
func MovementTypeValues() []MovementType {
	return movementTypeCodes.values()
}

// WorkType is the type of a working document.
type WorkType string

const (
	WorkTypeCM WorkType = "CM" // table consultation
	WorkTypeCC WorkType = "CC" // consignment credit note
	WorkTypeFC WorkType = "FC" // consignment invoice
	WorkTypeFO WorkType = "FO" // worksheet
	WorkTypeNE WorkType = "NE" // purchase order
	WorkTypeOU WorkType = "OU" // other
	WorkTypeOR WorkType = "OR" // budget
	WorkTypePF WorkType = "PF" // pro-forma invoice
	WorkTypeDC WorkType = "DC" // issued documents
	WorkTypeRP WorkType = "RP" // premium receipt
	WorkTypeRE WorkType = "RE" // reversal of premium
	WorkTypeCS WorkType = "CS" // co-insurer imputation
	WorkTypeLD WorkType = "LD" // leading co-insurer imputation
	WorkTypeRA WorkType = "RA" // accepted reinsurance
)

var workTypeCodes = newCodeSet("WorkType",
	WorkTypeCM,
	WorkTypeCC,
	WorkTypeFC,
	WorkTypeFO,
	WorkTypeNE,
	WorkTypeOU,
	WorkTypeOR,
	WorkTypePF,
	WorkTypeDC,
	WorkTypeRP,
	WorkTypeRE,
	WorkTypeCS,
	WorkTypeLD,
	WorkTypeRA,
)

// NewWorkType validates code against the closed set.
func NewWorkType(code string) (WorkType, error) {
	return workTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v WorkType) Valid() bool {
	return workTypeCodes.has(v)
}

// WorkTypeValues returns every code, sorted.
func WorkTypeValues() []WorkType {
	return workTypeCodes.values()
}

// PaymentType is the type of a receipt.
type PaymentType string

const (
	PaymentTypeRC PaymentType = "RC" // receipt under the cash VAT scheme
	PaymentTypeRG PaymentType = "RG" // other receipt
)

var paymentTypeCodes = newCodeSet("PaymentType",
	PaymentTypeRC,
	PaymentTypeRG,
)

// NewPaymentType validates code against the closed set.
func NewPaymentType(code string) (PaymentType, error) {
	return paymentTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v PaymentType) Valid() bool {
	return paymentTypeCodes.has(v)
}

// PaymentTypeValues returns every code, sorted.
func PaymentTypeValues() []PaymentType {
	return paymentTypeCodes.values()
}

// InvoiceStatus is the state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceStatusN InvoiceStatus = "N" // normal
	InvoiceStatusS InvoiceStatus = "S" // self-billed
	InvoiceStatusA InvoiceStatus = "A" // cancelled
	InvoiceStatusR InvoiceStatus = "R" // summary of other documents
	InvoiceStatusF InvoiceStatus = "F" // billed
)

var invoiceStatusCodes = newCodeSet("InvoiceStatus",
	InvoiceStatusN,
	InvoiceStatusS,
	InvoiceStatusA,
	InvoiceStatusR,
	InvoiceStatusF,
)

// NewInvoiceStatus validates code against the closed set.
func NewInvoiceStatus(code string) (InvoiceStatus, error) {
	return invoiceStatusCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v InvoiceStatus) Valid() bool {
	return invoiceStatusCodes.has(v)
}

// InvoiceStatusValues returns every code, sorted.
func InvoiceStatusValues() []InvoiceStatus {
	return invoiceStatusCodes.values()
}

// MovementStatus is the state of a stock movement.
type MovementStatus string

const (
	MovementStatusN MovementStatus = "N" // normal
	MovementStatusT MovementStatus = "T" // billed on behalf of third parties
	MovementStatusA MovementStatus = "A" // cancelled
	MovementStatusF MovementStatus = "F" // billed
	MovementStatusR MovementStatus = "R" // summary of other documents
)

var movementStatusCodes = newCodeSet("MovementStatus",
	MovementStatusN,
	MovementStatusT,
	MovementStatusA,
	MovementStatusF,
	MovementStatusR,
)

// NewMovementStatus validates code against the closed set.
func NewMovementStatus(code string) (MovementStatus, error) {
	return movementStatusCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v MovementStatus) Valid() bool {
	return movementStatusCodes.has(v)
}

// MovementStatusValues returns every code, sorted.
func MovementStatusValues() []MovementStatus {
	return movementStatusCodes.values()
}

// WorkStatus is the state of a working document.
type WorkStatus string

const (
	WorkStatusN WorkStatus = "N" // normal
	WorkStatusA WorkStatus = "A" // cancelled
	WorkStatusF WorkStatus = "F" // billed
)

var workStatusCodes = newCodeSet("WorkStatus",
	WorkStatusN,
	WorkStatusA,
	WorkStatusF,
)

// NewWorkStatus validates code against the closed set.
func NewWorkStatus(code string) (WorkStatus, error) {
	return workStatusCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v WorkStatus) Valid() bool {
	return workStatusCodes.has(v)
}

// WorkStatusValues returns every code, sorted.
func WorkStatusValues() []WorkStatus {
	return workStatusCodes.values()
}

// PaymentStatus is the state of a receipt.
type PaymentStatus string

const (
	PaymentStatusN PaymentStatus = "N" // normal
	PaymentStatusA PaymentStatus = "A" // cancelled
)

var paymentStatusCodes = newCodeSet("PaymentStatus",
	PaymentStatusN,
	PaymentStatusA,
)

// NewPaymentStatus validates code against the closed set.
func NewPaymentStatus(code string) (PaymentStatus, error) {
	return paymentStatusCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v PaymentStatus) Valid() bool {
	return paymentStatusCodes.has(v)
}

// PaymentStatusValues returns every code, sorted.
func PaymentStatusValues() []PaymentStatus {
	return paymentStatusCodes.values()
}

// SourceBilling is the origin of a document.
type SourceBilling string

const (
	SourceBillingP SourceBilling = "P" // produced by the application
	SourceBillingI SourceBilling = "I" // integrated from another application
	SourceBillingM SourceBilling = "M" // recovered or issued manually
)

var sourceBillingCodes = newCodeSet("SourceBilling",
	SourceBillingP,
	SourceBillingI,
	SourceBillingM,
)

// NewSourceBilling validates code against the closed set.
func NewSourceBilling(code string) (SourceBilling, error) {
	return sourceBillingCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v SourceBilling) Valid() bool {
	return sourceBillingCodes.has(v)
}

// SourceBillingValues returns every code, sorted.
func SourceBillingValues() []SourceBilling {
	return sourceBillingCodes.values()
}

// SourcePayment is the origin of a receipt.
type SourcePayment string

const (
	SourcePaymentP SourcePayment = "P" // produced by the application
	SourcePaymentI SourcePayment = "I" // integrated from another application
	SourcePaymentM SourcePayment = "M" // recovered or issued manually
)

var sourcePaymentCodes = newCodeSet("SourcePayment",
	SourcePaymentP,
	SourcePaymentI,
	SourcePaymentM,
)

// NewSourcePayment validates code against the closed set.
func NewSourcePayment(code string) (SourcePayment, error) {
	return sourcePaymentCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v SourcePayment) Valid() bool {
	return sourcePaymentCodes.has(v)
}

// SourcePaymentValues returns every code, sorted.
func SourcePaymentValues() []SourcePayment {
	return sourcePaymentCodes.values()
}

// ExportType is which sections of SourceDocuments are exported.
type ExportType string

const (
	ExportTypeC ExportType = "C" // complete
	ExportTypeS ExportType = "S" // simplified, sales invoices only
)

var exportTypeCodes = newCodeSet("ExportType",
	ExportTypeC,
	ExportTypeS,
)

// NewExportType validates code against the closed set.
func NewExportType(code string) (ExportType, error) {
	return exportTypeCodes.parse(code)
}

// Valid reports whether v is a known code.
func (v ExportType) Valid() bool {
	return exportTypeCodes.has(v)
}

// ExportTypeValues returns every code, sorted.
func ExportTypeValues() []ExportType {
	return exportTypeCodes.values()
}
