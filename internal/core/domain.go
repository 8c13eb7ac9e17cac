package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Columns is the fixed header of the cost sheet. Order is significant:
// every row written to the store follows it, and reconciliation rewrites
// the store whenever row 0 differs from it.
var Columns = []string{
	"Data", "Cliente/Projeto", "Categoria", "Descrição",
	"Quantidade", "Preço Unitário", "Subtotal", "Desconto (%)",
	"Total", "Status Pagamento", "Forma Pagamento", "Observações",
}

// Categories holds the known expense categories. The list is a var, not a
// const set: deployments may append their own before startup.
var Categories = []string{
	"Materiais de Construção",
	"Ferramentas",
	"Mão de Obra",
	"Transporte",
	"Equipamentos",
	"Limpeza",
	"Pintura",
	"Elétrica",
	"Hidráulica",
	"Outros",
}

const (
	StatusPending   = "Pendente"
	StatusPaid      = "Pago"
	StatusPartial   = "Parcial"
	StatusCancelled = "Cancelado"
)

var PaymentStatuses = []string{StatusPending, StatusPaid, StatusPartial, StatusCancelled}

var PaymentMethods = []string{
	"Dinheiro", "PIX", "Cartão Débito", "Cartão Crédito",
	"Transferência", "Cheque", "Boleto",
}

// DateLayout is the cell format for the date column, day first.
const DateLayout = "02/01/2006"

type (
	// Date is a calendar date. The zero value is the null-date marker:
	// unparsable cells load as a zero Date and render as "N/A".
	Date struct {
		time.Time
	}

	// Record is one expense entry, one row in the store. Subtotal and
	// Total are derived at write time and stored redundantly; readers
	// never recompute them.
	Record struct {
		Date        Date
		Client      string
		Category    string
		Description string
		Quantity    decimal.Decimal
		UnitPrice   decimal.Decimal
		Subtotal    decimal.Decimal
		Discount    int // percent, 0-50
		Total       decimal.Decimal
		Status      string
		Method      string
		Notes       string
	}
)

var (
	ErrEmptyClient      = errors.New("empty client/project")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidQuantity  = errors.New("quantity must be at least 0.01")
	ErrInvalidUnitPrice = errors.New("unit price cannot be negative")
	ErrInvalidDiscount  = errors.New("discount must be between 0 and 50")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownStatus    = errors.New("unknown payment status")
	ErrUnknownMethod    = errors.New("unknown payment method")
)

// NewDate builds a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a DD/MM/YYYY cell. Anything else yields the null date.
func ParseDate(s string) Date {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}
	}
	return Date{Time: t}
}

// IsNull reports whether the date is the null-date marker.
func (d Date) IsNull() bool {
	return d.IsZero()
}

// Cell renders the date for a sheet cell, empty when null.
func (d Date) Cell() string {
	if d.IsNull() {
		return ""
	}
	return d.Format(DateLayout)
}

// Display renders the date for reports, "N/A" when null.
func (d Date) Display() string {
	if d.IsNull() {
		return "N/A"
	}
	return d.Format(DateLayout)
}

var (
	minQuantity = decimal.NewFromFloat(0.01)
	oneHundred  = decimal.NewFromInt(100)
)

// Subtotal computes quantity × unit price.
func ComputeSubtotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ComputeTotal applies a percentage discount to a subtotal.
func ComputeTotal(subtotal decimal.Decimal, discount int) decimal.Decimal {
	factor := oneHundred.Sub(decimal.NewFromInt(int64(discount))).Div(oneHundred)
	return subtotal.Mul(factor)
}

// NewRecord assembles a Record, deriving Subtotal and Total. It does not
// validate; call Validate before handing the record to a writer.
func NewRecord(date Date, client, category, description string,
	quantity, unitPrice decimal.Decimal, discount int,
	status, method, notes string) Record {
	subtotal := ComputeSubtotal(quantity, unitPrice)
	return Record{
		Date:        date,
		Client:      strings.TrimSpace(client),
		Category:    category,
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       ComputeTotal(subtotal, discount),
		Status:      status,
		Method:      method,
		Notes:       strings.TrimSpace(notes),
	}
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Client) == "" {
		return ErrEmptyClient
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if r.Quantity.LessThan(minQuantity) {
		return ErrInvalidQuantity
	}
	if r.UnitPrice.IsNegative() {
		return ErrInvalidUnitPrice
	}
	if r.Discount < 0 || r.Discount > 50 {
		return ErrInvalidDiscount
	}
	if !contains(Categories, r.Category) {
		return ErrUnknownCategory
	}
	if !contains(PaymentStatuses, r.Status) {
		return ErrUnknownStatus
	}
	if !contains(PaymentMethods, r.Method) {
		return ErrUnknownMethod
	}
	return nil
}

// Row renders the record as store cells in fixed column order.
func (r Record) Row() []string {
	return []string{
		r.Date.Cell(),
		r.Client,
		r.Category,
		r.Description,
		r.Quantity.String(),
		r.UnitPrice.String(),
		r.Subtotal.String(),
		decimal.NewFromInt(int64(r.Discount)).String(),
		r.Total.String(),
		r.Status,
		r.Method,
		r.Notes,
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
