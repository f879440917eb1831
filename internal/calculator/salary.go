package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// SalaryParams holds the user-configured inputs of the salary formula.
type SalaryParams struct {
	BaseSalary     decimal.Decimal
	AdvancePayment decimal.Decimal
	TaxRate        decimal.Decimal // percent, 0..100
}

// Validate checks that the parameters are within their allowed ranges.
func (p SalaryParams) Validate() error {
	if p.BaseSalary.IsNegative() {
		return fmt.Errorf("base salary must not be negative, got %s", p.BaseSalary)
	}
	if p.AdvancePayment.IsNegative() {
		return fmt.Errorf("advance payment must not be negative, got %s", p.AdvancePayment)
	}
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(hundred) {
		return fmt.Errorf("tax rate must be between 0 and 100, got %s", p.TaxRate)
	}
	return nil
}

// Salary is the result of the monthly salary formula.
type Salary struct {
	SalesAmount    decimal.Decimal `json:"salesAmount"`
	BaseSalary     decimal.Decimal `json:"baseSalary"`
	BeforeTax      decimal.Decimal `json:"beforeTax"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	AdvancePayment decimal.Decimal `json:"advancePayment"`
	AfterTax       decimal.Decimal `json:"afterTax"`
	NetSalary      decimal.Decimal `json:"netSalary"` // may be negative
}

// CalculateSalary applies the salary formula to records, which are expected
// to be the current month's records:
//
//	beforeTax = Σ amount + baseSalary
//	taxAmount = beforeTax * taxRate / 100
//	afterTax  = beforeTax - taxAmount
//	netSalary = afterTax - advancePayment
//
// Nothing is clamped; an advance larger than the earnings yields a negative net salary.
func CalculateSalary(records []models.Record, params SalaryParams) *Salary {
	sales := decimal.Zero
	for _, r := range records {
		sales = sales.Add(r.Amount)
	}

	beforeTax := sales.Add(params.BaseSalary)
	tax := beforeTax.Mul(params.TaxRate).Div(hundred)
	afterTax := beforeTax.Sub(tax)

	return &Salary{
		SalesAmount:    sales,
		BaseSalary:     params.BaseSalary,
		BeforeTax:      beforeTax,
		TaxAmount:      tax,
		TaxRate:        params.TaxRate,
		AdvancePayment: params.AdvancePayment,
		AfterTax:       afterTax,
		NetSalary:      afterTax.Sub(params.AdvancePayment),
	}
}
