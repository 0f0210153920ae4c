// Package numbering generates the human-facing document numbers used across
// the back office. Sequence values come from the repositories (count of
// existing documents in the period); formatting lives here so every document
// type numbers itself the same way.
package numbering

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// RFQNumber formats an RFQ number as [CLIENT]-[YY]-[NNNN], e.g. AMA-25-0001.
func RFQNumber(clientCode string, at time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%04d", strings.ToUpper(clientCode), at.Format("06"), sequence)
}

// PurchaseOrderNumber formats a PO number as PO-[YYYYMM]-[NNNN].
func PurchaseOrderNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("PO-%s-%04d", at.Format("200601"), sequence)
}

// SupplierQuoteNumber formats a supplier quote number as
// [SUP3]-[RFQ number]-Rev[N]. The supplier prefix is the first three letters
// of the supplier name, padded with 'X' when shorter.
func SupplierQuoteNumber(supplierName, rfqNumber string, revision int) string {
	return fmt.Sprintf("%s-%s-Rev%d", SupplierPrefix(supplierName), rfqNumber, revision)
}

// CustomerQuoteNumber formats a customer quote number as CQ-[YYYY]-[NNNN].
func CustomerQuoteNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("CQ-%s-%04d", at.Format("2006"), sequence)
}

// ShipmentNumber formats a shipment number as SHP-[YYYY]-[NNNN].
func ShipmentNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("SHP-%s-%04d", at.Format("2006"), sequence)
}

// InvoiceNumber formats an invoice number as INV-[KIND3]-[YYYY]-[NNNN],
// e.g. INV-COM-2025-0012 for a commercial invoice.
func InvoiceNumber(kind string, at time.Time, sequence int) string {
	k := strings.ToUpper(kind)
	if len(k) > 3 {
		k = k[:3]
	}
	return fmt.Sprintf("INV-%s-%s-%04d", k, at.Format("2006"), sequence)
}

// TransactionNumber formats a financial transaction number as FT-[YYYY]-[NNNN].
func TransactionNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("FT-%s-%04d", at.Format("2006"), sequence)
}

// PaymentNumber formats a financial payment number as FP-[YYYY]-[NNNN].
func PaymentNumber(at time.Time, sequence int) string {
	return fmt.Sprintf("FP-%s-%04d", at.Format("2006"), sequence)
}

// ClientCode derives a five-letter client code from a company name,
// uppercased, ignoring non-letters and padding with 'X' when fewer than five
// letters exist.
func ClientCode(clientName string) string {
	var letters []rune
	for _, r := range clientName {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 5 {
				break
			}
		}
	}
	for len(letters) < 5 {
		letters = append(letters, 'X')
	}
	return string(letters)
}

// SupplierPrefix extracts the first three letters of a supplier name,
// uppercased, ignoring non-letters and padding with 'X' when fewer than three
// letters exist.
func SupplierPrefix(supplierName string) string {
	var letters []rune
	for _, r := range supplierName {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return string(letters)
}
