package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var march2025 = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func TestRFQNumber(t *testing.T) {
	assert.Equal(t, "AMA-25-0001", RFQNumber("AMA", march2025, 1))
	assert.Equal(t, "ZB-25-0042", RFQNumber("zb", march2025, 42))
}

func TestPurchaseOrderNumber(t *testing.T) {
	assert.Equal(t, "PO-202503-0007", PurchaseOrderNumber(march2025, 7))
}

func TestSupplierQuoteNumber(t *testing.T) {
	assert.Equal(t, "SHE-AMA-25-0001-Rev1", SupplierQuoteNumber("Shenzhen Electric", "AMA-25-0001", 1))
	assert.Equal(t, "SHE-AMA-25-0001-Rev2", SupplierQuoteNumber("Shenzhen Electric", "AMA-25-0001", 2))
}

func TestCustomerQuoteNumber(t *testing.T) {
	assert.Equal(t, "CQ-2025-0003", CustomerQuoteNumber(march2025, 3))
}

func TestShipmentNumber(t *testing.T) {
	assert.Equal(t, "SHP-2025-0011", ShipmentNumber(march2025, 11))
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-COM-2025-0012", InvoiceNumber("COMMERCIAL", march2025, 12))
	assert.Equal(t, "INV-PRO-2025-0001", InvoiceNumber("PROFORMA", march2025, 1))
	assert.Equal(t, "INV-SAL-2025-0002", InvoiceNumber("SALES", march2025, 2))
}

func TestTransactionAndPaymentNumbers(t *testing.T) {
	assert.Equal(t, "FT-2025-0100", TransactionNumber(march2025, 100))
	assert.Equal(t, "FP-2025-0001", PaymentNumber(march2025, 1))
}

func TestClientCode(t *testing.T) {
	assert.Equal(t, "AMAZO", ClientCode("Amazon Inc"))
	assert.Equal(t, "ZBXXX", ClientCode("Z & B"))
	assert.Equal(t, "GLOBA", ClientCode("global trading co"))
}

func TestSupplierPrefix(t *testing.T) {
	assert.Equal(t, "SHE", SupplierPrefix("Shenzhen Electric"))
	assert.Equal(t, "ABC", SupplierPrefix("a b c trading"))
	assert.Equal(t, "LIX", SupplierPrefix("Li"))
	assert.Equal(t, "XXX", SupplierPrefix("42"))
	assert.Equal(t, "XXX", SupplierPrefix(""))
}
