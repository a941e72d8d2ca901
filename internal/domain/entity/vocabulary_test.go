package entity_test

import (
	"testing"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePaymentMethod(t *testing.T) {
	cases := map[string]entity.PaymentMethod{
		"cash":          entity.PaymentCash,
		"Efectivo":      entity.PaymentCash,
		"credit":        entity.PaymentCard,
		"credit_card":   entity.PaymentCard,
		"Debit Card":    entity.PaymentCard,
		"tarjeta":       entity.PaymentCard,
		"Crédito":       entity.PaymentCard,
		"GCash":         entity.PaymentEWallet,
		"maya":          entity.PaymentEWallet,
		"Nequi":         entity.PaymentEWallet,
		"mobile-wallet": entity.PaymentEWallet,
		"ewallet":       entity.PaymentEWallet,
		"Transferencia": entity.PaymentBankTransfer,
		"bank":          entity.PaymentBankTransfer,
		"bitcoin":       entity.PaymentOther,
		"":              entity.PaymentOther,
	}
	for label, want := range cases {
		assert.Equal(t, want, entity.NormalizePaymentMethod(label), "etiqueta %q", label)
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, entity.ExpenseCategory(""), entity.NormalizeCategory(""))
	assert.Equal(t, entity.ExpenseCategory(""), entity.NormalizeCategory("   "))
	assert.Equal(t, entity.CategoryRent, entity.NormalizeCategory("Arriendo"))
	assert.Equal(t, entity.CategorySalaries, entity.NormalizeCategory("Nómina"))
	assert.Equal(t, entity.CategoryMarketing, entity.NormalizeCategory("advertising"))
	assert.Equal(t, entity.CategoryOther, entity.NormalizeCategory("snacks"))
}

func TestVocabulary_CanonicalValuesAreValid(t *testing.T) {
	for _, m := range []string{"cash", "card", "bank_transfer", "e_wallet", "other"} {
		assert.True(t, entity.PaymentMethod(m).Valid(), m)
		assert.Equal(t, entity.PaymentMethod(m), entity.NormalizePaymentMethod(m))
	}
	assert.False(t, entity.PaymentMethod("credit").Valid())
	assert.False(t, entity.ExpenseCategory("food").Valid())
}
