package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PaymentMethod medio de pago (enumeración cerrada).
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentEWallet      PaymentMethod = "e_wallet"
	PaymentOther        PaymentMethod = "other"
)

// Valid indica si el medio pertenece a la enumeración canónica.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentEWallet, PaymentOther:
		return true
	}
	return false
}

// ExpenseCategory categoría de gasto (enumeración cerrada).
type ExpenseCategory string

const (
	CategoryInventory ExpenseCategory = "inventory"
	CategoryRent      ExpenseCategory = "rent"
	CategoryUtilities ExpenseCategory = "utilities"
	CategorySalaries  ExpenseCategory = "salaries"
	CategoryTransport ExpenseCategory = "transport"
	CategoryMarketing ExpenseCategory = "marketing"
	CategorySupplies  ExpenseCategory = "supplies"
	CategoryOther     ExpenseCategory = "other"
)

// Valid indica si la categoría pertenece a la enumeración canónica.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryInventory, CategoryRent, CategoryUtilities, CategorySalaries,
		CategoryTransport, CategoryMarketing, CategorySupplies, CategoryOther:
		return true
	}
	return false
}

// Etiquetas heredadas de versiones anteriores del almacén local.
var legacyPaymentMethods = map[string]PaymentMethod{
	"cash":          PaymentCash,
	"efectivo":      PaymentCash,
	"card":          PaymentCard,
	"credit":        PaymentCard,
	"credit_card":   PaymentCard,
	"debit":         PaymentCard,
	"debit_card":    PaymentCard,
	"tarjeta":       PaymentCard,
	"credito":       PaymentCard,
	"bank_transfer": PaymentBankTransfer,
	"bank":          PaymentBankTransfer,
	"transfer":      PaymentBankTransfer,
	"transferencia": PaymentBankTransfer,
	"e_wallet":      PaymentEWallet,
	"ewallet":       PaymentEWallet,
	"mobile_wallet": PaymentEWallet,
	"gcash":         PaymentEWallet,
	"maya":          PaymentEWallet,
	"paymaya":       PaymentEWallet,
	"nequi":         PaymentEWallet,
	"daviplata":     PaymentEWallet,
	"other":         PaymentOther,
}

var legacyCategories = map[string]ExpenseCategory{
	"inventory":   CategoryInventory,
	"stock":       CategoryInventory,
	"inventario":  CategoryInventory,
	"rent":        CategoryRent,
	"arriendo":    CategoryRent,
	"utilities":   CategoryUtilities,
	"servicios":   CategoryUtilities,
	"salaries":    CategorySalaries,
	"salary":      CategorySalaries,
	"payroll":     CategorySalaries,
	"nomina":      CategorySalaries,
	"transport":   CategoryTransport,
	"delivery":    CategoryTransport,
	"transporte":  CategoryTransport,
	"marketing":   CategoryMarketing,
	"advertising": CategoryMarketing,
	"publicidad":  CategoryMarketing,
	"supplies":    CategorySupplies,
	"insumos":     CategorySupplies,
	"other":       CategoryOther,
}

// NormalizePaymentMethod mapea etiquetas heredadas o alternativas al medio canónico.
// Etiquetas desconocidas se mapean a PaymentOther.
func NormalizePaymentMethod(label string) PaymentMethod {
	if m, ok := legacyPaymentMethods[vocabularyKey(label)]; ok {
		return m
	}
	return PaymentOther
}

// NormalizeCategory mapea etiquetas heredadas a la categoría canónica.
// Vacío sigue siendo vacío (la categoría es opcional); desconocidas → CategoryOther.
func NormalizeCategory(label string) ExpenseCategory {
	key := vocabularyKey(label)
	if key == "" {
		return ""
	}
	if c, ok := legacyCategories[key]; ok {
		return c
	}
	return CategoryOther
}

// vocabularyKey pliega mayúsculas, quita tildes y unifica separadores: "Crédito " → "credito",
// "Mobile-Wallet" → "mobile_wallet".
func vocabularyKey(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(label))
	if err != nil {
		folded = strings.TrimSpace(label)
	}
	folded = cases.Fold().String(folded)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(folded)
}
