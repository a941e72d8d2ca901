package local

// Claves del almacén local. Cada colección se guarda como un único arreglo JSON.
const (
	KeyTransactions       = "transactions"
	KeyInventoryItems     = "inventory_items"
	KeyInventoryMovements = "inventory_movements"
	KeyBusinessProfile    = "business_profile"
	KeyAuthenticated      = "is_authenticated"

	// Preferencias: no son datos del invitado y sobreviven a la migración.
	KeyLanguage  = "language"
	KeyIntroSeen = "intro_seen"
)

// guestDataKeys claves que se limpian tras una migración exitosa.
var guestDataKeys = []string{
	KeyTransactions,
	KeyBusinessProfile,
	KeyInventoryItems,
	KeyInventoryMovements,
}
