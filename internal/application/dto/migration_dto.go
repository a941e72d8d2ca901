package dto

// MigrationResponse salida de POST /api/migration/guest.
type MigrationResponse struct {
	BusinessID   string `json:"business_id"`
	Items        int    `json:"items"`
	Transactions int    `json:"transactions"`
	Batches      int    `json:"batches"`
}
