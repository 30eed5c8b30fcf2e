package importer

import (
	"github.com/google/uuid"
	"github.com/kommunalcrm/treasury/internal/models"
)

// TransactionPreview is used to preview transactions that will be imported.
type TransactionPreview struct {
	Transaction             models.Transaction
	DuplicateTransactionIDs []uuid.UUID // IDs of existing transactions with the same import hash
}

// Duplicate reports whether the transaction has already been imported.
func (p TransactionPreview) Duplicate() bool {
	return len(p.DuplicateTransactionIDs) > 0
}
