package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lotledger/invoice-parser/internal/domain/invoice"
)

// WriteJSON renders the full record as indented JSON.
func WriteJSON(w io.Writer, rec *invoice.InvoiceRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
