package partition

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Prefix for all per-admin employee tables.
const Prefix = "employees_"

// TableName returns the employee table name for an admin.
// The name is derived only from the server-side admin ID, never from
// client input, so a caller cannot address another admin's partition.
func TableName(adminID uuid.UUID) string {
	return Prefix + hex.EncodeToString(adminID[:])
}

// AdminID is the inverse of TableName. It returns the owning admin ID
// for a table name, or false if the name is not an employee partition.
func AdminID(table string) (uuid.UUID, bool) {
	if !strings.HasPrefix(table, Prefix) {
		return uuid.Nil, false
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(table, Prefix))
	if err != nil || len(raw) != 16 {
		return uuid.Nil, false
	}

	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
