package slots

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// sortIDs упорядочивает ID по байтам, чтобы список сотрудников был детерминированным
func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
