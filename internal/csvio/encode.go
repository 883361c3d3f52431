package csvio

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"

	"github.com/google/renameio"
	"github.com/pkg/errors"
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Encode writes one row per snapshot, preceded by the header.
func Encode(w io.Writer, snapshot []models.AccountSnapshot) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(outputHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, s := range snapshot {
		row := []string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrapf(err, "write client %d", s.Client)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush output")
}

// WriteFile replaces path with the encoded snapshot. Readers of path see
// either the old file or the complete new one.
func WriteFile(path string, snapshot []models.AccountSnapshot) error {
	pending, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer pending.Cleanup()

	if err := Encode(pending, snapshot); err != nil {
		return err
	}
	return errors.Wrapf(pending.CloseAtomicallyReplace(), "replace %s", path)
}
