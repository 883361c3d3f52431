// Package csvio reads transaction rows from CSV and writes account
// snapshots back out. It validates every row up front so the ledger only
// ever sees well-formed records.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

var (
	ErrBadHeader      = errors.New("bad header")
	ErrUnknownType    = errors.New("unknown transaction type")
	ErrMissingAmount  = errors.New("missing amount")
	ErrNegativeAmount = errors.New("negative amount")
	ErrMalformedField = errors.New("malformed field")
)

// RecordError reports the input line a decoding failure came from.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

type columns struct {
	kind, client, tx, amount int
}

// Decode reads every row of r. The first row is the header and must name
// the type, client and tx columns; amount is optional. Decoding stops at the
// first malformed row.
func Decode(r io.Reader) ([]models.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &RecordError{Line: 1, Err: errors.Wrap(ErrBadHeader, "empty input")}
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, &RecordError{Line: 1, Err: err}
	}

	var records []models.TransactionRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		line, _ := reader.FieldPos(0)

		rec, err := parseRow(cols, row)
		if err != nil {
			return nil, &RecordError{Line: line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile decodes the CSV file at path.
func ReadFile(path string) ([]models.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return records, nil
}

func parseHeader(header []string) (columns, error) {
	cols := columns{kind: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			cols.kind = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}
	if cols.kind < 0 || cols.client < 0 || cols.tx < 0 {
		return cols, errors.Wrapf(ErrBadHeader, "want type,client,tx[,amount], got %q", strings.Join(header, ","))
	}
	return cols, nil
}

func parseRow(cols columns, row []string) (models.TransactionRecord, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	tag := strings.ToLower(field(cols.kind))
	kind, ok := models.ParseKind(tag)
	if !ok {
		return models.TransactionRecord{}, errors.Wrapf(ErrUnknownType, "%q", tag)
	}

	client, err := strconv.ParseUint(field(cols.client), 10, 16)
	if err != nil {
		return models.TransactionRecord{}, errors.Wrapf(ErrMalformedField, "client %q", field(cols.client))
	}
	tx, err := strconv.ParseUint(field(cols.tx), 10, 32)
	if err != nil {
		return models.TransactionRecord{}, errors.Wrapf(ErrMalformedField, "tx %q", field(cols.tx))
	}

	rec := models.TransactionRecord{
		Kind:   kind,
		Client: models.ClientID(client),
		Tx:     models.TxID(tx),
	}
	if !kind.CarriesAmount() {
		return rec, nil
	}

	raw := field(cols.amount)
	if raw == "" {
		return models.TransactionRecord{}, errors.Wrapf(ErrMissingAmount, "%s tx %d", kind, tx)
	}
	amount, err := models.NewAmountFromString(raw)
	if err != nil {
		return models.TransactionRecord{}, errors.Wrapf(ErrMalformedField, "amount %q", raw)
	}
	if amount.IsNegative() {
		return models.TransactionRecord{}, errors.Wrapf(ErrNegativeAmount, "%q", raw)
	}
	rec.Amount = amount
	return rec, nil
}
