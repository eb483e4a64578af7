// Package catalog loads snapshots of existing focus group records for
// reconciliation.
package catalog

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/audience-cli/internal/model"
)

// ErrMalformed marks a snapshot that cannot be used: invalid JSON, or a
// record without an id or name.
var ErrMalformed = eris.New("catalog: malformed snapshot")

// Source provides an immutable snapshot of existing records.
type Source interface {
	Records(ctx context.Context) ([]model.ExistingRecord, error)
}

// JSONFile is a Source backed by a JSON array on disk.
type JSONFile struct {
	Path string
}

// Records implements Source.
func (f JSONFile) Records(_ context.Context) ([]model.ExistingRecord, error) {
	return LoadJSON(f.Path)
}

// LoadJSON reads a JSON array of existing records. A missing file is
// returned as is; unparseable content and invalid records wrap ErrMalformed.
func LoadJSON(path string) ([]model.ExistingRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses and validates a JSON array of existing records.
func DecodeJSON(data []byte) ([]model.ExistingRecord, error) {
	var records []model.ExistingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(ErrMalformed, "decode: %v", err)
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.ExistingRecord{}
	}
	return records, nil
}

// Validate checks every record, wrapping the first failure in ErrMalformed.
func Validate(records []model.ExistingRecord) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return eris.Wrapf(ErrMalformed, "record %d: %v", i, err)
		}
	}
	return nil
}
