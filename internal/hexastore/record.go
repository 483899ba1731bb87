package hexastore

import (
	"encoding/json"
	"fmt"
)

const recordVersion = 2

// record is the payload stored under all six keys of a fact. Components
// are raw bytes so strings that are not valid UTF-8 survive the JSON round
// trip unchanged.
type record struct {
	V int    `json:"v"`
	S []byte `json:"s"`
	P []byte `json:"p"`
	O []byte `json:"o"`
}

func encodeRecord(t Triple) ([]byte, error) {
	b, err := json.Marshal(record{
		V: recordVersion,
		S: []byte(t.Subject),
		P: []byte(t.Predicate),
		O: []byte(t.Object),
	})
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return b, nil
}

func decodeRecord(b []byte) (Triple, error) {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return Triple{}, fmt.Errorf("decode record: %w", err)
	}
	if r.V != recordVersion {
		return Triple{}, fmt.Errorf("decode record: unsupported version %d", r.V)
	}
	return Triple{Subject: string(r.S), Predicate: string(r.P), Object: string(r.O)}, nil
}
