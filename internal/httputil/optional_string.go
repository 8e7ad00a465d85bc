package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit null,
// which a plain *string cannot do. Item updates need the distinction for
// the nullable columns (description, genre, institution, subject): absent
// means leave alone, null means clear (RFC 7396 merge-patch semantics).
//
//	Present=false            field absent, no change
//	Present=true, Value=nil  field is JSON null, clear the column
//	Present=true, Value=&s   field carries s (possibly empty)
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON records presence; the decoder only invokes it when the
// field appeared in the payload.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
