package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// EnrichmentRecord is the opaque structured result returned by the
// enrichment service: a mapping from string keys to scalar or nested
// values, exactly as decoded from the response JSON. The core never
// interprets individual fields; the only operations it needs are key
// enumeration and deep equality.
type EnrichmentRecord map[string]any

// Keys returns the record's top-level keys in sorted order.
// Sorting gives the display layer a stable field order.
func (r EnrichmentRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Canonical returns the record's canonical JSON encoding. encoding/json
// marshals map keys in sorted order at every nesting level, so records
// that are deep-equal always canonicalise to identical bytes.
func (r EnrichmentRecord) Canonical() ([]byte, error) {
	return json.Marshal(r)
}

// Fingerprint returns a hex SHA-256 digest of the canonical encoding.
// Two records have the same fingerprint exactly when they are deep-equal,
// which makes the digest usable as an indexed equality key in storage.
func (r EnrichmentRecord) Fingerprint() (string, error) {
	data, err := r.Canonical()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Equal reports whether two records are deep-equal. Equality is defined
// over the canonical JSON encoding, so numeric representation follows
// whatever the decoder produced (float64 for plain json.Unmarshal).
func (r EnrichmentRecord) Equal(other EnrichmentRecord) bool {
	a, err := r.Canonical()
	if err != nil {
		return false
	}
	b, err := other.Canonical()
	if err != nil {
		return false
	}
	return string(a) == string(b)
}

// Clone returns a deep copy of the record by round-tripping through the
// canonical encoding. Snapshots handed to observers must not alias the
// session's own state.
func (r EnrichmentRecord) Clone() EnrichmentRecord {
	if r == nil {
		return nil
	}
	data, err := r.Canonical()
	if err != nil {
		return nil
	}
	var out EnrichmentRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
