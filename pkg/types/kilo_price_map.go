package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// KiloPriceMap maps weight-label keys ("1kg", "2kg") to prices, persisted as JSONB.
// Keys are literal labels; no unit conversion happens anywhere in the system.
type KiloPriceMap map[string]decimal.Decimal

// Value marshals the map into JSON for Postgres.
func (m KiloPriceMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (m *KiloPriceMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("kilo price map: unsupported scan type %T", value)
	}

	result := make(KiloPriceMap)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*m = result
	return nil
}

// SortedKeys returns the weight labels in lexical order for stable messaging.
func (m KiloPriceMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
