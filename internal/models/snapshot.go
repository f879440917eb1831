package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the full exported state used for backup and restore.
//
// On import, a nil collection means "not present in the backup" and leaves the
// stored collection untouched. An empty, non-nil collection overwrites it.
type Snapshot struct {
	Products   []Product                  `json:"products"`
	Records    []Record                   `json:"records"`
	Presets    []decimal.Decimal          `json:"presets"`
	Settings   map[string]json.RawMessage `json:"settings"`
	ExportDate time.Time                  `json:"exportDate"`
	Version    string                     `json:"version"`
}
