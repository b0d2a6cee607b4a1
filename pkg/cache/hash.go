package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
)

// Keyer builds cache keys.
type Keyer interface {
	// PlotKey is the key of the figure pair computed from one results
	// object under one set of options.
	PlotKey(resultsHash string, opts PlotKeyOpts) string

	// ImportKey is the key of a results object imported from a workbook
	// or CSV file with the given content hash.
	ImportKey(fileHash string, opts ImportKeyOpts) string
}

// PlotKeyOpts lists every option that changes a computed figure.
type PlotKeyOpts struct {
	Heatmap    heatmap.Options `json:"heatmap"`
	TickBudget int             `json:"tick_budget"`
	Config     plot.Config     `json:"config"`
	Title      string          `json:"title"`
}

// ImportKeyOpts lists every option that changes an import.
type ImportKeyOpts struct {
	Format string `json:"format"`
	Sheet  string `json:"sheet"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlotKey implements Keyer.
func (DefaultKeyer) PlotKey(resultsHash string, opts PlotKeyOpts) string {
	return hashKey("plot", resultsHash, opts)
}

// ImportKey implements Keyer.
func (DefaultKeyer) ImportKey(fileHash string, opts ImportKeyOpts) string {
	return hashKey("import", fileHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
