package cache

// schemaVersion is mixed into every key so that cached reports from an
// older layout are never decoded by a newer binary.
const schemaVersion = 1

// ReportKeyOpts are the analysis options that change a cached report.
type ReportKeyOpts struct {
	Detailed bool `json:"detailed"`
}

// RobotsKeyOpts identify a robots computation.
type RobotsKeyOpts struct {
	Width     int64 `json:"width"`
	Height    int64 `json:"height"`
	Seconds   int64 `json:"seconds"`
	EasterEgg bool  `json:"easter_egg"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ReportKey returns the key of the report for a snapshot with the given
	// input hash.
	ReportKey(inputHash string, opts ReportKeyOpts) string
	// RobotsKey returns the key of a robots result.
	RobotsKey(inputHash string, opts RobotsKeyOpts) string
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return hashKey("report", schemaVersion, inputHash, opts)
}

func (DefaultKeyer) RobotsKey(inputHash string, opts RobotsKeyOpts) string {
	return hashKey("robots", schemaVersion, inputHash, opts)
}
