package types

// Summary holds the counters reported at the end of an organizing pass.
// Processed counts candidates that matched a rule, whatever happened to them
// afterwards. Total counts every scanned candidate.
type Summary struct {
	Processed int `json:"processed" yaml:"processed"`
	Total     int `json:"total" yaml:"total"`
}

// Add accumulates another pass into s, used by watch mode to report totals.
func (s *Summary) Add(other Summary) {
	s.Processed += other.Processed
	s.Total += other.Total
}
