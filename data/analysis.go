package data

// Analysis identifies a trained model that predictions can be requested from.
type Analysis struct {
	ID      string
	TableID string
	JobID   string
	JobDir  string
	Version string
}
