package mode

// Mode selects which sources a search may consult.
type Mode string

// Search mode constants.
const (
	// Hybrid ranks the catalog and falls back to the remote geocoder on weak matches.
	Hybrid Mode = "hybrid"
	// Local ranks the compiled-in catalog only.
	Local Mode = "local"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Local
}

// AllowsRemote reports whether the mode may call the geocoder.
func (m Mode) AllowsRemote() bool { return m == Hybrid }
