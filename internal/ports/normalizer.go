package ports

// Normalizer defines the interface for word case normalization.
// Implementations receive a word that is already known to contain letters only.
type Normalizer interface {
	Normalize(word string) string
}
