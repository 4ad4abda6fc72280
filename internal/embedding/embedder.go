package embedding

// Vectorizer converts free text into a fixed-length numeric vector.
// The same implementation, built from the same vocabulary, must embed
// both the indexed chunks and every query.
type Vectorizer interface {
	Name() string
	Dimension() int
	Vocabulary() []string
	Embed(text string) []float64
}

// SameVocabulary reports whether two vocabularies are identical term for term.
func SameVocabulary(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
