package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_wordlist_check/internal/pool"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

// ASCIINormalizer title-cases ASCII words through lookup tables and hands
// anything else to a fallback normalizer.
type ASCIINormalizer struct {
	// Pre-computed case tables for ASCII characters (0-127)
	upperTable [128]byte
	lowerTable [128]byte

	fallback ports.Normalizer
	bytePool *pool.BufferPool
}

// NewASCIINormalizer creates a new ASCII fast-path normalizer.
// A nil fallback uses the TitleCaseNormalizer.
func NewASCIINormalizer(fallback ports.Normalizer) ports.Normalizer {
	if fallback == nil {
		fallback = NewTitleCaseNormalizer()
	}

	n := &ASCIINormalizer{
		fallback: fallback,
		bytePool: pool.NewBufferPool(64),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		n.upperTable[i] = byte(unicode.ToUpper(r))
		n.lowerTable[i] = byte(unicode.ToLower(r))
	}

	return n
}

// Normalize title-cases word.
func (n *ASCIINormalizer) Normalize(word string) string {
	if len(word) == 0 {
		return ""
	}

	for i := 0; i < len(word); i++ {
		if word[i] >= 128 {
			return n.fallback.Normalize(word)
		}
	}

	// Already canonical words are returned without allocating.
	if n.isTitle(word) {
		return word
	}

	buf := n.bytePool.Get()
	defer n.bytePool.Put(buf)

	*buf = append(*buf, n.upperTable[word[0]])
	for i := 1; i < len(word); i++ {
		*buf = append(*buf, n.lowerTable[word[i]])
	}

	return string(*buf)
}

func (n *ASCIINormalizer) isTitle(word string) bool {
	if n.upperTable[word[0]] != word[0] {
		return false
	}
	for i := 1; i < len(word); i++ {
		if n.lowerTable[word[i]] != word[i] {
			return false
		}
	}
	return true
}

// NormalizerFactory creates normalizers of different types
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType defines the available normalizer implementations
type NormalizerType int

const (
	// TitleCaseNormalizerType always goes through the Unicode casing tables
	TitleCaseNormalizerType NormalizerType = iota
	// ASCIINormalizerType uses the ASCII fast path when possible
	ASCIINormalizerType
)

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case TitleCaseNormalizerType:
		return NewTitleCaseNormalizer()
	default:
		return NewASCIINormalizer(nil)
	}
}
