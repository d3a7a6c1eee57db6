// Package shortcode generates and validates shortcodes and destination URLs.
package shortcode

import (
	"errors"
	"math/rand"
	"net/url"
	"regexp"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet of generated codes.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// Length of generated codes.
	Length = 8
)

var codeRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,12}$`)

var errNotAbsolute = errors.New("url must have a scheme and a host")

// Generator produces candidate shortcodes. Candidates are not guaranteed to be unique.
type Generator interface {
	Generate() (string, error)
}

// NanoIDGenerator draws codes from crypto/rand.
type NanoIDGenerator struct{}

// NewGenerator returns the default generator.
func NewGenerator() *NanoIDGenerator {
	return &NanoIDGenerator{}
}

// Generate returns a random Length-character code over Alphabet.
func (NanoIDGenerator) Generate() (string, error) {
	return gonanoid.Generate(Alphabet, Length)
}

// SeededGenerator is a deterministic generator for tests and reproducible runs.
type SeededGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededGenerator returns a generator whose sequence depends only on seed.
func NewSeededGenerator(seed int64) *SeededGenerator {
	return &SeededGenerator{rnd: rand.New(rand.NewSource(seed))} //nolint:gosec
}

// Generate returns the next code of the sequence.
func (g *SeededGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[g.rnd.Intn(len(Alphabet))]
	}
	return string(b), nil
}

// Valid reports whether code is 3-12 ASCII letters or digits.
func Valid(code string) bool {
	return validation.Validate(code,
		validation.Required,
		validation.Match(codeRegex),
	) == nil
}

// ValidURL reports whether candidate parses as an absolute URL with a scheme and a host.
func ValidURL(candidate string) bool {
	return validation.Validate(candidate,
		validation.Required,
		validation.By(absoluteURL),
	) == nil
}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return errNotAbsolute
	}
	return nil
}
