// Package identifier turns raw icon names into unique exported Go identifiers.
//
// Synthesis is a pure function of the raw name and the caller-owned set of
// identifiers already assigned in the current generation pass. Callers must
// feed names in a fixed order for the output to be reproducible.
package identifier

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker is prefixed to names that cannot start an exported identifier and
// appended to names that are reserved or end in a digit.
const Marker = "Icon"

// Set holds the identifiers assigned so far in one pass.
type Set map[string]struct{}

// NewSet returns an empty Set.
func NewSet() Set {
	return make(Set)
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// generatedNames are declared by the emitted accessor package itself.
var generatedNames = []string{
	"Count", "Registry", "Entries", "Lookup", "Names", "Render", "Placeholder",
}

var predeclared = []string{
	"any", "bool", "byte", "comparable", "complex64", "complex128", "error",
	"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune",
	"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
	"true", "false", "iota", "nil",
	"append", "cap", "clear", "close", "complex", "copy", "delete", "imag",
	"len", "make", "max", "min", "new", "panic", "print", "println", "real",
	"recover",
}

var reserved = func() map[string]struct{} {
	m := make(map[string]struct{}, len(generatedNames)+len(predeclared))
	for _, n := range generatedNames {
		m[n] = struct{}{}
	}
	for _, n := range predeclared {
		m[n] = struct{}{}
	}
	return m
}()

// Reserved reports whether id is a Go keyword, a predeclared identifier or a
// name declared by the generated package.
func Reserved(id string) bool {
	if token.IsKeyword(id) {
		return true
	}
	_, ok := reserved[id]
	return ok
}

// Synthesize derives the identifier for rawName, records it in used and
// returns it.
func Synthesize(rawName string, used Set) string {
	base := Candidate(rawName)

	id := base
	for n := 2; used.Has(id); n++ {
		id = base + strconv.Itoa(n)
	}
	used.Add(id)
	return id
}

// Candidate is the identifier rawName maps to before uniqueness is applied.
// It never ends in a digit, so counter suffixes cannot collide with another
// name's candidate.
func Candidate(rawName string) string {
	id := pascal(rawName)

	if first, _ := utf8.DecodeRuneInString(id); id == "" || !unicode.IsUpper(first) {
		id = Marker + id
	}

	if Reserved(id) {
		id += Marker
	}

	id = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, id)

	if last, _ := utf8.DecodeLastRuneInString(id); unicode.IsDigit(last) {
		id += Marker
	}

	return id
}

// pascal upper-cases the first rune of every segment and joins them. The rest
// of each segment is kept as written.
func pascal(rawName string) string {
	segments := strings.FieldsFunc(rawName, func(r rune) bool {
		return r == '-' || r == ' ' || r == '_'
	})

	var b strings.Builder
	b.Grow(len(rawName))
	for _, seg := range segments {
		first, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// Valid reports whether id is an exported Go identifier that is not reserved.
func Valid(id string) bool {
	if !token.IsIdentifier(id) || !token.IsExported(id) {
		return false
	}
	return !Reserved(id)
}
