/*
Package manifest implements the list of image names served to the web
interface alongside images.bin. It is a single JavaScript declaration:

	const IMAGE_NAMES = ["a.png", "b.png"];

The position of a name in the list is the index of its record in
images.bin.
*/
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

const (
	// Filename is the expected filename used when writing to disk
	Filename = "images.js"

	// Variable is the default name of the declared constant
	Variable = "IMAGE_NAMES"
)

var (
	errSyntax       = errors.New("manifest: not a constant array declaration")
	identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	declRegex       = regexp.MustCompile(`^\s*const\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(\[[\s\S]*\])\s*;?\s*$`)
)

// List is an ordered list of names. It implements the encoding.TextMarshaler
// and encoding.TextUnmarshaler interfaces.
type List struct {
	// Variable is the name of the constant, Variable if empty
	Variable string
	Names    []string
}

// New returns a list declaring names under the default variable name.
func New(names []string) *List {
	return &List{
		Variable: Variable,
		Names:    names,
	}
}

// Length returns the number of names in the list
func (l *List) Length() int {
	return len(l.Names)
}

func (l *List) variable() string {
	if l.Variable == "" {
		return Variable
	}
	return l.Variable
}

// MarshalText encodes the list as a JavaScript constant declaration
func (l *List) MarshalText() ([]byte, error) {
	v := l.variable()
	if !identifierRegex.MatchString(v) {
		return nil, fmt.Errorf("manifest: invalid variable name %q", v)
	}

	b := new(bytes.Buffer)
	fmt.Fprintf(b, "const %s = [", v)
	for i, name := range l.Names {
		if i > 0 {
			b.WriteString(", ")
		}
		s, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		b.Write(s)
	}
	b.WriteString("];")

	return b.Bytes(), nil
}

// UnmarshalText decodes a JavaScript constant declaration of a string array
func (l *List) UnmarshalText(b []byte) error {
	m := declRegex.FindSubmatch(b)
	if m == nil {
		return errSyntax
	}

	var names []string
	if err := json.Unmarshal(m[2], &names); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	l.Variable = string(m[1])
	l.Names = names

	return nil
}
