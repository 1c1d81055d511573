/*
Package header reads object-like macro definitions of the form

	#define NAME value

from a C header. Only the literal text of each value is kept; no macro
expansion or conditional compilation is performed. A trailing line comment
is dropped and a value continued with a backslash is joined onto one line.
*/
package header

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNotDefined is returned when a name has no definition.
var ErrNotDefined = errors.New("header: not defined")

// Defines maps macro names to their replacement text.
type Defines map[string]string

// Parse reads every #define in r. A later definition of the same name
// replaces an earlier one.
func Parse(r io.Reader) (Defines, error) {
	d := make(Defines)
	s := bufio.NewScanner(r)

	var line string
	for s.Scan() {
		text := s.Text()
		if strings.HasSuffix(text, "\\") {
			line += strings.TrimSuffix(text, "\\") + " "
			continue
		}
		line += text

		if name, value, ok := parseLine(line); ok {
			d[name] = value
		}
		line = ""
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if name, value, ok := parseLine(line); ok {
		d[name] = value
	}

	return d, nil
}

// ParseFile is like Parse but reads the named file.
func ParseFile(file string) (Defines, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

func parseLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(line[1:])
	if !strings.HasPrefix(line, "define") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "define")
	if line == "" || (line[0] != ' ' && line[0] != '\t') {
		return "", "", false
	}

	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", false
	}

	name := fields[0]
	// Function-like macros are not constants
	if strings.Contains(name, "(") {
		return "", "", false
	}

	return name, strings.Join(fields[1:], " "), true
}

// Lookup returns the replacement text of name.
func (d Defines) Lookup(name string) (string, error) {
	v, ok := d[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotDefined, name)
	}
	return v, nil
}

// Int returns the value of name as a decimal, hexadecimal or octal integer.
// Redundant enclosing parentheses are removed first.
func (d Defines) Int(name string) (int, error) {
	v, err := d.Lookup(name)
	if err != nil {
		return 0, err
	}

	for len(v) > 1 && v[0] == '(' && v[len(v)-1] == ')' {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}

	i, err := strconv.ParseInt(v, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("header: %s: %w", name, err)
	}
	return int(i), nil
}
