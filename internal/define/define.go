// Package define renders a version string as a compile-time symbol for
// downstream build steps: a -D compiler flag, a C header, Go linker flags,
// or an environment assignment.
package define

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tbckr/fwver/internal/apperr"
)

// DefaultName is the macro consumed by the firmware sources.
const DefaultName = "FIRMWARE_VERSION"

// Format selects how a Define is rendered.
type Format string

// Supported formats.
const (
	FormatCFlag   Format = "cflag"
	FormatHeader  Format = "header"
	FormatLDFlags Format = "ldflags"
	FormatEnv     Format = "env"
)

// Formats lists every supported format, in help order.
func Formats() []string {
	return []string{string(FormatCFlag), string(FormatHeader), string(FormatLDFlags), string(FormatEnv)}
}

var (
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	goSymbol   = regexp.MustCompile(`^[^\s=]+\.[A-Za-z_][A-Za-z0-9_]*$`)
)

// Define is a named string constant injected at compile time.
type Define struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// New validates name and returns a Define.
func New(name, value string) (Define, error) {
	if err := ValidateName(name); err != nil {
		return Define{}, err
	}
	return Define{Name: name, Value: value}, nil
}

// ValidateName reports whether name is usable as a C preprocessor macro.
func ValidateName(name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%w: macro name %q is not a C identifier", apperr.ErrInvalidInput, name)
	}
	return nil
}

// Stringify returns value as a C string literal, quotes included.
// Backslashes, double quotes and control bytes are escaped.
func Stringify(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// CFlag renders -DNAME=\"value\" as a single shell word. The backslashes
// survive one round of shell word splitting, which is how build_flags
// produced by a command are consumed, so the compiler sees a string literal.
func (d Define) CFlag() string {
	return "-D" + d.Name + "=" + shellEscapeLiteral(Stringify(d.Value))
}

// Header renders an include-guarded C header defining the macro.
func (d Define) Header() string {
	guard := d.Name + "_H"
	var b strings.Builder
	b.WriteString("// Code generated by fwver. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)
	fmt.Fprintf(&b, "#define %s %s\n\n", d.Name, Stringify(d.Value))
	fmt.Fprintf(&b, "#endif // %s\n", guard)
	return b.String()
}

// LDFlags renders a Go linker flag that sets symbol (importpath.Var) to the
// value. The value is single-quoted when it contains shell metacharacters.
func (d Define) LDFlags(symbol string) (string, error) {
	if !goSymbol.MatchString(symbol) {
		return "", fmt.Errorf("%w: ldflags symbol %q must be importpath.Name", apperr.ErrInvalidInput, symbol)
	}
	return "-X " + shellQuote(symbol+"="+d.Value), nil
}

// Env renders NAME=value with the value quoted for POSIX shells when needed.
func (d Define) Env() string {
	return d.Name + "=" + shellQuote(d.Value)
}

// Render dispatches on format. symbol is only used by FormatLDFlags.
func (d Define) Render(format Format, symbol string) (string, error) {
	switch format {
	case FormatCFlag:
		return d.CFlag() + "\n", nil
	case FormatHeader:
		return d.Header(), nil
	case FormatLDFlags:
		s, err := d.LDFlags(symbol)
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	case FormatEnv:
		return d.Env() + "\n", nil
	default:
		return "", fmt.Errorf("%w: unsupported define format %q: must be one of %s",
			apperr.ErrInvalidInput, format, strings.Join(Formats(), ", "))
	}
}

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCFlag, FormatHeader, FormatLDFlags, FormatEnv:
		return f, nil
	}
	return "", fmt.Errorf("%w: unsupported define format %q: must be one of %s",
		apperr.ErrInvalidInput, s, strings.Join(Formats(), ", "))
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.+/:=@%,"

// shellQuote single-quotes s unless every byte is shell safe.
func shellQuote(s string) string {
	if s != "" && strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// shellEscapeLiteral backslash-escapes every byte a POSIX shell would
// interpret in an unquoted word.
func shellEscapeLiteral(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(shellSafe, c) < 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
