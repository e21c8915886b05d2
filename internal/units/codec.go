package units

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalText renders Info as a self-contained, dictionary-free text form:
// "name|e0,e1,...|factor|offset". name is empty for derived values (the
// result of an operator or function application) rather than a direct
// dictionary lookup; it is carried for human readability only and is not
// consulted by UnmarshalText, which reconstructs the value entirely from
// the exponent/factor/offset triple.
func (i Info) MarshalText() ([]byte, error) {
	var b strings.Builder
	b.WriteString(i.name)
	b.WriteByte('|')
	for idx, e := range i.exponents {
		if idx > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(e), 10))
	}
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(i.Factor, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(i.Offset, 'g', -1, 64))
	return []byte(b.String()), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (i *Info) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), "|")
	if len(parts) != 4 {
		return fmt.Errorf("%w: malformed unit text %q", ErrInvalidConfig, text)
	}

	var exponents []int32
	if parts[1] != "" {
		for _, tok := range strings.Split(parts[1], ",") {
			v, err := strconv.ParseInt(tok, 10, 32)
			if err != nil {
				return fmt.Errorf("%w: malformed exponent %q: %v", ErrInvalidConfig, tok, err)
			}
			exponents = append(exponents, int32(v))
		}
	}

	factor, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return fmt.Errorf("%w: malformed factor %q: %v", ErrInvalidConfig, parts[2], err)
	}
	offset, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return fmt.Errorf("%w: malformed offset %q: %v", ErrInvalidConfig, parts[3], err)
	}

	*i = Info{name: parts[0], exponents: exponents, Factor: factor, Offset: offset}
	return nil
}
