// Package canonical serializes messages into the exact JSON text that gets
// signed. The output is what ECMAScript's JSON.stringify produces for the same
// value after its object keys have been sorted, at every level, by code point:
//
//   - no insignificant whitespace
//   - object keys in code point order, array elements in their given order
//   - strings escape only '"', '\' and control characters; everything else,
//     including non-ASCII, is written as UTF-8
//   - integers in plain base 10, other numbers in ECMAScript Number-to-String
//     form, so 1.0 is written 1 and 1e21 is written 1e+21
//
// The verifying backend reproduces these rules independently, so they are a
// wire contract. Change them only together with the shared fixture vectors.
package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/gowebpki/jcs"
	"github.com/multiformats/go-multicodec"

	"github.com/familycoin/go-familycoin/core/result/failure"
)

const Code = uint64(multicodec.Json)

const maxDepth = 1000

// UnsupportedValueError reports a message that has no canonical form, such as
// NaN, invalid UTF-8 or a value encoding/json cannot marshal.
type UnsupportedValueError struct {
	failure.NamedWithStackTrace
	msg string
}

func newUnsupportedValueError(format string, args ...any) UnsupportedValueError {
	return UnsupportedValueError{failure.NamedWithCurrentStackTrace("UnsupportedValueError"), fmt.Sprintf(format, args...)}
}

func (e UnsupportedValueError) Error() string {
	return "canonicalizing message: " + e.msg
}

type codec struct{}

func (codec) Code() uint64 {
	return Code
}

func (codec) Encode(val any) ([]byte, error) {
	return Encode(val)
}

func (codec) Decode(b []byte, bind any) error {
	return json.Unmarshal(b, bind)
}

var Codec = codec{}

// Canonicalize returns the canonical JSON text of msg.
func Canonicalize(msg any) (string, error) {
	b, err := Encode(msg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CanonicalizeJSON parses JSON text and returns its canonical form. Numbers are
// kept at full precision while parsing, so canonicalizing a canonical form
// returns it unchanged.
func CanonicalizeJSON(data []byte) (string, error) {
	v, err := decode(data)
	if err != nil {
		return "", err
	}
	return Canonicalize(v)
}

// Encode returns the canonical JSON bytes of msg.
func Encode(msg any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, msg, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newUnsupportedValueError("decoding JSON: %s", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newUnsupportedValueError("unexpected data after top-level value")
	}
	return v, nil
}

func encodeValue(buf *bytes.Buffer, v any, depth int) error {
	if depth > maxDepth {
		return newUnsupportedValueError("exceeded max depth of %d", maxDepth)
	}
	switch x := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(x))
	case string:
		return encodeString(buf, x)
	case json.Number:
		return encodeNumber(buf, x)
	case float64:
		return encodeFloat(buf, x)
	case float32:
		// shortest float32 digits, as encoding/json would write them
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(x), 'g', -1, 32), 64)
		return encodeFloat(buf, f)
	case int:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		buf.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		buf.WriteString(strconv.FormatInt(x, 10))
	case uint:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		buf.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		buf.WriteString(strconv.FormatUint(x, 10))
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		// byte order of valid UTF-8 is code point order
		slices.Sort(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, x[k], depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case json.RawMessage:
		if len(x) == 0 {
			buf.WriteString("null")
			return nil
		}
		d, err := decode(x)
		if err != nil {
			return err
		}
		return encodeValue(buf, d, depth+1)
	default:
		// structs, typed maps and slices, pointers and json.Marshaler
		// implementations are reduced to the generic JSON data model first
		b, err := json.Marshal(x)
		if err != nil {
			return newUnsupportedValueError("marshalling %T: %s", x, err)
		}
		d, err := decode(b)
		if err != nil {
			return err
		}
		return encodeValue(buf, d, depth+1)
	}
	return nil
}

func encodeNumber(buf *bytes.Buffer, n json.Number) error {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		buf.WriteString(strconv.FormatUint(u, 10))
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return newUnsupportedValueError("invalid number %q", s)
	}
	return encodeFloat(buf, f)
}

func encodeFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return newUnsupportedValueError("unsupported number %v", f)
	}
	s, err := jcs.NumberToJSON(f)
	if err != nil {
		return newUnsupportedValueError("formatting number %v: %s", f, err)
	}
	buf.WriteString(s)
	return nil
}

const hex = "0123456789abcdef"

func encodeString(buf *bytes.Buffer, s string) error {
	if !utf8.ValidString(s) {
		return newUnsupportedValueError("invalid UTF-8 in string %q", s)
	}
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hex[c>>4])
				buf.WriteByte(hex[c&0xf])
			} else {
				buf.WriteByte(c)
			}
		}
	}
	buf.WriteByte('"')
	return nil
}
