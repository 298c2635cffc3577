package whatwgurl

import (
	"strings"
)

// formurlencoded.go implements spec.md §4.5: parsing and serializing
// application/x-www-form-urlencoded byte sequences. Grounded on the same
// percent-encoding primitives as percent.go (the codec shares the
// byte-level "%HH" decode/encode machinery with the path/query/fragment
// states), with its own pass-through set and '+'-for-space handling, which
// is specific to this wire format and not part of any percentEncodeSet.

// KeyValue is an ordered (name, value) pair, used throughout the
// URLSearchParams construction surface (spec.md §6) where Go's unordered
// map literal cannot preserve enumeration order.
type KeyValue struct {
	Name  string
	Value string
}

// parseFormURLEncoded implements spec.md §4.5 "parse bytes": split on '&',
// drop empty splits, split each chunk at the first '=' into name/value,
// replace '+' with SP, then percent-decode and UTF-8-decode each half.
func parseFormURLEncoded(input string) []KeyValue {
	var pairs []KeyValue
	for _, chunk := range strings.Split(input, "&") {
		if chunk == "" {
			continue
		}
		name, value := chunk, ""
		if i := strings.IndexByte(chunk, '='); i >= 0 {
			name, value = chunk[:i], chunk[i+1:]
		}
		pairs = append(pairs, KeyValue{
			Name:  decodeFormURLEncodedComponent(name),
			Value: decodeFormURLEncodedComponent(value),
		})
	}
	return pairs
}

func decodeFormURLEncodedComponent(s string) string {
	replaced := strings.ReplaceAll(s, "+", " ")
	return strings.ToValidUTF8(stringPercentDecode(replaced), "�")
}

// serializeFormURLEncoded implements spec.md §4.5 "serialize pairs".
func serializeFormURLEncoded(pairs []KeyValue) string {
	var sb strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(formURLEncodeComponent(kv.Name))
		sb.WriteByte('=')
		sb.WriteString(formURLEncodeComponent(kv.Value))
	}
	return sb.String()
}

// formURLEncodeComponent implements the byte-serializer of spec.md §4.5:
// SP becomes '+'; '*', '-', '.', digits, letters, '_' pass through
// verbatim; every other byte becomes "%HH".
func formURLEncodeComponent(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == ' ':
			sb.WriteByte('+')
		case isFormURLEncodedSafeByte(b):
			sb.WriteByte(b)
		default:
			sb.WriteString(percentEncodeByte(b))
		}
	}
	return sb.String()
}

func isFormURLEncodedSafeByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9', b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z':
		return true
	case b == '*' || b == '-' || b == '.' || b == '_':
		return true
	}
	return false
}
