package whatwgurl

import (
	"strconv"
	"strings"
)

// serialize.go implements spec.md §4.4: the URL record serializer and the
// origin computation, grounded on the teacher's Normalize()/ToNetURL()
// field-order assembly (scheme, then authority, then path) generalized to
// every record invariant the basic URL parser can produce.

// serializeURL implements spec.md §4.4's serializer. excludeFragment omits
// a trailing "#fragment" even when r.fragment is non-nil, for callers that
// want a fragment-free href.
func serializeURL(r *record, excludeFragment bool) string {
	var sb strings.Builder
	sb.WriteString(r.scheme)
	sb.WriteByte(':')

	if !r.host.isNone() {
		sb.WriteString("//")
		if r.includesCredentials() {
			sb.WriteString(r.username)
			if r.password != "" {
				sb.WriteByte(':')
				sb.WriteString(r.password)
			}
			sb.WriteByte('@')
		}
		sb.WriteString(serializeHost(r.host))
		if r.port != nil {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(*r.port))
		}
	} else if r.scheme == "file" {
		sb.WriteString("//")
	}

	if r.cannotBeABaseURL {
		if len(r.path) > 0 {
			sb.WriteString(r.path[0])
		}
	} else {
		for _, segment := range r.path {
			sb.WriteByte('/')
			sb.WriteString(segment)
		}
	}

	if r.query != nil {
		sb.WriteByte('?')
		sb.WriteString(*r.query)
	}
	if !excludeFragment && r.fragment != nil {
		sb.WriteByte('#')
		sb.WriteString(*r.fragment)
	}
	return sb.String()
}

// origin is the spec.md §4.4 origin: either an opaque sentinel (serializes
// to "null") or a (scheme, host, port) tuple.
type origin struct {
	opaque bool
	scheme string
	host   *host
	port   *int
}

var opaqueOrigin = origin{opaque: true}

// String implements spec.md §4.4's origin serializer.
func (o origin) String() string {
	if o.opaque {
		return "null"
	}
	var sb strings.Builder
	sb.WriteString(o.scheme)
	sb.WriteString("://")
	sb.WriteString(serializeHost(o.host))
	if o.port != nil {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(*o.port))
	}
	return sb.String()
}

// computeOrigin implements spec.md §4.4 "Origin of a URL". The blob branch
// recurses into a freshly parsed path[0]; spec.md §1/§9 leave blob entry
// resolution as a stub, so this only covers the "parse path[0] as a URL"
// half of the blob rule, never the blob-URL-entry table.
func computeOrigin(p *Parser, r *record) origin {
	switch r.scheme {
	case "ftp", "http", "https", "ws", "wss":
		return origin{scheme: r.scheme, host: r.host, port: r.port}
	case "blob":
		if len(r.path) == 0 {
			return opaqueOrigin
		}
		inner, err := p.parse(r.path[0], nil, nil, 0, false)
		if err != nil {
			return opaqueOrigin
		}
		return computeOrigin(p, inner)
	default:
		return opaqueOrigin
	}
}
