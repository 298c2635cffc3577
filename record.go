package whatwgurl

// record.go implements spec.md §3: the URL record and its invariants, plus
// the handful of helpers (shorten, cannot-have-credentials, special-scheme
// lookup) the basic URL parser and the serializer both depend on.
//
// The record's field layout is a direct generalization of the teacher's
// URL struct (Scheme, Host, Port, Path, Query, Fragment, a Userinfo-style
// split for User), widened to carry the host-variant union and the
// cannot-be-a-base flag the WHATWG algorithm requires.

// hostKind discriminates the host union described in spec.md §3.
type hostKind int

const (
	hostNone   hostKind = iota // host absent (null)
	hostEmpty                  // host == "" (distinct from absent)
	hostDomain                 // ASCII domain string
	hostOpaque                 // opaque host string
	hostIPv4                   // 32-bit integer
	hostIPv6                   // eight 16-bit pieces
)

// host is the tagged union backing record.host.
type host struct {
	kind   hostKind
	domain string     // hostDomain / hostOpaque
	ipv4   uint32     // hostIPv4
	ipv6   [8]uint16  // hostIPv6
}

func (h *host) isNone() bool {
	return h == nil || h.kind == hostNone
}

func (h *host) isEmpty() bool {
	return h != nil && h.kind == hostEmpty
}

// record is the URL record of spec.md §3.
type record struct {
	scheme   string
	username string
	password string
	host     *host // nil means absent/null
	port     *int  // nil means null

	// path holds ordered segments for a normal URL, or a single opaque
	// string (path[0]) when cannotBeABaseURL is set (invariant 4).
	path []string

	query    *string
	fragment *string

	cannotBeABaseURL bool

	// blobURLEntry is never resolved by this module (spec.md §1, §9);
	// it is carried as an opaque handle purely so callers can plug in a
	// resolver later.
	blobURLEntry any
}

func newRecord() *record {
	return &record{}
}

// specialSchemeDefaultPorts maps each special scheme (invariant 1) to its
// default port, or nil for schemes with no default (file).
var specialSchemeDefaultPorts = map[string]*int{
	"ftp":   intPtr(21),
	"file":  nil,
	"http":  intPtr(80),
	"https": intPtr(443),
	"ws":    intPtr(80),
	"wss":   intPtr(443),
}

func intPtr(n int) *int {
	return &n
}

// isSpecialScheme reports whether scheme is one of the six special
// schemes (invariant 1).
func isSpecialScheme(scheme string) bool {
	_, ok := specialSchemeDefaultPorts[scheme]
	return ok
}

func (r *record) isSpecial() bool {
	return isSpecialScheme(r.scheme)
}

// isSpecialAndBackslash reports whether the URL is special and c is '\\',
// the recurring "treat backslash like slash in special URLs" check.
func (r *record) isSpecialAndBackslash(c rune) bool {
	return r.isSpecial() && c == '\\'
}

// defaultPort returns the scheme's default port, or nil if the scheme has
// none (or is not special).
func (r *record) defaultPort() *int {
	return specialSchemeDefaultPorts[r.scheme]
}

// cleanDefaultPort nulls out r.port if it equals the scheme's default
// port (invariant 3). Called after scheme or port is finalized.
func (r *record) cleanDefaultPort() {
	dp := r.defaultPort()
	if dp != nil && r.port != nil && *dp == *r.port {
		r.port = nil
	}
}

// includesCredentials reports whether the record has a non-empty username
// or password.
func (r *record) includesCredentials() bool {
	return r.username != "" || r.password != ""
}

// cannotHaveUsernamePasswordPort reports whether the record's host is
// null or empty, or its scheme is "file", or it cannot be a base URL
// (invariant 2). Setters targeting username/password/port must no-op
// when this holds.
func (r *record) cannotHaveUsernamePasswordPort() bool {
	return r.host.isNone() || r.host.isEmpty() || r.scheme == "file" || r.cannotBeABaseURL
}

// shorten removes the last path segment, per spec.md §4.3 "shorten(url)",
// except it is a no-op for an empty path or for a file URL whose sole
// path segment is a normalized Windows drive letter.
func (r *record) shorten() {
	if len(r.path) == 0 {
		return
	}
	if r.scheme == "file" && len(r.path) == 1 && isNormalizedWindowsDriveLetter(r.path[0]) {
		return
	}
	r.path = r.path[:len(r.path)-1]
}

// setSecondCodePointToColon implements spec.md §9's Open Question: the
// Windows-drive-letter path-quirk must set the second code point of
// buffer to ':' while preserving the rest, not stringify-and-concatenate
// an array. Operates on runes so multi-byte code points after index 1
// (there are none for a valid Windows drive letter, but the buffer here
// is whatever the caller accumulated) are never corrupted.
func setSecondCodePointToColon(buffer string) string {
	r := []rune(buffer)
	if len(r) < 2 {
		return buffer
	}
	r[1] = ':'
	return string(r)
}

// cloneRecord makes a deep-enough copy of r for use as a base URL so that
// mutating the derived URL never aliases the base's path slice.
func cloneRecord(r *record) *record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.host != nil {
		h := *r.host
		cp.host = &h
	}
	if r.port != nil {
		p := *r.port
		cp.port = &p
	}
	if r.path != nil {
		cp.path = append([]string(nil), r.path...)
	}
	if r.query != nil {
		q := *r.query
		cp.query = &q
	}
	if r.fragment != nil {
		f := *r.fragment
		cp.fragment = &f
	}
	return &cp
}
