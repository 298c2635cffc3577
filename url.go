package whatwgurl

import (
	"strconv"
	"strings"
)

// url.go implements spec.md §4.6 / §6: the public adapter surface. The
// teacher's own package is a bag of exported functions with no adapter
// object (urlparser.Parse/Split/ToNetURL are free functions over a
// regexp-matched struct); spec.md §1 calls the adapter "out of scope" for
// a language with a host runtime, but a standalone Go library has no
// separate host to supply one, so the Url type here *is* that adapter —
// see DESIGN.md's Open Question resolution.

// Url is a parsed URL record plus a SearchParams view kept synchronized
// with its query field (spec.md §9 "Cyclic reference").
type Url struct {
	parser *Parser
	rec    *record
	search *SearchParams
}

// New implements spec.md §6's constructor: `(url: string, base?: string)`
// that throws (returns a non-nil error) on failure. With no options, it
// parses against the package's default Parser.
func New(rawURL string, base ...string) (*Url, error) {
	return defaultParser.New(rawURL, base...)
}

// New parses rawURL (optionally resolved against base[0], when given and
// non-empty) using p's configuration.
func (p *Parser) New(rawURL string, base ...string) (*Url, error) {
	var baseRec *record
	if len(base) > 0 && base[0] != "" {
		b, err := p.parse(base[0], nil, nil, 0, false)
		if err != nil {
			return nil, err
		}
		baseRec = b
	}
	rec, err := p.parse(rawURL, baseRec, nil, 0, false)
	if err != nil {
		return nil, err
	}
	return newURLFromRecord(p, rec), nil
}

func newURLFromRecord(p *Parser, rec *record) *Url {
	u := &Url{parser: p, rec: rec}
	query := ""
	if rec.query != nil {
		query = *rec.query
	}
	u.search = NewSearchParamsFromString(query)
	u.search.onUpdate = u.syncQueryFromParams
	return u
}

func (u *Url) syncQueryFromParams() {
	if u.search.Len() == 0 {
		u.rec.query = nil
		return
	}
	s := u.search.String()
	u.rec.query = &s
}

// Href returns the full serialization of the URL, per spec.md §4.6.
func (u *Url) Href() string {
	return serializeURL(u.rec, false)
}

// String implements spec.md §6's to_string.
func (u *Url) String() string {
	return u.Href()
}

// ToJSON implements spec.md §6's to_json: identical to Href() for a URL.
func (u *Url) ToJSON() string {
	return u.Href()
}

// SetHref implements the href setter: the given value entirely replaces
// the URL, re-parsed from scratch with no base and no existing record.
// Unlike every other setter, failure here propagates to the caller
// (spec.md §7 "The href setter is the exception").
func (u *Url) SetHref(rawURL string) error {
	rec, err := u.parser.parse(rawURL, nil, nil, 0, false)
	if err != nil {
		return err
	}
	u.rec = rec
	query := ""
	if rec.query != nil {
		query = *rec.query
	}
	u.search = NewSearchParamsFromString(query)
	u.search.onUpdate = u.syncQueryFromParams
	return nil
}

// Origin implements spec.md §4.4's origin, promoted to a first-class
// accessor per SPEC_FULL.md's Supplemented Features.
func (u *Url) Origin() string {
	return computeOrigin(u.parser, u.rec).String()
}

// Protocol returns the scheme followed by ':'.
func (u *Url) Protocol() string {
	return u.rec.scheme + ":"
}

// SetProtocol implements the protocol setter: basic URL parse `value +
// ":"` with scheme start state as the override. A parse failure during a
// setter is discarded (spec.md §7): the record is left unchanged.
func (u *Url) SetProtocol(value string) {
	value = strings.TrimSuffix(value, ":")
	_, _ = u.parser.parse(value+":", nil, u.rec, stateSchemeStart, true)
}

// Username returns the record's username.
func (u *Url) Username() string {
	return u.rec.username
}

// SetUsername implements the username setter: a no-op if the URL cannot
// have credentials; otherwise the value is percent-encoded with the
// userinfo set and stored directly (no parser re-entry is involved).
func (u *Url) SetUsername(value string) {
	if u.rec.cannotHaveUsernamePasswordPort() {
		return
	}
	u.rec.username = utf8PercentEncodeString(value, userinfoPercentEncodeSet)
}

// Password returns the record's password.
func (u *Url) Password() string {
	return u.rec.password
}

// SetPassword mirrors SetUsername for the password field.
func (u *Url) SetPassword(value string) {
	if u.rec.cannotHaveUsernamePasswordPort() {
		return
	}
	u.rec.password = utf8PercentEncodeString(value, userinfoPercentEncodeSet)
}

// Host returns "hostname[:port]", or "" if host is null.
func (u *Url) Host() string {
	if u.rec.host.isNone() {
		return ""
	}
	h := serializeHost(u.rec.host)
	if u.rec.port != nil {
		return h + ":" + strconv.Itoa(*u.rec.port)
	}
	return h
}

// SetHost implements the host setter: a no-op for cannot-be-a-base URLs;
// otherwise basic URL parse with host state as the override.
func (u *Url) SetHost(value string) {
	if u.rec.cannotBeABaseURL {
		return
	}
	_, _ = u.parser.parse(value, nil, u.rec, stateHost, true)
}

// Hostname returns the serialized host with no port.
func (u *Url) Hostname() string {
	return serializeHost(u.rec.host)
}

// SetHostname implements the hostname setter: a no-op for cannot-be-a-base
// URLs; otherwise basic URL parse with hostname state as the override.
func (u *Url) SetHostname(value string) {
	if u.rec.cannotBeABaseURL {
		return
	}
	_, _ = u.parser.parse(value, nil, u.rec, stateHostname, true)
}

// Port returns the record's port as a string, or "" if null.
func (u *Url) Port() string {
	if u.rec.port == nil {
		return ""
	}
	return strconv.Itoa(*u.rec.port)
}

// SetPort implements the port setter: a no-op if the URL cannot have a
// port; an empty value nulls the port directly; otherwise basic URL parse
// with port state as the override.
func (u *Url) SetPort(value string) {
	if u.rec.cannotHaveUsernamePasswordPort() {
		return
	}
	if value == "" {
		u.rec.port = nil
		return
	}
	_, _ = u.parser.parse(value, nil, u.rec, statePort, true)
}

// Pathname returns the serialized path, including the cannot-be-a-base
// opaque form.
func (u *Url) Pathname() string {
	if u.rec.cannotBeABaseURL {
		if len(u.rec.path) == 0 {
			return ""
		}
		return u.rec.path[0]
	}
	var sb strings.Builder
	for _, segment := range u.rec.path {
		sb.WriteByte('/')
		sb.WriteString(segment)
	}
	return sb.String()
}

// SetPathname implements the pathname setter: a no-op for cannot-be-a-base
// URLs; otherwise the path is emptied and basic URL parse runs with path
// start state as the override.
func (u *Url) SetPathname(value string) {
	if u.rec.cannotBeABaseURL {
		return
	}
	u.rec.path = nil
	_, _ = u.parser.parse(value, nil, u.rec, statePathStart, true)
}

// Search returns "?query", or "" if query is null or empty.
func (u *Url) Search() string {
	if u.rec.query == nil || *u.rec.query == "" {
		return ""
	}
	return "?" + *u.rec.query
}

// SearchParams returns the view kept synchronized with Search/query.
func (u *Url) SearchParams() *SearchParams {
	return u.search
}

// SetSearch implements the search setter: an empty value nulls the query
// and empties the params list directly; otherwise the leading '?' is
// stripped, basic URL parse runs with query state as the override, and
// the params view is rebuilt from the freshly parsed query.
func (u *Url) SetSearch(value string) {
	if value == "" {
		u.rec.query = nil
		u.search.pairs = nil
		return
	}
	value = strings.TrimPrefix(value, "?")
	empty := ""
	u.rec.query = &empty
	_, _ = u.parser.parse(value, nil, u.rec, stateQuery, true)
	q := ""
	if u.rec.query != nil {
		q = *u.rec.query
	}
	u.search.pairs = parseFormURLEncoded(q)
}

// Hash returns "#fragment", or "" if fragment is null or empty.
func (u *Url) Hash() string {
	if u.rec.fragment == nil || *u.rec.fragment == "" {
		return ""
	}
	return "#" + *u.rec.fragment
}

// SetHash implements the hash setter: an empty value nulls the fragment
// directly; otherwise the leading '#' is stripped and basic URL parse
// runs with fragment state as the override.
func (u *Url) SetHash(value string) {
	if value == "" {
		u.rec.fragment = nil
		return
	}
	value = strings.TrimPrefix(value, "#")
	empty := ""
	u.rec.fragment = &empty
	_, _ = u.parser.parse(value, nil, u.rec, stateFragment, true)
}
