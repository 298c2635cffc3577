package whatwgurl

import (
	"strconv"
	"strings"
)

// parser.go implements spec.md §4.3: the basic URL parser, a 22-state
// machine over Unicode code points.
//
// Grounded on other_examples' nlnwa/whatwg-url basicParser (a faithful Go
// port of the living standard's pseudocode), restructured per spec.md §9's
// design note: instead of scattering bare `return`/`continue` through one
// big for-loop, each state is a method that returns an explicit
// stepOutcome sum type (advance, retry, return, fail) and the outer loop
// is the only place that interprets it. The teacher (urlparser.go) has no
// state machine of its own — it is regex-based — so the *shape* of this
// file (one package, no exceptions, explicit sum-type results) follows
// spec.md's own design guidance rather than any one example file, while
// every individual state's *behavior* is grounded on the reference port.

type parserState int

const (
	stateSchemeStart parserState = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateCannotBeABaseURLPath
	stateQuery
	stateFragment
)

// stepOutcome tells the driving loop what to do next.
type stepOutcome int

const (
	outcomeAdvance stepOutcome = iota // consume c, continue in (possibly new) state
	outcomeRetry                      // re-consume c in the new state, don't advance
	outcomeReturn                     // terminate successfully with the current record
	outcomeFail                       // terminate with failure
)

// Parser holds injectable configuration for the basic URL parser: the
// validation-error sink (spec.md §6) and whether host parsing should be
// strict (UseSTD3ASCIIRules/VerifyDnsLength, spec.md §6 domain_to_ascii).
// Mirrors the teacher's plain exported-function API (no parser struct is
// required to call Parse), but nlnwa/whatwg-url's Parser{ReportValidationErrors,
// FailOnValidationError} shows the idiomatic way to make error reporting
// pluggable, which is what ParserOption exposes.
type Parser struct {
	sink     ValidationErrorSink
	beStrict bool
}

// ParserOption configures a Parser. See WithValidationErrorSink and
// WithStrictHostParsing.
type ParserOption interface {
	apply(*Parser)
}

type parserOptionFunc func(*Parser)

func (f parserOptionFunc) apply(p *Parser) { f(p) }

// WithValidationErrorSink installs a per-parser validation error sink,
// overriding the process-wide default for parses made with this Parser.
func WithValidationErrorSink(sink ValidationErrorSink) ParserOption {
	return parserOptionFunc(func(p *Parser) { p.sink = sink })
}

// WithStrictHostParsing enables UseSTD3ASCIIRules and VerifyDnsLength in
// the IDNA domain_to_ascii collaborator (spec.md §6).
func WithStrictHostParsing() ParserOption {
	return parserOptionFunc(func(p *Parser) { p.beStrict = true })
}

// NewParser constructs a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, o := range opts {
		o.apply(p)
	}
	return p
}

var defaultParser = NewParser()

// input is a code-point cursor over a cleaned URL string, matching the
// "walker" of spec.md §4.3: c is the current code point (or eof), and the
// cursor can be rewound to re-consume code points (used by retry/reset
// transitions).
type input struct {
	runes []rune
	pos   int
}

const eof rune = -1

func newInput(s string) *input {
	return &input{runes: []rune(s)}
}

func (in *input) current() rune {
	if in.pos >= len(in.runes) {
		return eof
	}
	return in.runes[in.pos]
}

func (in *input) remaining() string {
	if in.pos+1 >= len(in.runes) {
		return ""
	}
	return string(in.runes[in.pos+1:])
}

func (in *input) remainingFromCurrent() string {
	if in.pos >= len(in.runes) {
		return ""
	}
	return string(in.runes[in.pos:])
}

func (in *input) atEOF() bool {
	return in.pos >= len(in.runes)
}

func (in *input) remainingStartsWith(s string) bool {
	return strings.HasPrefix(in.remaining(), s)
}

// parse implements spec.md §4.3's "basic URL parser" entry point.
func (p *Parser) parse(rawInput string, base *record, existing *record, stateOverride parserState, hasOverride bool) (*record, error) {
	rec := existing
	cleanedInput := rawInput
	if rec == nil {
		rec = newRecord()
		if trimmed, changed := trimC0OrSpace(cleanedInput); changed {
			reportValidationError(p.sink, "leading or trailing C0 control or space")
			cleanedInput = trimmed
		}
	}
	if stripped, changed := stripTabAndNewline(cleanedInput); changed {
		reportValidationError(p.sink, "input contains ASCII tab or newline")
		cleanedInput = stripped
	}

	in := newInput(cleanedInput)

	state := stateSchemeStart
	if hasOverride {
		state = stateOverride
	}

	m := &machine{
		p:             p,
		in:            in,
		url:           rec,
		base:          base,
		state:         state,
		stateOverride: stateOverride,
		hasOverride:   hasOverride,
		buffer:        &strings.Builder{},
	}

	// The loop mirrors the living standard's own driver exactly: each
	// state runs once per code point (including one run on the virtual
	// EOF code point once the pointer reaches the end), "decrease
	// pointer by 1" is outcomeRetry (no pointer change), and the loop
	// only terminates once the pointer moves *past* the end of input —
	// not merely the first time EOF is seen. That distinction matters
	// because the Authority state rewinds the pointer backward from EOF
	// to re-walk a buffered userinfo section as a host.
	for {
		c := in.current()
		outcome := m.step(c)
		switch outcome {
		case outcomeFail:
			return nil, m.err
		case outcomeReturn:
			return m.url, nil
		case outcomeRetry:
			// pointer unchanged; loop again in the new state
		case outcomeAdvance:
			in.pos++
			if in.pos > len(in.runes) {
				return m.url, nil
			}
		}
	}
}

// machine carries the mutable state threaded through the step functions:
// buffer accumulation, the @ / [] / password-seen flags of the Authority
// and Host states, and the error to surface on failure.
type machine struct {
	p             *Parser
	in            *input
	url           *record
	base          *record
	state         parserState
	stateOverride parserState
	hasOverride   bool
	buffer        *strings.Builder

	atFlag            bool
	passwordTokenSeen bool
	bracketFlag       bool

	err error
}

func (m *machine) fail(op string) stepOutcome {
	m.err = newParseError(op, string(m.in.runes))
	return outcomeFail
}

func (m *machine) error(message string) {
	reportValidationError(m.p.sink, message)
}

// step executes the current state once for code point c (which is eof
// past the end of input) and returns what the driving loop should do.
func (m *machine) step(c rune) stepOutcome {
	switch m.state {
	case stateSchemeStart:
		return m.stepSchemeStart(c)
	case stateScheme:
		return m.stepScheme(c)
	case stateNoScheme:
		return m.stepNoScheme(c)
	case stateSpecialRelativeOrAuthority:
		return m.stepSpecialRelativeOrAuthority(c)
	case statePathOrAuthority:
		return m.stepPathOrAuthority(c)
	case stateRelative:
		return m.stepRelative(c)
	case stateRelativeSlash:
		return m.stepRelativeSlash(c)
	case stateSpecialAuthoritySlashes:
		return m.stepSpecialAuthoritySlashes(c)
	case stateSpecialAuthorityIgnoreSlashes:
		return m.stepSpecialAuthorityIgnoreSlashes(c)
	case stateAuthority:
		return m.stepAuthority(c)
	case stateHost, stateHostname:
		return m.stepHostHostname(c)
	case statePort:
		return m.stepPort(c)
	case stateFile:
		return m.stepFile(c)
	case stateFileSlash:
		return m.stepFileSlash(c)
	case stateFileHost:
		return m.stepFileHost(c)
	case statePathStart:
		return m.stepPathStart(c)
	case statePath:
		return m.stepPath(c)
	case stateCannotBeABaseURLPath:
		return m.stepCannotBeABaseURLPath(c)
	case stateQuery:
		return m.stepQuery(c)
	case stateFragment:
		return m.stepFragment(c)
	}
	return m.fail("unknown state")
}

func (m *machine) stepSchemeStart(c rune) stepOutcome {
	switch {
	case isASCIIAlpha(c):
		m.buffer.WriteRune(toLowerASCII(c))
		m.state = stateScheme
		return outcomeAdvance
	case !m.hasOverride:
		m.state = stateNoScheme
		return outcomeRetry
	default:
		return m.fail("invalid scheme start")
	}
}

func (m *machine) stepScheme(c rune) stepOutcome {
	switch {
	case isSchemeCodePoint(c):
		m.buffer.WriteRune(toLowerASCII(c))
		return outcomeAdvance
	case c == ':':
		bufScheme := m.buffer.String()
		if m.hasOverride {
			if m.url.isSpecial() && !isSpecialScheme(bufScheme) {
				return outcomeReturn
			}
			if !m.url.isSpecial() && isSpecialScheme(bufScheme) {
				return outcomeReturn
			}
			if (m.url.includesCredentials() || m.url.port != nil) && bufScheme == "file" {
				return outcomeReturn
			}
			if m.url.scheme == "file" && (m.url.host.isNone() || m.url.host.isEmpty()) {
				return outcomeReturn
			}
		}
		m.url.scheme = bufScheme
		if m.hasOverride {
			m.url.cleanDefaultPort()
			return outcomeReturn
		}
		m.buffer.Reset()
		switch {
		case m.url.scheme == "file":
			if !m.in.remainingStartsWith("//") {
				m.error("file scheme not followed by //")
			}
			m.state = stateFile
		case m.url.isSpecial() && m.base != nil && m.base.scheme == m.url.scheme:
			m.state = stateSpecialRelativeOrAuthority
		case m.url.isSpecial():
			m.state = stateSpecialAuthoritySlashes
		case m.in.remainingStartsWith("/"):
			m.state = statePathOrAuthority
			m.in.pos++
		default:
			m.url.cannotBeABaseURL = true
			m.url.path = append(m.url.path, "")
			m.state = stateCannotBeABaseURLPath
		}
		return outcomeAdvance
	case !m.hasOverride:
		m.buffer.Reset()
		m.state = stateNoScheme
		m.in.pos = 0
		return outcomeRetry
	default:
		return m.fail("invalid scheme")
	}
}

func (m *machine) stepNoScheme(c rune) stepOutcome {
	if (m.base == nil || m.base.cannotBeABaseURL) && c != '#' {
		return m.fail("relative URL with no base")
	}
	if m.base != nil && m.base.cannotBeABaseURL && c == '#' {
		m.url.scheme = m.base.scheme
		m.url.path = append([]string(nil), m.base.path...)
		m.url.query = copyStringPtr(m.base.query)
		m.url.fragment = new(string)
		m.url.cannotBeABaseURL = true
		m.state = stateFragment
		return outcomeAdvance
	}
	if m.base != nil && m.base.scheme != "file" {
		m.state = stateRelative
		return outcomeRetry
	}
	m.state = stateFile
	return outcomeRetry
}

func (m *machine) stepSpecialRelativeOrAuthority(c rune) stepOutcome {
	if c == '/' && m.in.remainingStartsWith("/") {
		m.state = stateSpecialAuthorityIgnoreSlashes
		m.in.pos++
		return outcomeAdvance
	}
	m.error("expected special scheme relative or authority slashes")
	m.state = stateRelative
	return outcomeRetry
}

func (m *machine) stepPathOrAuthority(c rune) stepOutcome {
	if c == '/' {
		m.state = stateAuthority
		return outcomeAdvance
	}
	m.state = statePath
	return outcomeRetry
}

func (m *machine) stepRelative(c rune) stepOutcome {
	m.url.scheme = m.base.scheme
	if m.in.atEOF() {
		m.copyAuthorityAndPath(m.base)
		m.url.query = copyStringPtr(m.base.query)
		return outcomeReturn
	}
	switch {
	case c == '/':
		m.state = stateRelativeSlash
		return outcomeAdvance
	case c == '?':
		m.copyAuthorityAndPath(m.base)
		m.url.query = new(string)
		m.state = stateQuery
		return outcomeAdvance
	case c == '#':
		m.copyAuthorityAndPath(m.base)
		m.url.query = copyStringPtr(m.base.query)
		m.url.fragment = new(string)
		m.state = stateFragment
		return outcomeAdvance
	case m.url.isSpecialAndBackslash(c):
		m.error("backslash in special relative URL")
		m.state = stateRelativeSlash
		return outcomeAdvance
	default:
		m.copyAuthorityAndPath(m.base)
		if len(m.url.path) > 0 {
			m.url.path = m.url.path[:len(m.url.path)-1]
		}
		m.state = statePath
		return outcomeRetry
	}
}

func (m *machine) stepRelativeSlash(c rune) stepOutcome {
	if m.url.isSpecial() && (c == '/' || c == '\\') {
		if c == '\\' {
			m.error("backslash in special relative slash")
		}
		m.state = stateSpecialAuthorityIgnoreSlashes
		return outcomeAdvance
	}
	if c == '/' {
		m.state = stateAuthority
		return outcomeAdvance
	}
	m.url.username = m.base.username
	m.url.password = m.base.password
	m.url.host = m.base.host
	m.url.port = m.base.port
	m.state = statePath
	return outcomeRetry
}

func (m *machine) stepSpecialAuthoritySlashes(c rune) stepOutcome {
	if c == '/' && m.in.remainingStartsWith("/") {
		m.state = stateSpecialAuthorityIgnoreSlashes
		m.in.pos++
		return outcomeAdvance
	}
	m.error("expected special authority slashes")
	m.state = stateSpecialAuthorityIgnoreSlashes
	return outcomeRetry
}

func (m *machine) stepSpecialAuthorityIgnoreSlashes(c rune) stepOutcome {
	if c != '/' && c != '\\' {
		m.state = stateAuthority
		return outcomeRetry
	}
	m.error("unexpected slash in special authority")
	return outcomeAdvance
}

func (m *machine) stepAuthority(c rune) stepOutcome {
	switch {
	case c == '@':
		m.error("'@' in authority")
		if m.atFlag {
			prev := m.buffer.String()
			m.buffer = &strings.Builder{}
			m.buffer.WriteString("%40")
			m.buffer.WriteString(prev)
		}
		m.atFlag = true
		m.consumeAuthorityBuffer()
		return outcomeAdvance
	case (m.in.atEOF() || c == '/' || c == '?' || c == '#') || m.url.isSpecialAndBackslash(c):
		if m.atFlag && m.buffer.Len() == 0 {
			return m.fail("missing host (empty authority after '@')")
		}
		m.in.pos -= len([]rune(m.buffer.String())) + 1
		m.buffer.Reset()
		m.state = stateHost
		return outcomeAdvance
	default:
		m.buffer.WriteRune(c)
		return outcomeAdvance
	}
}

func (m *machine) consumeAuthorityBuffer() {
	buf := m.buffer.String()
	m.buffer.Reset()
	bi := newInput(buf)
	for !bi.atEOF() {
		c := bi.current()
		if c == ':' && !m.passwordTokenSeen {
			m.passwordTokenSeen = true
			bi.pos++
			continue
		}
		encoded := utf8PercentEncode(c, userinfoPercentEncodeSet)
		if m.passwordTokenSeen {
			m.url.password += encoded
		} else {
			m.url.username += encoded
		}
		bi.pos++
	}
}

func (m *machine) stepHostHostname(c rune) stepOutcome {
	if m.hasOverride && m.url.scheme == "file" {
		m.state = stateFileHost
		return outcomeRetry
	}
	switch {
	case c == ':' && !m.bracketFlag:
		if m.buffer.Len() == 0 {
			return m.fail("missing host before ':'")
		}
		h, err := parseHost(m.buffer.String(), !m.url.isSpecial(), m.p.beStrict, m.p.sink)
		if err != nil {
			return m.fail("invalid host")
		}
		m.url.host = h
		m.buffer.Reset()
		m.state = statePort
		if m.hasOverride && m.stateOverride == stateHostname {
			return outcomeReturn
		}
		return outcomeAdvance
	case (m.in.atEOF() || c == '/' || c == '?' || c == '#') || m.url.isSpecialAndBackslash(c):
		if m.url.isSpecial() && m.buffer.Len() == 0 {
			return m.fail("missing host")
		}
		if m.hasOverride && m.buffer.Len() == 0 &&
			(m.url.username != "" || m.url.password != "" || m.url.port != nil) {
			return m.fail("missing host with credentials/port present")
		}
		h, err := parseHost(m.buffer.String(), !m.url.isSpecial(), m.p.beStrict, m.p.sink)
		if err != nil {
			return m.fail("invalid host")
		}
		m.url.host = h
		m.buffer.Reset()
		m.state = statePathStart
		if m.hasOverride {
			return outcomeReturn
		}
		return outcomeRetry
	default:
		if c == '[' {
			m.bracketFlag = true
		} else if c == ']' {
			m.bracketFlag = false
		}
		m.buffer.WriteRune(c)
		return outcomeAdvance
	}
}

func (m *machine) stepPort(c rune) stepOutcome {
	switch {
	case isASCIIDigit(c):
		m.buffer.WriteRune(c)
		return outcomeAdvance
	case (m.in.atEOF() || c == '/' || c == '?' || c == '#') || m.url.isSpecialAndBackslash(c) || m.hasOverride:
		if m.buffer.Len() > 0 {
			port, err := strconv.Atoi(m.buffer.String())
			if err != nil || port > 65535 {
				return m.fail("invalid port")
			}
			m.url.port = intPtr(port)
			m.url.cleanDefaultPort()
			m.buffer.Reset()
		}
		if m.hasOverride {
			return outcomeReturn
		}
		m.state = statePathStart
		return outcomeRetry
	default:
		return m.fail("invalid port character")
	}
}

func (m *machine) stepFile(c rune) stepOutcome {
	m.url.scheme = "file"
	switch {
	case c == '/' || c == '\\':
		if c == '\\' {
			m.error("backslash in file scheme")
		}
		m.state = stateFileSlash
		return outcomeAdvance
	case m.base != nil && m.base.scheme == "file":
		if m.in.atEOF() {
			m.url.host = m.base.host
			m.url.path = append([]string(nil), m.base.path...)
			m.url.query = copyStringPtr(m.base.query)
			return outcomeReturn
		}
		switch c {
		case '?':
			m.url.host = m.base.host
			m.url.path = append([]string(nil), m.base.path...)
			m.url.query = new(string)
			m.state = stateQuery
		case '#':
			m.url.host = m.base.host
			m.url.path = append([]string(nil), m.base.path...)
			m.url.query = copyStringPtr(m.base.query)
			m.url.fragment = new(string)
			m.state = stateFragment
		default:
			m.url.host = m.base.host
			if !startsWithWindowsDriveLetter(m.in.remainingFromCurrent()) {
				m.url.path = append([]string(nil), m.base.path...)
				m.url.shorten()
			} else {
				m.error("base is file URL but input starts with Windows drive letter")
				m.url.path = nil
			}
			m.state = statePath
			return outcomeRetry
		}
		return outcomeAdvance
	default:
		m.state = statePath
		return outcomeRetry
	}
}

func (m *machine) stepFileSlash(c rune) stepOutcome {
	if c == '/' || c == '\\' {
		if c == '\\' {
			m.error("backslash in file slash")
		}
		m.state = stateFileHost
		return outcomeAdvance
	}
	if m.base != nil && m.base.scheme == "file" {
		m.url.host = m.base.host
		if !startsWithWindowsDriveLetter(m.in.remainingFromCurrent()) &&
			len(m.base.path) > 0 && isNormalizedWindowsDriveLetter(m.base.path[0]) {
			m.url.path = append(m.url.path, m.base.path[0])
		}
	}
	m.state = statePath
	return outcomeRetry
}

func (m *machine) stepFileHost(c rune) stepOutcome {
	if m.in.atEOF() || c == '/' || c == '\\' || c == '?' || c == '#' {
		if !m.hasOverride && isWindowsDriveLetter(m.buffer.String()) {
			m.error("Windows drive letter as file host")
			m.state = statePath
			return outcomeRetry
		}
		if m.buffer.Len() == 0 {
			m.url.host = &host{kind: hostEmpty}
			if m.hasOverride {
				return outcomeReturn
			}
			m.state = statePathStart
			return outcomeRetry
		}
		h, err := parseHost(m.buffer.String(), !m.url.isSpecial(), m.p.beStrict, m.p.sink)
		if err != nil {
			return m.fail("invalid file host")
		}
		if h.kind == hostDomain && h.domain == "localhost" {
			h = &host{kind: hostEmpty}
		}
		m.url.host = h
		if m.hasOverride {
			return outcomeReturn
		}
		m.buffer.Reset()
		m.state = statePathStart
		return outcomeRetry
	}
	m.buffer.WriteRune(c)
	return outcomeAdvance
}

func (m *machine) stepPathStart(c rune) stepOutcome {
	if m.url.isSpecial() {
		if c == '\\' {
			m.error("backslash at path start")
		}
		m.state = statePath
		if c != '/' && c != '\\' {
			return outcomeRetry
		}
		return outcomeAdvance
	}
	if !m.hasOverride && c == '?' {
		m.url.query = new(string)
		m.state = stateQuery
		return outcomeAdvance
	}
	if !m.hasOverride && c == '#' {
		m.url.fragment = new(string)
		m.state = stateFragment
		return outcomeAdvance
	}
	if !m.in.atEOF() {
		m.state = statePath
		if c != '/' {
			return outcomeRetry
		}
		return outcomeAdvance
	}
	if m.hasOverride && m.url.host.isNone() {
		m.url.path = append(m.url.path, "")
	}
	return outcomeAdvance
}

func (m *machine) stepPath(c rune) stepOutcome {
	terminator := m.in.atEOF() || c == '/' || m.url.isSpecialAndBackslash(c) ||
		(!m.hasOverride && (c == '?' || c == '#'))
	if terminator {
		if m.url.isSpecialAndBackslash(c) {
			m.error("backslash in special URL path")
		}
		seg := m.buffer.String()
		switch {
		case isDoubleDotPathSegment(seg):
			m.url.shorten()
			if c != '/' && !m.url.isSpecialAndBackslash(c) {
				m.url.path = append(m.url.path, "")
			}
		case isSingleDotPathSegment(seg):
			if c != '/' && !m.url.isSpecialAndBackslash(c) {
				m.url.path = append(m.url.path, "")
			}
		default:
			if m.url.scheme == "file" && len(m.url.path) == 0 && isWindowsDriveLetter(seg) {
				if !m.url.host.isNone() && !m.url.host.isEmpty() {
					m.error("file URL with host and Windows drive letter path")
					m.url.host = &host{kind: hostEmpty}
				}
				seg = setSecondCodePointToColon(seg)
			}
			m.url.path = append(m.url.path, seg)
		}
		m.buffer.Reset()
		if m.url.scheme == "file" && (m.in.atEOF() || c == '?' || c == '#') {
			for len(m.url.path) > 1 && m.url.path[0] == "" {
				m.error("superfluous leading empty path segments in file URL")
				m.url.path = m.url.path[1:]
			}
		}
		if c == '?' {
			m.url.query = new(string)
			m.state = stateQuery
		}
		if c == '#' {
			m.url.fragment = new(string)
			m.state = stateFragment
		}
		return outcomeAdvance
	}

	if !isURLCodePoint(c) && c != '%' {
		m.error("invalid URL code point in path")
	}
	if c == '%' && isInvalidPercentEncodedAt(m.in.remainingFromCurrent(), 0) {
		m.error("invalid percent encoding in path")
	}
	m.buffer.WriteString(utf8PercentEncode(c, pathPercentEncodeSet))
	return outcomeAdvance
}

func (m *machine) stepCannotBeABaseURLPath(c rune) stepOutcome {
	switch {
	case c == '?':
		m.url.query = new(string)
		m.state = stateQuery
		return outcomeAdvance
	case c == '#':
		m.url.fragment = new(string)
		m.state = stateFragment
		return outcomeAdvance
	default:
		if !m.in.atEOF() && !isURLCodePoint(c) && c != '%' {
			m.error("invalid URL code point in opaque path")
		}
		if c == '%' && isInvalidPercentEncodedAt(m.in.remainingFromCurrent(), 0) {
			m.error("invalid percent encoding in opaque path")
		}
		if !m.in.atEOF() {
			if len(m.url.path) == 0 {
				m.url.path = append(m.url.path, "")
			}
			m.url.path[0] += utf8PercentEncode(c, c0ControlPercentEncodeSet)
		}
		return outcomeAdvance
	}
}

func (m *machine) stepQuery(c rune) stepOutcome {
	if !m.hasOverride && c == '#' {
		m.url.fragment = new(string)
		m.state = stateFragment
		return outcomeAdvance
	}
	if !m.in.atEOF() {
		if !isURLCodePoint(c) && c != '%' {
			m.error("invalid URL code point in query")
		}
		if c == '%' && isInvalidPercentEncodedAt(m.in.remainingFromCurrent(), 0) {
			m.error("invalid percent encoding in query")
		}
		set := queryEncodeSetForSpecial
		if !m.url.isSpecial() {
			set = queryEncodeSetForNonSpecial
		}
		encoded := utf8PercentEncode(c, set)
		*m.url.query += encoded
	}
	return outcomeAdvance
}

func queryEncodeSetForSpecial(r rune) bool {
	return r < 0x21 || r > 0x7E || r == 0x22 || r == 0x23 || r == 0x3C || r == 0x3E || r == 0x27
}

func queryEncodeSetForNonSpecial(r rune) bool {
	return r < 0x21 || r > 0x7E || r == 0x22 || r == 0x23 || r == 0x3C || r == 0x3E
}

func (m *machine) stepFragment(c rune) stepOutcome {
	if !m.in.atEOF() {
		if !isURLCodePoint(c) && c != '%' {
			m.error("invalid URL code point in fragment")
		}
		if c == '%' && isInvalidPercentEncodedAt(m.in.remainingFromCurrent(), 0) {
			m.error("invalid percent encoding in fragment")
		}
		*m.url.fragment += utf8PercentEncode(c, fragmentPercentEncodeSet)
	}
	return outcomeAdvance
}

// copyAuthorityAndPath copies username/password/host/port/path from src
// onto m.url, used by the handful of states that adopt the base URL's
// authority wholesale (Relative, File).
func (m *machine) copyAuthorityAndPath(src *record) {
	m.url.username = src.username
	m.url.password = src.password
	m.url.host = src.host
	m.url.port = src.port
	m.url.path = append([]string(nil), src.path...)
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// trimC0OrSpace strips leading/trailing C0-control-or-space code points.
func trimC0OrSpace(s string) (string, bool) {
	r := []rune(s)
	start := 0
	for start < len(r) && isC0OrSpace(r[start]) {
		start++
	}
	end := len(r)
	for end > start && isC0OrSpace(r[end-1]) {
		end--
	}
	if start == 0 && end == len(r) {
		return s, false
	}
	return string(r[start:end]), true
}

// stripTabAndNewline removes every ASCII TAB, LF, CR from s.
func stripTabAndNewline(s string) (string, bool) {
	if !strings.ContainsAny(s, "\t\n\r") {
		return s, false
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isASCIITabOrNewline(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}
