package whatwgurl

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// legacy.go is SPEC_FULL.md's Domain Stack wiring: the teacher's
// purell/idna-based normalization pipeline (urlparser.go's
// Normalize/ToNetURL), adapted from its regexp-split URL struct onto this
// module's WHATWG record so callers migrating off the old urlparser
// package keep a familiar cross-ecosystem entry point. Neither function
// is part of the WHATWG algorithm itself (spec.md's serializer already
// produces a canonical string by construction).

// ToNetURL converts u to a *net/url.URL for interop with stdlib-based
// code, mirroring the teacher's (*urlparser.URL).ToNetURL.
func (u *Url) ToNetURL() *url.URL {
	host := u.Hostname()
	if port := u.Port(); port != "" {
		host = host + ":" + port
	}

	var userinfo *url.Userinfo
	if u.rec.includesCredentials() {
		if u.rec.password != "" {
			userinfo = url.UserPassword(u.Username(), u.Password())
		} else {
			userinfo = url.User(u.Username())
		}
	}

	ret := &url.URL{
		Scheme:   u.rec.scheme,
		User:     userinfo,
		Host:     host,
		Path:     u.Pathname(),
		RawQuery: strings.TrimPrefix(u.Search(), "?"),
		Fragment: strings.TrimPrefix(u.Hash(), "#"),
	}
	if u.rec.cannotBeABaseURL {
		ret.Opaque = u.Pathname()
		ret.Path = ""
	}
	return ret
}

// legacyNormalizeFlags mirrors the teacher's normalizeFlags exactly
// (urlparser.go), carrying the same purell dependency forward into the
// new domain.
const legacyNormalizeFlags purell.NormalizationFlags = purell.FlagRemoveDefaultPort |
	purell.FlagDecodeDWORDHost | purell.FlagDecodeOctalHost | purell.FlagDecodeHexHost |
	purell.FlagRemoveUnnecessaryHostDots | purell.FlagRemoveDotSegments | purell.FlagRemoveDuplicateSlashes |
	purell.FlagUppercaseEscapes | purell.FlagDecodeUnnecessaryEscapes | purell.FlagEncodeNecessaryEscapes |
	purell.FlagSortQuery

// NormalizeLegacy reproduces the teacher's purell-based normalization
// pipeline (decode Punycode host to Unicode, lowercase host/scheme, run
// purell's flag set) over a WHATWG-parsed record, for callers migrating
// off urlparser.Normalize().
func (u *Url) NormalizeLegacy() (string, error) {
	hostUnicode, err := domainToUnicode(u.Hostname())
	if err != nil {
		return "", err
	}

	netURL := u.ToNetURL()
	netURL.Scheme = strings.ToLower(netURL.Scheme)
	netURL.Host = strings.ToLower(hostUnicode)
	if port := u.Port(); port != "" {
		netURL.Host = netURL.Host + ":" + port
	}

	return purell.NormalizeURL(netURL, legacyNormalizeFlags), nil
}
