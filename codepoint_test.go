package whatwgurl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("code-point classes", func() {
	Describe("isASCIIAlpha", func() {
		It("accepts ASCII letters only", func() {
			Expect(isASCIIAlpha('a')).To(BeTrue())
			Expect(isASCIIAlpha('Z')).To(BeTrue())
			Expect(isASCIIAlpha('0')).To(BeFalse())
			Expect(isASCIIAlpha('-')).To(BeFalse())
		})
	})

	Describe("isSchemeCodePoint", func() {
		It("accepts alphanumerics plus +-.", func() {
			Expect(isSchemeCodePoint('a')).To(BeTrue())
			Expect(isSchemeCodePoint('9')).To(BeTrue())
			Expect(isSchemeCodePoint('+')).To(BeTrue())
			Expect(isSchemeCodePoint('-')).To(BeTrue())
			Expect(isSchemeCodePoint('.')).To(BeTrue())
			Expect(isSchemeCodePoint('/')).To(BeFalse())
		})
	})

	Describe("isForbiddenHostCodePoint", func() {
		It("flags the spec's forbidden set", func() {
			for _, r := range []rune{0x00, 0x09, 0x0A, 0x0D, ' ', '#', '%', '/', ':', '?', '@', '[', '\\', ']'} {
				Expect(isForbiddenHostCodePoint(r)).To(BeTrue(), "rune %q", r)
			}
			Expect(isForbiddenHostCodePoint('a')).To(BeFalse())
		})
	})

	Describe("percent-encode set nesting", func() {
		It("nests c0Control inside fragment inside path inside userinfo", func() {
			Expect(c0ControlPercentEncodeSet(0x01)).To(BeTrue())
			Expect(fragmentPercentEncodeSet(0x01)).To(BeTrue())
			Expect(pathPercentEncodeSet(0x01)).To(BeTrue())
			Expect(userinfoPercentEncodeSet(0x01)).To(BeTrue())

			Expect(fragmentPercentEncodeSet(' ')).To(BeTrue())
			Expect(c0ControlPercentEncodeSet(' ')).To(BeFalse())

			Expect(pathPercentEncodeSet('#')).To(BeTrue())
			Expect(fragmentPercentEncodeSet('#')).To(BeFalse())

			Expect(userinfoPercentEncodeSet('@')).To(BeTrue())
			Expect(pathPercentEncodeSet('@')).To(BeFalse())
		})
	})

	Describe("dot path segments", func() {
		It("recognizes single-dot segments case-insensitively", func() {
			Expect(isSingleDotPathSegment(".")).To(BeTrue())
			Expect(isSingleDotPathSegment("%2e")).To(BeTrue())
			Expect(isSingleDotPathSegment("%2E")).To(BeTrue())
			Expect(isSingleDotPathSegment("..")).To(BeFalse())
		})

		It("recognizes double-dot segments in all four spellings", func() {
			Expect(isDoubleDotPathSegment("..")).To(BeTrue())
			Expect(isDoubleDotPathSegment(".%2e")).To(BeTrue())
			Expect(isDoubleDotPathSegment("%2e.")).To(BeTrue())
			Expect(isDoubleDotPathSegment("%2E%2e")).To(BeTrue())
			Expect(isDoubleDotPathSegment(".")).To(BeFalse())
		})
	})

	Describe("Windows drive letter predicates", func() {
		It("accepts alpha + : or |, rejects anything else", func() {
			Expect(isWindowsDriveLetter("C:")).To(BeTrue())
			Expect(isWindowsDriveLetter("c|")).To(BeTrue())
			Expect(isWindowsDriveLetter("C")).To(BeFalse())
			Expect(isWindowsDriveLetter("1:")).To(BeFalse())
		})

		It("normalizes only the colon form", func() {
			Expect(isNormalizedWindowsDriveLetter("C:")).To(BeTrue())
			Expect(isNormalizedWindowsDriveLetter("C|")).To(BeFalse())
		})

		It("requires a terminator after the drive letter", func() {
			Expect(startsWithWindowsDriveLetter("C:/x")).To(BeTrue())
			Expect(startsWithWindowsDriveLetter("C:")).To(BeTrue())
			Expect(startsWithWindowsDriveLetter("C:x")).To(BeFalse())
		})
	})
})
