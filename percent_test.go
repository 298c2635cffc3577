package whatwgurl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("percent-encoding", func() {
	Describe("percentEncodeByte", func() {
		It("renders uppercase hex with a leading %", func() {
			Expect(percentEncodeByte(0x20)).To(Equal("%20"))
			Expect(percentEncodeByte(0xFF)).To(Equal("%FF"))
			Expect(percentEncodeByte(0x0A)).To(Equal("%0A"))
		})
	})

	Describe("utf8PercentEncode", func() {
		It("leaves code points outside the given set untouched", func() {
			Expect(utf8PercentEncode('a', c0ControlPercentEncodeSet)).To(Equal("a"))
		})

		It("percent-encodes every UTF-8 byte of a multi-byte code point", func() {
			Expect(utf8PercentEncode('é', fragmentPercentEncodeSet)).To(Equal("%C3%A9"))
		})

		It("encodes a code point in the set as %XX", func() {
			Expect(utf8PercentEncode(' ', fragmentPercentEncodeSet)).To(Equal("%20"))
		})
	})

	Describe("utf8PercentEncodeString", func() {
		It("encodes only the bytes matching the set", func() {
			Expect(utf8PercentEncodeString("a b", fragmentPercentEncodeSet)).To(Equal("a%20b"))
		})
	})

	Describe("stringPercentDecode", func() {
		It("decodes valid percent-escapes back to bytes", func() {
			Expect(stringPercentDecode("%40foo")).To(Equal("@foo"))
		})

		It("passes through a stray % with no valid hex digits", func() {
			Expect(stringPercentDecode("100%")).To(Equal("100%"))
		})

		It("round-trips through encode/decode", func() {
			original := "a b/c?d#e"
			encoded := utf8PercentEncodeString(original, fragmentPercentEncodeSet)
			Expect(stringPercentDecode(encoded)).To(Equal(original))
		})
	})

	Describe("isInvalidPercentEncodedAt", func() {
		It("is false for a well-formed two-hex-digit escape", func() {
			Expect(isInvalidPercentEncodedAt("%41rest", 0)).To(BeFalse())
		})

		It("is true when not enough hex digits follow", func() {
			Expect(isInvalidPercentEncodedAt("%4", 0)).To(BeTrue())
			Expect(isInvalidPercentEncodedAt("%", 0)).To(BeTrue())
		})

		It("is true when the following bytes are not hex digits", func() {
			Expect(isInvalidPercentEncodedAt("%zz", 0)).To(BeTrue())
		})
	})
})
