package whatwgurl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("application/x-www-form-urlencoded codec", func() {
	Describe("parseFormURLEncoded", func() {
		It("splits on '&' and '=' and decodes '+' as space", func() {
			got := parseFormURLEncoded("a=1&b=two+words")
			Expect(got).To(Equal([]KeyValue{
				{Name: "a", Value: "1"},
				{Name: "b", Value: "two words"},
			}))
		})

		It("treats a chunk with no '=' as a name with an empty value", func() {
			got := parseFormURLEncoded("flag")
			Expect(got).To(Equal([]KeyValue{{Name: "flag", Value: ""}}))
		})

		It("drops empty chunks between repeated '&'", func() {
			got := parseFormURLEncoded("a=1&&b=2")
			Expect(got).To(Equal([]KeyValue{
				{Name: "a", Value: "1"},
				{Name: "b", Value: "2"},
			}))
		})

		It("returns no pairs for an empty input", func() {
			Expect(parseFormURLEncoded("")).To(BeEmpty())
		})

		It("percent-decodes names and values", func() {
			got := parseFormURLEncoded("na%6de=va%6cue")
			Expect(got).To(Equal([]KeyValue{{Name: "name", Value: "value"}}))
		})
	})

	Describe("serializeFormURLEncoded", func() {
		It("joins pairs with '&' and '='", func() {
			pairs := []KeyValue{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
			Expect(serializeFormURLEncoded(pairs)).To(Equal("a=1&b=2"))
		})

		It("encodes a space as '+'", func() {
			pairs := []KeyValue{{Name: "a", Value: "b c"}}
			Expect(serializeFormURLEncoded(pairs)).To(Equal("a=b+c"))
		})

		It("percent-encodes everything outside the safe byte set", func() {
			pairs := []KeyValue{{Name: "a", Value: "b&c=d"}}
			Expect(serializeFormURLEncoded(pairs)).To(Equal("a=b%26c%3Dd"))
		})
	})

	Describe("round trip", func() {
		It("parses back to the same pairs it serialized", func() {
			pairs := []KeyValue{{Name: "key one", Value: "val=ue"}, {Name: "k2", Value: ""}}
			Expect(parseFormURLEncoded(serializeFormURLEncoded(pairs))).To(Equal(pairs))
		})
	})
})
