package whatwgurl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func mustHost(raw string) *host {
	h, err := parseHost(raw, false, false, nil)
	Expect(err).NotTo(HaveOccurred())
	return h
}

var _ = Describe("URL record serialization", func() {
	Describe("serializeURL", func() {
		It("omits the authority slashes when the host is null", func() {
			r := newRecord()
			r.scheme = "mailto"
			r.cannotBeABaseURL = true
			r.path = []string{"a@example.org"}
			Expect(serializeURL(r, false)).To(Equal("mailto:a@example.org"))
		})

		It("always writes '//' for a file URL even with a null host", func() {
			r := newRecord()
			r.scheme = "file"
			r.path = []string{"c:", "x"}
			Expect(serializeURL(r, false)).To(Equal("file:///c:/x"))
		})

		It("writes credentials only when present", func() {
			r := newRecord()
			r.scheme = "https"
			r.host = mustHost("example.org")
			r.path = []string{""}
			r.username = "u"
			Expect(serializeURL(r, false)).To(Equal("https://u@example.org/"))
		})

		It("excludes the fragment when asked", func() {
			r := newRecord()
			r.scheme = "https"
			r.host = mustHost("example.org")
			r.path = []string{""}
			frag := "f"
			r.fragment = &frag
			Expect(serializeURL(r, true)).To(Equal("https://example.org/"))
			Expect(serializeURL(r, false)).To(Equal("https://example.org/#f"))
		})

		It("is idempotent: re-parsing a serialization yields the same serialization", func() {
			u, err := New("https://u:p@example.org:8080/a/b?x=1#f")
			Expect(err).NotTo(HaveOccurred())
			href := u.Href()
			u2, err := New(href)
			Expect(err).NotTo(HaveOccurred())
			Expect(u2.Href()).To(Equal(href))
		})
	})

	Describe("computeOrigin", func() {
		p := defaultParser

		It("computes a tuple origin for a special network scheme", func() {
			r := newRecord()
			r.scheme = "https"
			r.host = mustHost("example.org")
			Expect(computeOrigin(p, r).String()).To(Equal("https://example.org"))
		})

		It("includes a non-default port in the tuple", func() {
			r := newRecord()
			r.scheme = "https"
			r.host = mustHost("example.org")
			port := 8080
			r.port = &port
			Expect(computeOrigin(p, r).String()).To(Equal("https://example.org:8080"))
		})

		It("is opaque for a scheme with no tuple origin", func() {
			r := newRecord()
			r.scheme = "mailto"
			r.cannotBeABaseURL = true
			Expect(computeOrigin(p, r).String()).To(Equal("null"))
		})

		It("recurses through a blob URL's inner path", func() {
			r := newRecord()
			r.scheme = "blob"
			r.path = []string{"https://example.org/abc"}
			Expect(computeOrigin(p, r).String()).To(Equal("https://example.org"))
		})
	})
})
