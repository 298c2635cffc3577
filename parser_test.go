package whatwgurl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("basic URL parser", func() {
	Describe("a fully specified special URL", func() {
		It("parses every component", func() {
			u, err := New("https://u:p@example.org:8080/a/b?x=1#f")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Protocol()).To(Equal("https:"))
			Expect(u.Username()).To(Equal("u"))
			Expect(u.Password()).To(Equal("p"))
			Expect(u.Hostname()).To(Equal("example.org"))
			Expect(u.Port()).To(Equal("8080"))
			Expect(u.Pathname()).To(Equal("/a/b"))
			Expect(u.Search()).To(Equal("?x=1"))
			Expect(u.Hash()).To(Equal("#f"))
			Expect(u.Href()).To(Equal("https://u:p@example.org:8080/a/b?x=1#f"))
		})
	})

	Describe("resolving a relative reference against a base", func() {
		It("replaces only the path for an absolute-path reference", func() {
			u, err := New("/x", "https://example.org/a/b")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Href()).To(Equal("https://example.org/x"))
		})

		It("replaces the authority for a network-path reference", func() {
			u, err := New("//example.org", "http://base.invalid/")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Href()).To(Equal("http://example.org/"))
		})

		It("resolves a plain relative path against the base's directory", func() {
			u, err := New("c", "https://example.org/a/b")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Href()).To(Equal("https://example.org/a/c"))
		})
	})

	Describe("file URLs", func() {
		It("parses a Windows drive letter path", func() {
			u, err := New("file:///c:/x")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Hostname()).To(Equal(""))
			Expect(u.Pathname()).To(Equal("/c:/x"))
		})

		It("normalizes a '|' drive-letter separator to ':'", func() {
			u, err := New("file:///C|/foo")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Pathname()).To(Equal("/C:/foo"))
		})
	})

	Describe("the protocol setter", func() {
		It("swaps a special scheme for another special scheme", func() {
			u, err := New("http://example.org/a")
			Expect(err).NotTo(HaveOccurred())
			u.SetProtocol("ftp")
			Expect(u.Protocol()).To(Equal("ftp:"))
			Expect(u.Href()).To(Equal("ftp://example.org/a"))
		})

		It("discards the change when swapping special for non-special", func() {
			u, err := New("http://example.org/a")
			Expect(err).NotTo(HaveOccurred())
			u.SetProtocol("mailto")
			Expect(u.Protocol()).To(Equal("http:"))
		})
	})

	Describe("cannot-be-a-base URLs", func() {
		It("parses mailto: with an opaque path and no host", func() {
			u, err := New("mailto:a@example.org")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Hostname()).To(Equal(""))
			Expect(u.Pathname()).To(Equal("a@example.org"))
			Expect(u.Href()).To(Equal("mailto:a@example.org"))
		})

		It("makes the hostname setter a no-op", func() {
			u, err := New("mailto:a@example.org")
			Expect(err).NotTo(HaveOccurred())
			u.SetHostname("example.com")
			Expect(u.Href()).To(Equal("mailto:a@example.org"))
		})
	})

	Describe("WithStrictHostParsing", func() {
		It("accepts a non-STD3 host label by default", func() {
			u, err := NewParser().New("https://foo_bar.example.org/")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Hostname()).To(Equal("foo_bar.example.org"))
		})

		It("rejects the same host label under strict host parsing", func() {
			_, err := NewParser(WithStrictHostParsing()).New("https://foo_bar.example.org/")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("boundary behavior", func() {
		It("fails to parse an empty string with no base", func() {
			_, err := New("")
			Expect(err).To(HaveOccurred())
		})

		It("accepts the maximum valid port", func() {
			u, err := New("http://example.org:65535/")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Port()).To(Equal("65535"))
		})

		It("rejects a port above the 16-bit range", func() {
			_, err := New("http://example.org:65536/")
			Expect(err).To(HaveOccurred())
		})

		It("normalizes backslashes to forward slashes in a special URL's path", func() {
			u, err := New(`https://example.org\a\b`)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Pathname()).To(Equal("/a/b"))
		})

		It("collapses a double-dot path segment", func() {
			u, err := New("https://example.org/a/b/../c")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Pathname()).To(Equal("/a/c"))
		})

		It("removes the default port for its scheme", func() {
			u, err := New("https://example.org:443/")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Port()).To(Equal(""))
			Expect(u.Href()).To(Equal("https://example.org/"))
		})
	})
})
