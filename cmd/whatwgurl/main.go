// Command whatwgurl parses a URL (and optional base) and prints its
// record fields plus href/origin. Grounded on the pack's pattern of
// shipping a small cmd/ entrypoint alongside a library, using only the
// standard library's flag and log packages (SPEC_FULL.md's ambient-stack
// stdlib justification: one command, one log line, no third-party
// logger is meaningfully exercised).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pavlik/whatwgurl"
)

func main() {
	base := flag.String("base", "", "base URL to resolve against")
	strict := flag.Bool("strict", false, "enable strict host parsing (STD3 ASCII rules, DNS length)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: whatwgurl [-base URL] [-strict] <url>")
		os.Exit(2)
	}

	var opts []whatwgurl.ParserOption
	if *strict {
		opts = append(opts, whatwgurl.WithStrictHostParsing())
	}
	parser := whatwgurl.NewParser(opts...)

	u, err := parser.New(flag.Arg(0), *base)
	if err != nil {
		log.Fatalf("parse error: %v", err)
	}

	fmt.Printf("href:     %s\n", u.Href())
	fmt.Printf("origin:   %s\n", u.Origin())
	fmt.Printf("protocol: %s\n", u.Protocol())
	fmt.Printf("username: %s\n", u.Username())
	fmt.Printf("password: %s\n", u.Password())
	fmt.Printf("host:     %s\n", u.Host())
	fmt.Printf("hostname: %s\n", u.Hostname())
	fmt.Printf("port:     %s\n", u.Port())
	fmt.Printf("pathname: %s\n", u.Pathname())
	fmt.Printf("search:   %s\n", u.Search())
	fmt.Printf("hash:     %s\n", u.Hash())
}
