// SPDX-License-Identifier: MPL-2.0

// Package markup converts the inline markup allowed in term definitions
// (<code>, <strong>, <em>, <a href>) into plain text for searching and into
// Markdown for terminal rendering.
package markup

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strip removes tags, decodes entities and collapses whitespace. Attribute
// values are dropped, so an href never contributes searchable text. A '<'
// that does not open an HTML element, as in "a<b ordering" or "List<T>",
// is kept as text.
func Strip(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var b strings.Builder
	skip := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if skip == 0 {
				writeUnterminated(&b, z)
			}
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			raw := string(z.Raw())
			name, _ := z.TagName()
			a := atom.Lookup(name)
			switch {
			case a == atom.Script || a == atom.Style:
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
			case a == 0 && skip == 0:
				b.WriteString(raw)
			}
		}
	}
}

// ToMarkdown converts inline markup to Markdown. Unsupported HTML elements
// are dropped and their text kept; anything that is not an HTML element stays
// verbatim.
func ToMarkdown(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var (
		b     strings.Builder
		hrefs []string
	)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			writeUnterminated(&b, z)
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case 0:
				b.WriteString(raw)
			case atom.Code:
				b.WriteString("`")
			case atom.Strong, atom.B:
				b.WriteString("**")
			case atom.Em, atom.I:
				b.WriteString("_")
			case atom.Br:
				b.WriteString("  \n")
			case atom.A:
				hrefs = append(hrefs, href(z, hasAttr))
				b.WriteString("[")
			}
		case html.EndTagToken:
			raw := string(z.Raw())
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case 0:
				b.WriteString(raw)
			case atom.Code:
				b.WriteString("`")
			case atom.Strong, atom.B:
				b.WriteString("**")
			case atom.Em, atom.I:
				b.WriteString("_")
			case atom.A:
				if len(hrefs) == 0 {
					continue
				}
				target := hrefs[len(hrefs)-1]
				hrefs = hrefs[:len(hrefs)-1]
				b.WriteString("](" + target + ")")
			}
		}
	}
}

// writeUnterminated keeps a tag left open at end of input as text. Any other
// error cannot happen on a strings.Reader.
func writeUnterminated(b *strings.Builder, z *html.Tokenizer) {
	if errors.Is(z.Err(), io.EOF) {
		b.Write(z.Raw())
	}
}

func href(z *html.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "href" {
			return string(val)
		}
	}
	return ""
}
