package parser

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dastanaron/tilawah/internal/models"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkHost is the host used for verse links in exported bookmark files
const LinkHost = "quran.com"

// VerseURL returns the link written for a bookmark
func VerseURL(ref models.VerseRef) string {
	return fmt.Sprintf("https://%s/%d/%d", LinkHost, ref.Surah, ref.Ayah)
}

// ParseVerseURL extracts the verse from a link such as https://quran.com/2/255
// or https://quran.com/2:255
func ParseVerseURL(raw string) (models.VerseRef, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.EqualFold(strings.TrimPrefix(u.Host, "www."), LinkHost) {
		return models.VerseRef{}, false
	}
	path := strings.Trim(u.Path, "/")
	ref, err := models.ParseVerseRef(path)
	if err != nil {
		return models.VerseRef{}, false
	}
	return ref, true
}

// ParseBookmarksHTML parses a Netscape bookmark file. Every <H3> opens a folder,
// links to quran.com verses become bookmarks of the innermost folder; links
// outside any folder go to the default folder. Other links are skipped.
func ParseBookmarksHTML(r io.Reader) (models.Bookmarks, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	out := models.Bookmarks{}
	var folderStack []string
	var last *models.Bookmark
	var lastFolder string

	current := func() string {
		if len(folderStack) == 0 {
			return models.DefaultFolder
		}
		return folderStack[len(folderStack)-1]
	}

	flush := func() {
		if last != nil {
			out[lastFolder] = append(out[lastFolder], *last)
			last = nil
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		// Found folder header <H3 ...>
		if n.Type == html.ElementNode && n.Data == "h3" {
			flush()
			name := strings.TrimSpace(textOf(n))
			if name == "" {
				name = models.DefaultFolder
			}
			folderStack = append(folderStack, name)
			if _, ok := out[name]; !ok {
				out[name] = []models.Bookmark{}
			}
		}

		// Found bookmark <A HREF=...>
		if n.Type == html.ElementNode && n.Data == "a" {
			flush()
			var href string
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = attr.Val
				}
			}
			if ref, ok := ParseVerseURL(href); ok {
				last = &models.Bookmark{
					Surah:     ref.Surah,
					Ayah:      ref.Ayah,
					SurahName: surahNameFromTitle(textOf(n), ref),
				}
				lastFolder = current()
			}
		}

		// <DD> after a link carries the snippet
		if n.Type == html.ElementNode && n.Data == "dd" && last != nil {
			last.Text = strings.TrimSpace(ownText(n))
			flush()
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		// When exiting DL container - "close" current folder
		if n.Type == html.ElementNode && n.Data == "dl" {
			flush()
			if len(folderStack) > 0 {
				folderStack = folderStack[:len(folderStack)-1]
			}
		}
	}

	walk(doc)
	flush()
	return out, nil
}

// surahNameFromTitle strips the trailing "2:255" from "Al-Baqarah 2:255"
func surahNameFromTitle(title string, ref models.VerseRef) string {
	title = strings.TrimSpace(title)
	return strings.TrimSpace(strings.TrimSuffix(title, ref.String()))
}

// ownText returns the text of n up to the first nested element that opens a
// new entry. Parsers nest the following <DT> inside an unclosed <DD>.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "dt" || c.Data == "dl") {
			break
		}
		b.WriteString(textOf(c))
	}
	return b.String()
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}

// PlainText strips markup from an HTML fragment (tafsir and some translations
// carry <b>, <i>, <br> and footnote tags) and collapses whitespace.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && (n.Data == "br" || n.Data == "p"):
			b.WriteByte(' ')
		case n.Type == html.ElementNode && (n.Data == "sup" || n.Data == "script" || n.Data == "style"):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			b.WriteByte(' ')
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Truncate truncates s to at most n runes, appending an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
