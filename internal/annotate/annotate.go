// Package annotate rewrites source links inside generated documentation HTML.
//
// Documentation generators mark anchors with a data-source-path attribute
// (and an optional data-source-line) instead of a final URL. Rewrite resolves
// those markers into forge URLs, and disables anchors whose path cannot be
// resolved.
package annotate

import (
	"bytes"
	"io"
	"io/ioutil"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/srcpages/srcpages/internal/source"
	"golang.org/x/net/html"
)

const (
	pathAttr = "data-source-path"
	lineAttr = "data-source-line"
)

// File rewrites the HTML file at path in place on fs.
func File(fs billy.Filesystem, path string, links source.Links, op source.Op) error {
	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	page, err := ioutil.ReadAll(f)
	f.Close()
	if err != nil {
		return err
	}
	page, err = Rewrite(bytes.NewReader(page), links, op)
	if err != nil {
		return err
	}
	out, err := fs.Create(path)
	if err != nil {
		return err
	}
	_, err = out.Write(page)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Rewrite re-renders an HTML page with its source anchors resolved through links.
// Anchors with no resolvable link keep their content but lose their href.
func Rewrite(r io.Reader, links source.Links, op source.Op) ([]byte, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	rewriteAnchors(node, links, op)

	var buf bytes.Buffer
	err = html.Render(&buf, node)
	return buf.Bytes(), err
}

func rewriteAnchors(node *html.Node, links source.Links, op source.Op) {
	if node.Type == html.ElementNode && node.Data == "a" {
		if path, ok := attr(node, pathAttr); ok {
			line, _ := strconv.Atoi(attrOr(node, lineAttr, "0"))
			url, ok := links.Resolve(path, line, op)
			if ok {
				setAttr(node, "href", url)
			} else {
				removeAttr(node, "href")
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		rewriteAnchors(child, links, op)
	}
}

func attr(node *html.Node, key string) (string, bool) {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrOr(node *html.Node, key, defaultValue string) string {
	if value, ok := attr(node, key); ok {
		return value
	}
	return defaultValue
}

func setAttr(node *html.Node, key, value string) {
	for i := range node.Attr {
		if node.Attr[i].Key == key {
			node.Attr[i].Val = value
			return
		}
	}
	node.Attr = append(node.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(node *html.Node, key string) {
	attrs := node.Attr[:0]
	for _, a := range node.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	node.Attr = attrs
}
