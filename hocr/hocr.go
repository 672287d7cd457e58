// Package hocr parses Tesseract hOCR output into positioned text lines.
//
// hOCR is HTML in which every recognized page, line and word is an element
// whose class names the unit (ocr_page, ocr_line, ocrx_word) and whose title
// attribute carries properties such as "bbox 10 20 300 44; x_wconf 91".
package hocr

import (
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Word is a single recognized word.
type Word struct {
	Text       string
	BBox       image.Rectangle
	Confidence float64 // 0-100 as reported by Tesseract
}

// Line is a recognized text line with its position on the page.
type Line struct {
	Text       string
	BBox       image.Rectangle
	Confidence float64 // mean word confidence, 0 when no word reports one
	Page       int     // 0-based page index
	Words      []Word
}

// lineClasses are the hOCR classes Tesseract uses for line-level elements.
var lineClasses = map[string]bool{
	"ocr_line":      true,
	"ocr_header":    true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
}

// Parse reads an hOCR document and returns its lines in document order.
func Parse(r io.Reader) ([]Line, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	p := &parser{page: -1}
	p.walk(doc)
	return p.lines, nil
}

// ParseString parses an hOCR document held in a string.
func ParseString(s string) ([]Line, error) {
	return Parse(strings.NewReader(s))
}

// Texts returns the text of each line, in order.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

type parser struct {
	page  int
	lines []Line
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		classes := classList(n)
		switch {
		case hasClass(classes, "ocr_page"):
			p.page++
		case hasAnyClass(classes, lineClasses):
			p.lines = append(p.lines, p.parseLine(n))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) parseLine(n *html.Node) Line {
	line := Line{
		BBox: parseBBox(attr(n, "title")),
		Page: max(p.page, 0),
	}

	collectWords(n, &line.Words)

	var texts []string
	var confSum float64
	var confN int
	for _, w := range line.Words {
		if w.Text != "" {
			texts = append(texts, w.Text)
		}
		if w.Confidence > 0 {
			confSum += w.Confidence
			confN++
		}
	}
	if len(line.Words) == 0 {
		line.Text = strings.Join(strings.Fields(getTextContent(n)), " ")
	} else {
		line.Text = strings.Join(texts, " ")
	}
	if confN > 0 {
		line.Confidence = confSum / float64(confN)
	}

	return line
}

func collectWords(n *html.Node, words *[]Word) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if hasClass(classList(c), "ocrx_word") {
			title := attr(c, "title")
			*words = append(*words, Word{
				Text:       strings.TrimSpace(getTextContent(c)),
				BBox:       parseBBox(title),
				Confidence: parseFloatProp(title, "x_wconf"),
			})
			continue
		}
		collectWords(c, words)
	}
}

// parseBBox extracts the "bbox x0 y0 x1 y1" property from a title attribute.
func parseBBox(title string) image.Rectangle {
	fields := property(title, "bbox")
	if len(fields) != 4 {
		return image.Rectangle{}
	}
	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return image.Rectangle{}
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[2], v[3])
}

func parseFloatProp(title, name string) float64 {
	fields := property(title, name)
	if len(fields) != 1 {
		return 0
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return f
}

// property returns the values of a named property in an hOCR title.
func property(title, name string) []string {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) > 0 && fields[0] == name {
			return fields[1:]
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

func hasAnyClass(classes []string, set map[string]bool) bool {
	for _, c := range classes {
		if set[c] {
			return true
		}
	}
	return false
}

func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
