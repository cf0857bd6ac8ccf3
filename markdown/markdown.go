// Package markdown renders post bodies and comment text to HTML. It covers
// the constructs the editor offers: headings, paragraphs, lists, quotes,
// fenced code, rules, and inline emphasis/code/links. All text is escaped;
// only http(s), mailto, and site-relative link targets survive.
package markdown

import (
	"bytes"
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
)

// Render returns the HTML representation of md.
func Render(md string) string {
	var buf bytes.Buffer
	RenderTo(&buf, md)
	return buf.String()
}

// RenderTo writes the HTML representation of md to buf.
func RenderTo(buf *bytes.Buffer, md string) {
	lines := strings.Split(md, "\n")
	inPara := false
	inList := false
	inOrdered := false
	inQuote := false
	inCode := false

	flushPara := func() {
		if inPara {
			buf.WriteString("</p>")
			inPara = false
		}
	}
	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
		if inOrdered {
			buf.WriteString("</ol>")
			inOrdered = false
		}
	}
	flushQuote := func() {
		if inQuote {
			buf.WriteString("</blockquote>")
			inQuote = false
		}
	}
	flushCode := func() {
		if inCode {
			buf.WriteString("</code></pre>")
			inCode = false
		}
	}
	flushBlocks := func() {
		flushPara()
		flushList()
		flushQuote()
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				flushCode()
			} else {
				flushBlocks()
				buf.WriteString("<pre><code>")
				inCode = true
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushBlocks()
			continue
		}

		switch {
		case strings.HasPrefix(line, "---"):
			flushBlocks()
			buf.WriteString("<hr/>")
		case strings.HasPrefix(line, "# "):
			flushBlocks()
			buf.WriteString("<h1>" + formatInline(strings.TrimSpace(line[2:])) + "</h1>")
		case strings.HasPrefix(line, "## "):
			flushBlocks()
			buf.WriteString("<h2>" + formatInline(strings.TrimSpace(line[3:])) + "</h2>")
		case strings.HasPrefix(line, "### "):
			flushBlocks()
			buf.WriteString("<h3>" + formatInline(strings.TrimSpace(line[4:])) + "</h3>")
		case strings.HasPrefix(line, "- "):
			if !inList {
				flushPara()
				flushQuote()
				if inOrdered {
					buf.WriteString("</ol>")
					inOrdered = false
				}
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>" + formatInline(strings.TrimSpace(line[2:])) + "</li>")
		case reOrdered.MatchString(line):
			if !inOrdered {
				flushPara()
				flushQuote()
				if inList {
					buf.WriteString("</ul>")
					inList = false
				}
				buf.WriteString("<ol>")
				inOrdered = true
			}
			item := reOrdered.ReplaceAllString(line, "")
			buf.WriteString("<li>" + formatInline(strings.TrimSpace(item)) + "</li>")
		case strings.HasPrefix(line, "> "):
			if !inQuote {
				flushPara()
				flushList()
				buf.WriteString("<blockquote>")
				inQuote = true
			}
			buf.WriteString(formatInline(strings.TrimSpace(line[2:])))
		default:
			if !inPara {
				flushList()
				flushQuote()
				buf.WriteString("<p>")
				inPara = true
			} else {
				buf.WriteString(" ")
			}
			buf.WriteString(formatInline(strings.TrimSpace(line)))
		}
	}
	flushPara()
	flushList()
	flushQuote()
	flushCode()
}

// applyOutsideTags applies fn only to text segments outside HTML tags,
// so that formatting regexes never touch URLs inside href attributes.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

func formatInline(s string) string {
	escaped := html.EscapeString(s)
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		if len(match) < 3 {
			return m
		}
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reInlineCode.ReplaceAllString(seg, "<code>$1</code>")
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})
	return escaped
}

func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	default:
		return ""
	}
}
