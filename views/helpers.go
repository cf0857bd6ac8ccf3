package views

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"
)

// AvatarURL builds a gravatar-style avatar URL for an email address. The
// email itself never reaches the page, only its hash.
func AvatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=100&d=retro&r=g", hex.EncodeToString(sum[:]))
}

// esc escapes a dynamic value for insertion into HTML text or attributes.
func esc(s string) string {
	return html.EscapeString(s)
}

// safeImageURL returns the escaped URL if it is http(s) or site-relative,
// otherwise an empty string so templates skip the image.
func safeImageURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") {
		return esc(val)
	}
	parsed, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return esc(val)
	default:
		return ""
	}
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      cfg.URL,
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post Post) string {
	postURL := fmt.Sprintf("%s/post/%d", strings.TrimSuffix(cfg.URL, "/"), post.ID)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Subtitle,
		"datePublished": post.Date,
		"url":           postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.AuthorName,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
