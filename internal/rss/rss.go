// Package rss renders feeds as RSS 2.0 documents.
package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/pkg/markup"
)

const (
	ContentType  = "application/xml"
	CacheControl = "public, max-age=600, s-maxage=86400"
	Generator    = "Vanguard"

	// BrowserTTL matches max-age in CacheControl.
	BrowserTTL = 10 * time.Minute
)

type document struct {
	XMLName      xml.Name `xml:"rss"`
	Version      string   `xml:"version,attr"`
	ContentNS    string   `xml:"xmlns:content,attr"`
	DublinCoreNS string   `xml:"xmlns:dc,attr"`
	AtomNS       string   `xml:"xmlns:atom,attr"`
	Channel      channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language"`
	Generator   string `xml:"generator"`
	Items       []item `xml:"item"`
}

type cdata struct {
	Value string `xml:",cdata"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type item struct {
	Title       cdata  `xml:"title"`
	Description string `xml:"description"`
	Content     cdata  `xml:"content:encoded"`
	Author      string `xml:"author"`
	PubDate     string `xml:"pubDate"`
	Link        string `xml:"link"`
	GUID        guid   `xml:"guid"`
}

// PostLink returns the public URL of a post.
func PostLink(baseURL string, postID int64) string {
	return strings.TrimRight(baseURL, "/") + "/p/" + strconv.FormatInt(postID, 10)
}

// Render produces the RSS document for feed. Posts that were never published
// are skipped. encoding/xml escapes character data and splits any "]]>" found
// inside CDATA sections.
func Render(feed *model.Feed, posts []*model.FullPost, baseURL string) ([]byte, error) {
	doc := document{
		Version:      "2.0",
		ContentNS:    "http://purl.org/rss/1.0/modules/content/",
		DublinCoreNS: "http://purl.org/dc/elements/1.1/",
		AtomNS:       "http://www.w3.org/2005/Atom",
		Channel: channel{
			Title:     feed.Name,
			Link:      strings.TrimRight(baseURL, "/"),
			Language:  "en-us",
			Generator: Generator,
		},
	}

	for _, post := range posts {
		if post.Post.PublishedAt == nil {
			continue
		}

		summary, err := markup.Summarize(post.Post.Content, markup.DefaultSummaryLength)
		if err != nil {
			return nil, fmt.Errorf("summarize post %d: %w", post.Post.ID, err)
		}
		body, err := markup.Markdown(post.Post.Content)
		if err != nil {
			return nil, fmt.Errorf("render post %d: %w", post.Post.ID, err)
		}

		doc.Channel.Items = append(doc.Channel.Items, item{
			Title:       cdata{Value: xmlChars(post.Post.Title)},
			Description: summary,
			Content:     cdata{Value: xmlChars(body)},
			Author:      post.Author.DisplayName(),
			PubDate:     post.Post.PublishedAt.UTC().Format(time.RFC1123Z),
			Link:        PostLink(baseURL, post.Post.ID),
			GUID:        guid{Value: strconv.FormatInt(post.Post.ID, 10)},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// xmlChars drops runes outside the XML 1.0 Char production. encoding/xml
// replaces them in character data but writes CDATA sections verbatim.
func xmlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r >= 0x20 && r <= 0xD7FF:
			return r
		case r >= 0xE000 && r <= 0xFFFD:
			return r
		case r >= 0x10000 && r <= 0x10FFFF:
			return r
		default:
			return -1
		}
	}, s)
}
