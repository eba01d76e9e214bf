package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// SearchResult is one ranked hit, ephemeral and per-query.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Content string `json:"content,omitempty"`
}

const (
	searchDefaultBaseURL = "https://html.duckduckgo.com/html/"
	searchUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	fetchWorkers      = 3
	fetchMaxLength    = 2000
	formatContentLead = 500
)

// Health portals whose results are ordered ahead of everything else.
var defaultTrustedSources = []string{
	"who.int",
	"diabetes.org",
	"mayoclinic.org",
	"webmd.com",
	"healthline.com",
	"medicalnewstoday.com",
	"ncbi.nlm.nih.gov",
	"cdc.gov",
	"niddk.nih.gov",
	"alodokter.com",
	"halodoc.com",
	"kemenkes.go.id",
}

// WebSearcher scrapes the DuckDuckGo HTML endpoint and optionally enriches
// hits with page content.
type WebSearcher struct {
	client         *http.Client
	baseURL        string
	maxResults     int
	trustedSources []string
}

func NewWebSearcher(maxResults int) *WebSearcher {
	base := os.Getenv("SEARCH_BASE_URL")
	if base == "" {
		base = searchDefaultBaseURL
	}
	return &WebSearcher{
		client:         &http.Client{Timeout: 10 * time.Second},
		baseURL:        base,
		maxResults:     maxResults,
		trustedSources: defaultTrustedSources,
	}
}

// Search runs a DuckDuckGo query with a "diabetes" context prefix, orders
// trusted sources first, and optionally fetches page content for the top
// hits. Individual fetch failures are non-fatal; the affected result simply
// carries no content.
func (s *WebSearcher) Search(query string, fetchContent bool) ([]SearchResult, error) {
	diabetesQuery := "diabetes " + query

	req, err := http.NewRequest("GET", s.baseURL+"?q="+url.QueryEscape(diabetesQuery), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("search engine error %d: %s", resp.StatusCode, string(body))
	}

	results, err := parseSearchPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}
	for i := range results {
		results[i].Source = extractDomain(results[i].URL)
	}

	// Trusted sources first, preserving engine order within each group.
	var trusted, untrusted []SearchResult
	for _, r := range results {
		if s.IsTrustedSource(r.URL) {
			trusted = append(trusted, r)
		} else {
			untrusted = append(untrusted, r)
		}
	}
	results = append(trusted, untrusted...)

	if len(results) > s.maxResults {
		results = results[:s.maxResults]
	}

	if fetchContent {
		s.fetchAll(results)
	}
	return results, nil
}

// fetchAll enriches results concurrently, at most fetchWorkers in flight.
// Order of the slice is untouched, so the formatted context is stable.
func (s *WebSearcher) fetchAll(results []SearchResult) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, fetchWorkers)
	for i := range results {
		wg.Add(1)
		go func(r *SearchResult) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			content, err := s.FetchPageContent(r.URL)
			if err != nil {
				return // degraded source, not a failed request
			}
			r.Content = content
		}(&results[i])
	}
	wg.Wait()
}

// FetchPageContent downloads one page and reduces it to readable paragraph
// text, capped at fetchMaxLength characters.
func (s *WebSearcher) FetchPageContent(pageURL string) (string, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", err
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "aside":
				return
			case "p", "article", "main":
				text := strings.TrimSpace(collectText(n))
				if len(text) > 50 { // skip boilerplate fragments
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	content := strings.Join(paragraphs, "\n")
	if utf8.RuneCountInString(content) > fetchMaxLength {
		content = truncateRunes(content, fetchMaxLength) + "..."
	}
	return content, nil
}

// truncateRunes cuts s to at most n runes, never splitting a UTF-8 sequence.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// IsTrustedSource reports whether the URL's domain is on the allowlist.
func (s *WebSearcher) IsTrustedSource(rawURL string) bool {
	domain := extractDomain(rawURL)
	for _, trusted := range s.trustedSources {
		if strings.Contains(domain, trusted) {
			return true
		}
	}
	return false
}

// FormatResultsForLLM renders the hits as a context block for the model.
func (s *WebSearcher) FormatResultsForLLM(results []SearchResult) string {
	if len(results) == 0 {
		return "Tidak ditemukan hasil pencarian yang relevan."
	}

	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "\n### Sumber %d: %s\n**Judul:** %s\n**URL:** %s\n**Ringkasan:** %s\n", i+1, r.Source, r.Title, r.URL, r.Snippet)
		if r.Content != "" {
			fmt.Fprintf(&sb, "**Konten:**\n%s...\n", truncateRunes(r.Content, formatContentLead))
		}
	}
	return sb.String()
}

func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

// parseSearchPage pulls titles, links, and snippets out of the DuckDuckGo
// HTML results page. Result anchors carry class "result__a", snippets
// "result__snippet"; they appear in document order, so they are zipped by
// index.
func parseSearchPage(r io.Reader) ([]SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	var snippets []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			classes := attrVal(n, "class")
			switch {
			case n.Data == "a" && strings.Contains(classes, "result__a"):
				results = append(results, SearchResult{
					Title: strings.TrimSpace(collectText(n)),
					URL:   resolveResultLink(attrVal(n, "href")),
				})
			case strings.Contains(classes, "result__snippet"):
				snippets = append(snippets, strings.TrimSpace(collectText(n)))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for i := range results {
		if i < len(snippets) {
			results[i].Snippet = snippets[i]
		}
	}
	return results, nil
}

// resolveResultLink unwraps DuckDuckGo's redirect links
// (//duckduckgo.com/l/?uddg=<escaped target>) into the target URL.
func resolveResultLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// SearchAgent decides when a question warrants hitting the web and trims
// queries before searching.
type SearchAgent struct {
	Searcher *WebSearcher

	triggers []string
}

func NewSearchAgent(searcher *WebSearcher) *SearchAgent {
	return &SearchAgent{
		Searcher: searcher,
		triggers: []string{
			"terbaru", "berita", "penelitian", "studi",
			"obat baru", "terapi baru", "update",
			"statistik", "data", "prevalensi",
			"rekomendasi", "guideline", "panduan terbaru",
			"perkembangan", "inovasi", "teknologi",
		},
	}
}

// ShouldSearch reports whether the question asks for recent or concrete
// facts worth a live lookup.
func (a *SearchAgent) ShouldSearch(query string) bool {
	lower := strings.ToLower(query)
	for _, t := range a.triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	for _, w := range interrogativeTriggers {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// EnhanceQuery drops filler words so the engine sees the substantive terms.
func (a *SearchAgent) EnhanceQuery(query string) string {
	stopwords := map[string]bool{
		"apa": true, "bagaimana": true, "mengapa": true,
		"apakah": true, "tolong": true, "jelaskan": true,
	}
	var kept []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if !stopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
