package scholarship

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// site is one listing page to harvest.
type site struct {
	name  string
	url   string
	level string
}

// Listing sites by level. College and university sources differ because
// upstream recommendation filters key off the level field.
var scrapeSites = []site{
	{"scholarships.com", "https://www.scholarships.com/scholarships", "college"},
	{"fastweb.com", "https://www.fastweb.com/college-scholarships", "college"},
	{"daad.de", "https://www2.daad.de/deutschland/stipendium/datenbank/en/21148-scholarship-database/", "university"},
	{"mastersportal.com", "https://www.mastersportal.com/search/scholarships/master", "university"},
	{"iefa.org", "https://www.iefa.org/scholarships", "university"},
}

const (
	maxPerSite      = 20
	listingTimeout  = 20 * time.Second
	detailTimeout   = 15 * time.Second
	scraperUA       = "Mozilla/5.0"
	maxListingBytes = 4 << 20
)

var (
	amountPattern   = regexp.MustCompile(`\$\s?\d{1,3}(,\d{3})*`)
	deadlinePattern = regexp.MustCompile(`(?i)(deadline|apply by|closing date)[^0-9]{0,10}(\w+\s\d{1,2},?\s?\d{4})`)
	blockedTitles   = []string{
		"find scholarships", "featured scholarships", "scholarship news",
		"providers", "directory", "builder", "list",
		"login", "sign in", "register", "menu",
	}
)

// Scraper harvests scholarship listings from third-party sites. It is
// best-effort by contract: individual site or detail-page failures are
// logged and skipped, never fatal.
type Scraper struct {
	client      *http.Client
	enrichLimit int
}

func NewScraper(enrichLimit int) *Scraper {
	return &Scraper{
		client:      &http.Client{Timeout: listingTimeout},
		enrichLimit: enrichLimit,
	}
}

// ScrapeAll fetches every configured listing page concurrently, dedupes
// by lowercase title and enriches the first enrichLimit records from
// their detail pages.
func (s *Scraper) ScrapeAll(ctx context.Context) []Scholarship {
	var (
		mu  sync.Mutex
		all []Scholarship
		wg  sync.WaitGroup
	)
	for _, st := range scrapeSites {
		wg.Add(1)
		go func() {
			defer wg.Done()
			found, err := s.scrapeSite(ctx, st)
			if err != nil {
				log.Printf("[Scraper] %s failed: %v", st.name, err)
				return
			}
			mu.Lock()
			all = append(all, found...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	deduped := dedupeByTitle(all)

	limit := s.enrichLimit
	if limit > len(deduped) {
		limit = len(deduped)
	}
	for i := 0; i < limit; i++ {
		deduped[i] = s.enrich(ctx, deduped[i])
	}
	return deduped
}

func (s *Scraper) scrapeSite(ctx context.Context, st site) ([]Scholarship, error) {
	body, err := s.fetch(ctx, st.url, listingTimeout)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var results []Scholarship
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		href, ok := sel.Attr("href")
		if title == "" || !ok || href == "" {
			return true
		}
		if len(title) < 8 || len(title) > 120 {
			return true
		}
		if !isValidTitle(title) {
			return true
		}

		results = append(results, Scholarship{
			ScholarshipID: scholarshipID(title),
			Title:         title,
			Type:          "General",
			Level:         st.level,
			Source:        st.name,
			DetailURL:     resolveURL(st.url, href),
		})
		return len(results) < maxPerSite
	})
	return results, nil
}

// enrich visits the detail page and fills amount and deadline when they
// can be spotted in the readable text. Failures return the record as-is.
func (s *Scraper) enrich(ctx context.Context, sch Scholarship) Scholarship {
	body, err := s.fetch(ctx, sch.DetailURL, detailTimeout)
	if err != nil {
		return sch
	}

	text := body
	pageURL, err := url.Parse(sch.DetailURL)
	if err == nil {
		if article, rerr := readability.FromReader(strings.NewReader(body), pageURL); rerr == nil && article.TextContent != "" {
			text = article.TextContent
		}
	}
	clean := strings.Join(strings.Fields(text), " ")

	if m := amountPattern.FindString(clean); m != "" {
		sch.Amount = &m
	}
	if m := deadlinePattern.FindStringSubmatch(clean); len(m) >= 3 {
		sch.Deadline = &m[2]
	}
	return sch
}

func (s *Scraper) fetch(ctx context.Context, rawURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", scraperUA)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// isValidTitle filters navigation chrome and keeps anchors that look
// like actual scholarship listings.
func isValidTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, b := range blockedTitles {
		if strings.Contains(t, b) {
			return false
		}
	}
	if amountPattern.MatchString(t) {
		return true
	}
	return strings.Contains(t, "scholarship") ||
		strings.Contains(t, "award") ||
		strings.Contains(t, "grant") ||
		strings.Contains(t, "fellowship")
}

func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

func dedupeByTitle(in []Scholarship) []Scholarship {
	seen := make(map[string]bool, len(in))
	out := make([]Scholarship, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
