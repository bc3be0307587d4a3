package signals

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nyaruka/phonenumbers"
)

// ProfileFacts carries directory-profile knowledge into the CTA rubric.
type ProfileFacts struct {
	Phone    string
	HasHours bool
}

// Extraction holds the two clamped scores and every named contribution, so
// the rubric stays debuggable signal by signal.
type Extraction struct {
	SEO       int            `json:"seo"`
	CTA       int            `json:"cta"`
	Breakdown map[string]int `json:"breakdown"`
}

var phonePattern = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)

var streetPattern = regexp.MustCompile(`(?i)\b\d{1,5}\s+\w[\w\s.]{0,30}\b(street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|way|court|ct|place|pl|highway|hwy)\b`)

// Extract parses homepage markup and scores it against the rubric. Both
// scores are clamped to [0,100] after summation.
func Extract(html string, facts ProfileFacts, rubric Rubric) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("signals: parse homepage: %w", err)
	}

	breakdown := make(map[string]int)
	bodyText := doc.Find("body").Text()
	pageHost := documentHost(doc)

	cta := scoreCTA(doc, bodyText, facts, rubric, breakdown)
	seo := scoreSEO(doc, html, bodyText, pageHost, rubric, breakdown)

	return &Extraction{
		SEO:       clamp(seo, 0, 100),
		CTA:       clamp(cta, 0, 100),
		Breakdown: breakdown,
	}, nil
}

func scoreCTA(doc *goquery.Document, bodyText string, facts ProfileFacts, r Rubric, breakdown map[string]int) int {
	total := 0

	telCount := countValidTelLinks(doc)
	if telCount > 0 {
		points := r.TelLinkBase + min((telCount-1)*r.TelLinkExtraEach, r.TelLinkExtraMax)
		breakdown["telLinks"] = points
		total += points
	}

	actionCount := countActionElements(doc)
	if actionCount > 0 {
		points := r.ActionWordBase + min((actionCount-1)*r.ActionRepeatEach, r.ActionRepeatMax)
		breakdown["ctaWords"] = points
		total += points
	}

	hasForm := doc.Find("form").Length() > 0
	if hasForm {
		breakdown["forms"] = r.FormPoints
		total += r.FormPoints
	}

	if strings.TrimSpace(facts.Phone) != "" {
		breakdown["profilePhone"] = r.ProfilePhone
		total += r.ProfilePhone
	}
	if facts.HasHours {
		breakdown["profileHours"] = r.ProfileHours
		total += r.ProfileHours
	}

	lowerBody := strings.ToLower(bodyText)
	for _, word := range emergencyWords {
		if strings.Contains(lowerBody, word) {
			breakdown["emergency"] = r.Emergency
			total += r.Emergency
			break
		}
	}

	// Total friction: nothing on the page lets a visitor act.
	if telCount == 0 && actionCount == 0 && !hasForm {
		breakdown["frictionPenalty"] = r.FrictionPenalty
		total += r.FrictionPenalty
	}

	return total
}

func scoreSEO(doc *goquery.Document, html, bodyText, pageHost string, r Rubric, breakdown map[string]int) int {
	total := 0

	titleLen := len(strings.TrimSpace(doc.Find("title").First().Text()))
	switch {
	case titleLen >= r.TitleMin && titleLen <= r.TitleMax:
		breakdown["titleLength"] = r.TitleSweetSpot
	case titleLen == 0 || titleLen > r.TitleAbsurd:
		breakdown["titleLength"] = r.TitleBadPenalty
	default:
		breakdown["titleLength"] = r.TitleOffRange
	}
	total += breakdown["titleLength"]

	meta, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	metaLen := len(strings.TrimSpace(meta))
	switch {
	case metaLen >= r.MetaMin && metaLen <= r.MetaMax:
		breakdown["metaDescription"] = r.MetaSweetSpot
	case metaLen == 0:
		breakdown["metaDescription"] = r.MetaMissing
	case metaLen >= r.MetaAdjacentLo && metaLen <= r.MetaAdjacentHi:
		breakdown["metaDescription"] = r.MetaAdjacent
	default:
		breakdown["metaDescription"] = 0
	}
	total += breakdown["metaDescription"]

	h1Count := doc.Find("h1").Length()
	if h1Count >= 1 {
		points := r.H1Present
		if h1Count > 2 {
			points += r.H1ExcessPenalty
		}
		breakdown["h1Count"] = points
		total += points
	}

	words := len(strings.Fields(bodyText))
	switch {
	case words >= 600:
		breakdown["wordCount"] = r.WordTierHigh
	case words >= 300:
		breakdown["wordCount"] = r.WordTierMid
	case words >= 100:
		breakdown["wordCount"] = r.WordTierLow
	default:
		breakdown["wordCount"] = r.WordTierPenalty
	}
	total += breakdown["wordCount"]

	internal := countInternalLinks(doc, pageHost)
	switch {
	case internal >= 40:
		breakdown["internalLinks"] = r.LinkTier40
	case internal >= 20:
		breakdown["internalLinks"] = r.LinkTier20
	case internal >= 10:
		breakdown["internalLinks"] = r.LinkTier10
	case internal >= 1:
		breakdown["internalLinks"] = r.LinkTier1
	}
	total += breakdown["internalLinks"]

	if doc.Find("nav a").Length() >= 3 {
		breakdown["navLinks"] = r.NavBonus
		total += r.NavBonus
	}

	if hasLocalMarkup(doc) {
		breakdown["localMarkup"] = r.LocalMarkup
		total += r.LocalMarkup
	}

	if hasMapEmbed(doc) {
		breakdown["mapEmbed"] = r.MapEmbed
		total += r.MapEmbed
	}

	if textHasPhone(bodyText) && streetPattern.MatchString(bodyText) {
		breakdown["phoneAddress"] = r.PhoneAndAddress
		total += r.PhoneAndAddress
	}

	if scriptStyleRatio(doc, len(html)) > r.ScriptBulkRatio {
		breakdown["uxHygiene"] = r.ScriptBulk
		total += r.ScriptBulk
	}

	if imageAltCoverage(doc) >= r.ImageAltCoverage {
		breakdown["imageAlt"] = r.ImageAltBonus
		total += r.ImageAltBonus
	}

	hints := doc.Find(`link[rel="preconnect"], link[rel="dns-prefetch"], link[rel="preload"]`).Length()
	if hints > 0 {
		points := min(hints*r.ResourceHintEach, r.ResourceHintEach*2)
		breakdown["resourceHints"] = points
		total += points
	}

	return total
}

// countValidTelLinks counts tel: anchors whose target parses as a possible
// phone number; junk hrefs are ignored.
func countValidTelLinks(doc *goquery.Document) int {
	count := 0
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		raw := strings.TrimPrefix(href, "tel:")
		num, err := phonenumbers.Parse(raw, "US")
		if err != nil {
			return
		}
		if phonenumbers.IsPossibleNumber(num) {
			count++
		}
	})
	return count
}

func countActionElements(doc *goquery.Document) int {
	count := 0
	doc.Find(`a, button, input[type="submit"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		if text == "" {
			if val, ok := s.Attr("value"); ok {
				text = strings.ToLower(val)
			}
		}
		for _, word := range actionWords {
			if strings.Contains(text, word) {
				count++
				return
			}
		}
	})
	return count
}

func countInternalLinks(doc *goquery.Document, pageHost string) int {
	count := 0
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "mailto:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		if u.Host == "" || strings.EqualFold(u.Host, pageHost) {
			count++
		}
	})
	return count
}

func hasLocalMarkup(doc *goquery.Document) bool {
	found := false
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), "LocalBusiness") {
			found = true
		}
	})
	if found {
		return true
	}
	doc.Find("[itemtype]").Each(func(_ int, s *goquery.Selection) {
		itemtype, _ := s.Attr("itemtype")
		if strings.Contains(itemtype, "LocalBusiness") {
			found = true
		}
	})
	return found
}

func hasMapEmbed(doc *goquery.Document) bool {
	found := false
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if strings.Contains(src, "google.com/maps") || strings.Contains(src, "maps.google") {
			found = true
		}
	})
	return found
}

// textHasPhone reports whether the page text contains a string that parses
// as a possible US phone number.
func textHasPhone(text string) bool {
	for _, match := range phonePattern.FindAllString(text, 5) {
		num, err := phonenumbers.Parse(match, "US")
		if err != nil {
			continue
		}
		if phonenumbers.IsPossibleNumber(num) {
			return true
		}
	}
	return false
}

func scriptStyleRatio(doc *goquery.Document, docSize int) float64 {
	if docSize == 0 {
		return 0
	}
	bulk := 0
	doc.Find("script, style").Each(func(_ int, s *goquery.Selection) {
		bulk += len(s.Text())
	})
	return float64(bulk) / float64(docSize)
}

func imageAltCoverage(doc *goquery.Document) float64 {
	images := doc.Find("img")
	total := images.Length()
	if total == 0 {
		return 0
	}
	withAlt := 0
	images.Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			withAlt++
		}
	})
	return float64(withAlt) / float64(total)
}

func documentHost(doc *goquery.Document) string {
	if doc.Url != nil {
		return doc.Url.Host
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
