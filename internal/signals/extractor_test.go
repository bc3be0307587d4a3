package signals

import (
	"strings"
	"testing"
)

const richHomepage = `<html><head>
<title>Acme Roofing | Roof Repair in Newark NJ</title>
<meta name="description" content="Acme Roofing offers residential and commercial roof repair, replacement and inspection across Newark and Essex County, New Jersey since 1998.">
<link rel="preconnect" href="https://fonts.example.com">
</head><body>
<nav><a href="/">Home</a><a href="/services">Services</a><a href="/contact">Contact</a></nav>
<h1>Newark Roofing Experts</h1>
<a href="tel:+19735550100">Call Now</a>
<a href="tel:9735550101">Call</a>
<form action="/quote"></form>
<p>Call us for a free estimate. 24/7 emergency service available.
Visit us at 123 Main Street, Newark NJ or phone (973) 555-0100.</p>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"LocalBusiness"}</script>
<iframe src="https://www.google.com/maps/embed?pb=abc"></iframe>
</body></html>`

func TestExtract_RichHomepage(t *testing.T) {
	facts := ProfileFacts{Phone: "(973) 555-0100", HasHours: true}

	got, err := Extract(richHomepage, facts, DefaultRubric())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.CTA != 70 {
		t.Fatalf("expected CTA 70, got %d (breakdown %v)", got.CTA, got.Breakdown)
	}
	if got.SEO != 58 {
		t.Fatalf("expected SEO 58, got %d (breakdown %v)", got.SEO, got.Breakdown)
	}

	expect := map[string]int{
		"telLinks":        28,
		"ctaWords":        17,
		"forms":           5,
		"profilePhone":    10,
		"profileHours":    5,
		"emergency":       5,
		"titleLength":     12,
		"metaDescription": 10,
		"h1Count":         8,
		"localMarkup":     10,
		"mapEmbed":        5,
		"phoneAddress":    10,
		"navLinks":        3,
		"internalLinks":   2,
		"resourceHints":   2,
		"wordCount":       -4,
	}
	for key, want := range expect {
		if got.Breakdown[key] != want {
			t.Fatalf("breakdown[%s]=%d, want %d", key, got.Breakdown[key], want)
		}
	}
}

func TestExtract_FrictionPenaltyAndClamp(t *testing.T) {
	html := `<html><head></head><body><p>We exist.</p></body></html>`

	got, err := Extract(html, ProfileFacts{}, DefaultRubric())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Breakdown["frictionPenalty"] != -15 {
		t.Fatalf("expected friction penalty, breakdown %v", got.Breakdown)
	}
	if got.CTA != 0 {
		t.Fatalf("CTA must clamp at 0, got %d", got.CTA)
	}
	if got.SEO < 0 || got.SEO > 100 {
		t.Fatalf("SEO out of range: %d", got.SEO)
	}
}

func TestExtract_TitleTiers(t *testing.T) {
	cases := []struct {
		title string
		want  int
	}{
		{"Roof Repair in Newark New Jersey", 12}, // sweet spot
		{"Home", 5},                              // short but present
		{"", -10},                                // missing
		{strings.Repeat("x", 150), -10},          // absurdly long
	}

	for _, tc := range cases {
		html := "<html><head><title>" + tc.title + "</title></head><body></body></html>"
		got, err := Extract(html, ProfileFacts{}, DefaultRubric())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Breakdown["titleLength"] != tc.want {
			t.Fatalf("title %q: breakdown=%d, want %d", tc.title, got.Breakdown["titleLength"], tc.want)
		}
	}
}

func TestExtract_MetaTiers(t *testing.T) {
	cases := []struct {
		length int
		want   int
	}{
		{140, 10}, // sweet spot
		{90, 6},   // adjacent
		{200, 6},  // adjacent
		{0, -8},   // missing
		{30, 0},   // far outside
	}

	for _, tc := range cases {
		meta := ""
		if tc.length > 0 {
			meta = `<meta name="description" content="` + strings.Repeat("a", tc.length) + `">`
		}
		html := "<html><head>" + meta + "</head><body></body></html>"
		got, err := Extract(html, ProfileFacts{}, DefaultRubric())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Breakdown["metaDescription"] != tc.want {
			t.Fatalf("meta length %d: breakdown=%d, want %d", tc.length, got.Breakdown["metaDescription"], tc.want)
		}
	}
}

func TestExtract_H1Excess(t *testing.T) {
	html := `<html><body><h1>a</h1><h1>b</h1><h1>c</h1></body></html>`
	got, err := Extract(html, ProfileFacts{}, DefaultRubric())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Breakdown["h1Count"] != 2 { // 8 present - 6 excess
		t.Fatalf("expected excess h1 penalty applied, got %d", got.Breakdown["h1Count"])
	}
}

func TestExtract_JunkTelLinksIgnored(t *testing.T) {
	html := `<html><body><a href="tel:clickhere">Call</a></body></html>`
	got, err := Extract(html, ProfileFacts{}, DefaultRubric())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.Breakdown["telLinks"]; ok {
		t.Fatalf("unparseable tel target must not score, breakdown %v", got.Breakdown)
	}
}

func TestExtract_ScriptBulkPenalty(t *testing.T) {
	bulk := strings.Repeat("var x=1;", 2000)
	html := `<html><head><script>` + bulk + `</script></head><body><p>tiny</p></body></html>`

	got, err := Extract(html, ProfileFacts{}, DefaultRubric())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Breakdown["uxHygiene"] != -6 {
		t.Fatalf("expected script bulk penalty, breakdown %v", got.Breakdown)
	}
}

func TestExtract_ScoresAlwaysInRange(t *testing.T) {
	pages := []string{
		"",
		"<html></html>",
		richHomepage,
		`<html><body>` + strings.Repeat(`<a href="tel:+19735550100">Call for a free estimate</a><form></form>`, 50) + `</body></html>`,
	}
	for i, html := range pages {
		got, err := Extract(html, ProfileFacts{Phone: "x", HasHours: true}, DefaultRubric())
		if err != nil {
			t.Fatalf("page %d: unexpected error: %v", i, err)
		}
		if got.SEO < 0 || got.SEO > 100 || got.CTA < 0 || got.CTA > 100 {
			t.Fatalf("page %d: scores out of range: seo=%d cta=%d", i, got.SEO, got.CTA)
		}
	}
}
