// Package extract drives single extraction run: collects style text from the
// page, builds style profile and hands it to renderer and project output.
package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wse/config"
	"wse/fetch"
	"wse/style"
	"wse/utils/debug"
	"wse/utils/images"
)

// imageSampleColors is number of dominant colors taken from the first page
// image.
const imageSampleColors = 3

// PageSource provides page markup derived data and image bytes.
type PageSource interface {
	Page(ctx context.Context, pageURL string) (*fetch.Page, error)
	Image(ctx context.Context, imageURL string) ([]byte, error)
}

// ComputedSource provides computed styles, it never fails and returns
// defaults instead.
type ComputedSource interface {
	Computed(ctx context.Context, pageURL string) style.Computed
}

// SampleResult is outcome of image sampling. Err is informational only,
// failed sampling contributes no colors.
type SampleResult struct {
	URL    string
	Colors []string
	Err    error
}

// Result is everything collected for a single page.
type Result struct {
	Profile *style.Profile
	Page    *fetch.Page
	Sample  SampleResult
}

// Extractor builds style profiles.
type Extractor struct {
	pages    PageSource
	computed ComputedSource
	rpt      *config.Report
	log      *zap.Logger
}

// New creates extractor over collaborators, rpt may be nil when no debug
// report is requested.
func New(pages PageSource, computed ComputedSource, rpt *config.Report, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{pages: pages, computed: computed, rpt: rpt, log: log.Named("extract")}
}

// Extract collects style information from the page. Only inability to get
// the page itself is an error, everything else degrades to defaults.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Result, error) {
	page, err := e.pages.Page(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	e.log.Debug("Page collected",
		zap.Int("style text", len(page.StyleText)),
		zap.Int("sheets", len(page.Sheets)),
		zap.String("image", page.ImageURL))
	e.rpt.StoreData("raw.css", []byte(page.StyleText))

	sample := e.sample(ctx, page.ImageURL)
	colors := style.ExtractColors(page.StyleText, sample.Colors)
	fonts := style.ExtractFonts(page.StyleText, e.log)
	computed := e.computed.Computed(ctx, pageURL)

	profile, err := style.NewProfile(pageURL, colors, fonts, computed, page.StyleText)
	if err != nil {
		return nil, fmt.Errorf("unable to build style profile: %w", err)
	}
	e.log.Debug("Profile ready",
		zap.Strings("colors", profile.Colors()),
		zap.Strings("fonts", profile.Fonts()),
		zap.Bool("degraded", profile.Computed().Degraded))
	e.rpt.StoreData("profile.txt", dumpProfile(profile, page, sample))

	return &Result{Profile: profile, Page: page, Sample: sample}, nil
}

func (e *Extractor) sample(ctx context.Context, imageURL string) SampleResult {
	res := SampleResult{URL: imageURL}
	if len(imageURL) == 0 {
		return res
	}
	data, err := e.pages.Image(ctx, imageURL)
	if err == nil {
		res.Colors, err = images.DominantColors(data, imageSampleColors)
	}
	if err != nil {
		e.log.Debug("Image sampling failed, ignoring", zap.String("url", imageURL), zap.Error(err))
		res.Colors, res.Err = nil, err
	}
	return res
}

func dumpProfile(p *style.Profile, page *fetch.Page, sample SampleResult) []byte {
	tw := debug.NewTreeWriter()
	tw.Line(0, "profile %s", p.URL())
	tw.List(1, "colors", p.Colors())
	tw.List(1, "fonts", p.Fonts())

	c := p.Computed()
	tw.Line(1, "computed (degraded: %t)", c.Degraded)
	tw.Value(2, "body background", c.BodyBackground)
	tw.Value(2, "body font", c.BodyFont)
	tw.Value(2, "heading color", c.HeadingColor)
	tw.Value(2, "link color", c.LinkColor)

	tw.Line(1, "image %s", sample.URL)
	tw.List(2, "sampled", sample.Colors)
	if sample.Err != nil {
		tw.Value(2, "error", sample.Err.Error())
	}

	tw.Line(1, "sheets (%d)", len(page.Sheets))
	for _, sh := range page.Sheets {
		if sh.Err != nil {
			tw.Line(2, "%s failed: %v", sh.URL, sh.Err)
			continue
		}
		if len(sh.ImportedBy) > 0 {
			tw.Line(2, "%s %d bytes, imported by %s", sh.URL, sh.Bytes, sh.ImportedBy)
			continue
		}
		tw.Line(2, "%s %d bytes", sh.URL, sh.Bytes)
	}

	props := p.CustomProperties().All()
	tw.Line(1, "custom properties (%d)", len(props))
	for _, prop := range props {
		tw.Value(2, "--"+prop.Name, prop.Value)
	}

	features := p.Features()
	tw.Line(1, "features")
	for _, f := range style.AllFeatures() {
		tw.List(2, f.String(), features.Matches(f))
	}
	return tw.Bytes()
}
