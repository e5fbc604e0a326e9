package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"

	"wse/config"
	"wse/style"
)

const computedScript = `() => {
	const get = (sel, prop) => {
		const el = sel === "body" ? document.body : document.querySelector(sel);
		return el ? window.getComputedStyle(el)[prop] || "" : "";
	};
	return JSON.stringify({
		body_background: get("body", "backgroundColor"),
		body_font: get("body", "fontFamily"),
		heading_color: get("h1", "color"),
		link_color: get("a", "color"),
	});
}`

type computedValues struct {
	BodyBackground string `json:"body_background"`
	BodyFont       string `json:"body_font"`
	HeadingColor   string `json:"heading_color"`
	LinkColor      string `json:"link_color"`
}

// Browser reads computed styles of the rendered page with headless Chrome.
type Browser struct {
	cfg config.BrowserConfig
	log *zap.Logger
}

// NewBrowser creates computed styles collaborator.
func NewBrowser(cfg *config.BrowserConfig, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Browser{cfg: *cfg, log: log.Named("browser")}
}

// Computed returns computed styles of body, first h1 and first link of the
// page. It never fails: when browser is disabled or anything goes wrong
// defaults are returned with Degraded set. Individual missing values are
// substituted with their defaults.
func (b *Browser) Computed(ctx context.Context, pageURL string) style.Computed {
	if !b.cfg.Enable {
		b.log.Debug("Browser disabled, using default computed styles")
		return style.DefaultComputed()
	}

	values, err := b.collect(ctx, pageURL)
	if err != nil {
		b.log.Warn("Unable to get computed styles, using defaults", zap.Error(err))
		return style.DefaultComputed()
	}

	return style.Computed{
		BodyBackground: style.ComputedToHex(values.BodyBackground),
		BodyFont:       values.BodyFont,
		HeadingColor:   style.ComputedToHex(values.HeadingColor),
		LinkColor:      style.ComputedToHex(values.LinkColor),
	}.WithDefaults()
}

func (b *Browser) collect(ctx context.Context, pageURL string) (computedValues, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	var values computedValues

	controlURL := b.cfg.RemoteURL
	if controlURL == "" {
		l := launcher.New().Context(ctx).Headless(b.cfg.Headless)
		var err error
		if controlURL, err = l.Launch(); err != nil {
			return values, fmt.Errorf("unable to launch browser: %w", err)
		}
		defer func() {
			l.Kill()
			l.Cleanup()
		}()
		b.log.Debug("Browser launched", zap.String("control", controlURL))
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return values, fmt.Errorf("unable to connect to browser: %w", err)
	}
	defer func() {
		if b.cfg.RemoteURL != "" {
			return
		}
		if cerr := browser.Close(); cerr != nil {
			b.log.Debug("Unable to close browser", zap.Error(cerr))
		}
	}()

	var (
		page *rod.Page
		err  error
	)
	if b.cfg.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return values, fmt.Errorf("unable to open page: %w", err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			b.log.Debug("Unable to close page", zap.Error(cerr))
		}
	}()

	if err := page.Navigate(pageURL); err != nil {
		return values, fmt.Errorf("unable to navigate to %s: %w", pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		b.log.Debug("Page load wait failed", zap.Error(err))
	}

	res, err := page.Eval(computedScript)
	if err != nil {
		return values, fmt.Errorf("unable to evaluate computed styles: %w", err)
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), &values); err != nil {
		return values, fmt.Errorf("unable to decode computed styles: %w", err)
	}
	if values == (computedValues{}) {
		return values, errors.New("page reported no computed styles")
	}
	return values, nil
}
