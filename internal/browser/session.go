package browser

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Session owns one browser process and one browsing context for the duration
// of a multi-URL crawl. It is never reused across crawl invocations.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext

	closeOnce sync.Once
	closeErr  error
}

type Options struct {
	Headless bool
	//CookiesPath optionally points at a directory of cookies-<platform>.json
	//files injected into the context at open time
	CookiesPath string
	Platforms   []string
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
}

// request classes aborted by the context-wide route; purely a bandwidth
// optimization, extraction never depends on any of these
var blockedResourceTypes = map[string]bool{
	"image":      true,
	"font":       true,
	"stylesheet": true,
	"media":      true,
}

var blockedURLFragments = []string{
	"google-analytics.com",
	"googletagmanager.com",
	"doubleclick.net",
	"adsystem.",
	"facebook.net",
	"hotjar.com",
	"branch.io",
}

// Open launches a headless engine and creates one context with a randomized
// user-agent, a fixed viewport and resource-blocking rules installed.
func Open(opts Options) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgents[rand.Intn(len(userAgents))]),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if err := context.Route("**/*", blockResources); err != nil {
		_ = context.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to install request interception: %w", err)
	}

	s := &Session{pw: pw, browser: browser, context: context}

	if opts.CookiesPath != "" {
		s.injectCookies(opts.CookiesPath, opts.Platforms)
	}

	return s, nil
}

func blockResources(route playwright.Route) {
	req := route.Request()
	if blockedResourceTypes[req.ResourceType()] {
		_ = route.Abort()
		return
	}
	url := req.URL()
	for _, frag := range blockedURLFragments {
		if strings.Contains(url, frag) {
			_ = route.Abort()
			return
		}
	}
	_ = route.Continue()
}

// NewPage creates an isolated page in the shared context. The caller must
// close it on every exit path.
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

// Close tears down context, browser and the playwright driver. Safe to call
// more than once; only the first call does the work.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := s.context.Close(); err != nil {
			s.closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		if err := s.browser.Close(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		if err := s.pw.Stop(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
	})
	return s.closeErr
}

func (s *Session) injectCookies(dir string, platforms []string) {
	for _, platform := range platforms {
		cookies, err := LoadCookies(dir, platform)
		if err != nil {
			zap.S().Debugw("no cookies loaded", "platform", platform, "err", err)
			continue
		}
		if err := s.context.AddCookies(cookies); err != nil {
			zap.S().Warnw("failed to add cookies", "platform", platform, "err", err)
			continue
		}
		zap.S().Infow("🍪 cookies injected", "platform", platform, "count", len(cookies))
	}
}
