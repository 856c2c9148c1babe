package scraper

import (
	"fmt"

	"go-jobradar-automation/internal/browser"
	"go-jobradar-automation/internal/platform"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// maxPaginationAttempts bounds worst-case runtime against infinite-scroll
// pages that never stabilize.
const maxPaginationAttempts = 20

// PaginationDriver drives a listing page through repeated scroll/"load more"
// cycles until content stabilizes or the next-page control is exhausted.
type PaginationDriver struct {
	MaxAttempts int
}

func NewPaginationDriver() *PaginationDriver {
	return &PaginationDriver{MaxAttempts: maxPaginationAttempts}
}

// pageHooks isolates the driver loop from playwright so the termination
// logic is testable without a browser.
type pageHooks struct {
	height   func() (int, error)
	scroll   func() error
	loadMore func() (bool, error)
	wait     func(minMs, maxMs int)
}

// Exhaust mutates page state by triggering more content to render until the
// listing is exhausted. No return value beyond termination: the caller
// re-queries the DOM for item handles afterward.
func (d *PaginationDriver) Exhaust(page playwright.Page, desc platform.Descriptor) error {
	hooks := pageHooks{
		height: func() (int, error) {
			return contentHeight(page)
		},
		scroll: func() error {
			_, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
			return err
		},
		loadMore: func() (bool, error) {
			if desc.LoadMoreSelector == "" {
				return false, nil
			}
			btn := page.Locator(desc.LoadMoreSelector).First()
			visible, err := btn.IsVisible()
			if err != nil || !visible {
				return false, err
			}
			if err := btn.Click(); err != nil {
				return false, err
			}
			return true, nil
		},
		wait: browser.RandomDelay,
	}
	return d.exhaust(hooks)
}

func (d *PaginationDriver) exhaust(h pageHooks) error {
	for attempt := 0; attempt < d.MaxAttempts; attempt++ {
		before, err := h.height()
		if err != nil {
			return err
		}

		if err := h.scroll(); err != nil {
			return err
		}
		//let asynchronous rendering catch up
		h.wait(1000, 2000)

		after, err := h.height()
		if err != nil {
			return err
		}
		if after != before {
			continue
		}

		//height stabilized: try the platform's "show more" control
		clicked, err := h.loadMore()
		if err != nil {
			zap.S().Debugw("load-more lookup failed, listing treated as exhausted", "err", err)
			return nil
		}
		if !clicked {
			return nil
		}
		//pagination advances render slower than scroll appends
		h.wait(3000, 5000)
	}
	return nil
}

func contentHeight(page playwright.Page) (int, error) {
	v, err := page.Evaluate("document.body.scrollHeight")
	if err != nil {
		return 0, err
	}
	switch h := v.(type) {
	case int:
		return h, nil
	case float64:
		return int(h), nil
	default:
		return 0, fmt.Errorf("unexpected scrollHeight type %T", v)
	}
}
