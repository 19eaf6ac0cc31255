// Package browser implements the browser automation capability on top
// of Playwright. One Driver owns one browser, context and page for the
// duration of a suite run.
package browser

import (
	"context"
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
)

// Default driver settings.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultTimeout        = 30000.0 // milliseconds
)

// Options configures a Driver launch.
type Options struct {
	Headless bool
	Timeout  float64 // milliseconds, 0 means DefaultTimeout
	Viewport *Viewport
}

// Viewport is the browser window size.
type Viewport struct {
	Width  int
	Height int
}

// Driver is a live browser session. It implements capability.Browser.
// All timeout policy lives here; keyword code treats every call as
// blocking.
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
}

// Launch installs Playwright if needed, starts it, and opens a browser
// page ready for navigation.
func Launch(opts Options) (*Driver, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(opts.Timeout)

	return &Driver{pw: pw, browser: b, bctx: bctx, page: page}, nil
}

// CurrentLocation returns the page's current URL.
func (d *Driver) CurrentLocation(ctx context.Context) (string, error) {
	return d.page.URL(), nil
}

// GoTo navigates to the URL and waits for the load event.
func (d *Driver) GoTo(ctx context.Context, url string) error {
	waitUntil := playwright.WaitUntilStateLoad
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{WaitUntil: waitUntil}); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Click clicks the first element matching the selector.
func (d *Driver) Click(ctx context.Context, selector string) error {
	if err := d.page.Click(selector, playwright.PageClickOptions{}); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Fill sets the value of the input matching the selector.
func (d *Driver) Fill(ctx context.Context, selector, value string) error {
	if err := d.page.Fill(selector, value, playwright.PageFillOptions{}); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// WaitFor blocks until an element matching the selector is visible.
func (d *Driver) WaitFor(ctx context.Context, selector string) error {
	state := playwright.WaitForSelectorStateVisible
	if _, err := d.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State: state,
	}); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

// Text returns the visible text of the element matching the selector,
// or of the whole document when selector is empty.
func (d *Driver) Text(ctx context.Context, selector string) (string, error) {
	if selector == "" {
		content, err := d.page.Content()
		if err != nil {
			return "", fmt.Errorf("content extraction failed: %w", err)
		}
		return ExtractText(content)
	}

	element, err := d.page.QuerySelector(selector)
	if err != nil {
		return "", fmt.Errorf("selector query failed: %w", err)
	}
	if element == nil {
		return "", fmt.Errorf("no element found matching selector: %s", selector)
	}
	text, err := element.TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

// Close shuts down the page, context, browser and Playwright itself.
func (d *Driver) Close() error {
	_ = d.page.Close() // continue cleanup on error
	_ = d.bctx.Close()
	_ = d.browser.Close()
	if err := d.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
