package pageobject

import (
	"context"
	"fmt"

	"github.com/entrhq/pagekit/pkg/capability"
)

// fakeBrowser records navigation and interaction calls and serves a
// scripted current location.
type fakeBrowser struct {
	location string
	locErr   error
	visited  []string
	clicked  []string
	filled   map[string]string
	text     string
}

func (b *fakeBrowser) CurrentLocation(ctx context.Context) (string, error) {
	if b.locErr != nil {
		return "", b.locErr
	}
	return b.location, nil
}

func (b *fakeBrowser) GoTo(ctx context.Context, url string) error {
	b.visited = append(b.visited, url)
	b.location = url
	return nil
}

func (b *fakeBrowser) Click(ctx context.Context, selector string) error {
	b.clicked = append(b.clicked, selector)
	return nil
}

func (b *fakeBrowser) Fill(ctx context.Context, selector, value string) error {
	if b.filled == nil {
		b.filled = make(map[string]string)
	}
	b.filled[selector] = value
	return nil
}

func (b *fakeBrowser) WaitFor(ctx context.Context, selector string) error { return nil }

func (b *fakeBrowser) Text(ctx context.Context, selector string) (string, error) {
	return b.text, nil
}

// fakeAPI records CRUD calls.
type fakeAPI struct {
	created []string
	deleted []string
	err     error
}

func (a *fakeAPI) CreateRecord(ctx context.Context, recordType string, fields map[string]any) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.created = append(a.created, recordType)
	return "001ABCDEFGHIJKLMNO", nil
}

func (a *fakeAPI) GetRecord(ctx context.Context, recordType, id string) (map[string]any, error) {
	if a.err != nil {
		return nil, a.err
	}
	return map[string]any{"Id": id}, nil
}

func (a *fakeAPI) UpdateRecord(ctx context.Context, recordType, id string, fields map[string]any) error {
	return a.err
}

func (a *fakeAPI) DeleteRecord(ctx context.Context, recordType, id string) error {
	if a.err != nil {
		return a.err
	}
	a.deleted = append(a.deleted, recordType+"/"+id)
	return nil
}

// fakeHost records keyword callbacks from page objects.
type fakeHost struct {
	calls []string
}

func (h *fakeHost) RunKeyword(ctx context.Context, name string, args ...string) (string, error) {
	h.calls = append(h.calls, name)
	return "", nil
}

func testCaps(browser *fakeBrowser, api *fakeAPI) capability.Set {
	if browser == nil {
		browser = &fakeBrowser{}
	}
	if api == nil {
		api = &fakeAPI{}
	}
	return capability.Set{
		Host:    &fakeHost{},
		API:     api,
		Browser: browser,
		BaseURL: "https://example.my.site.com",
	}
}

// echoOp returns a keyword that reports its invocation and arguments.
func echoOp(name string) Operation {
	return func(ctx context.Context, page *PageObject, args ...string) (string, error) {
		return fmt.Sprintf("%s(%v)", name, args), nil
	}
}
