package runner

import (
	"context"
	"testing"

	"github.com/entrhq/pagekit/pkg/capability"
	"github.com/entrhq/pagekit/pkg/pageobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBrowser struct {
	location string
	visited  []string
}

func (b *stubBrowser) CurrentLocation(ctx context.Context) (string, error) { return b.location, nil }

func (b *stubBrowser) GoTo(ctx context.Context, url string) error {
	b.visited = append(b.visited, url)
	b.location = url
	return nil
}

func (b *stubBrowser) Click(ctx context.Context, selector string) error        { return nil }
func (b *stubBrowser) Fill(ctx context.Context, selector, value string) error  { return nil }
func (b *stubBrowser) WaitFor(ctx context.Context, selector string) error      { return nil }
func (b *stubBrowser) Text(ctx context.Context, selector string) (string, error) { return "", nil }

func newBoundRunner(t *testing.T) (*Runner, *stubBrowser) {
	t.Helper()

	browser := &stubBrowser{}
	host := New(nil)
	lib := pageobject.New(capability.Set{
		Host:    host,
		Browser: browser,
		BaseURL: "https://example.my.site.com",
	})
	host.Bind(lib)
	return host, browser
}

func TestRunnerRunKeyword(t *testing.T) {
	host, browser := newBoundRunner(t)

	_, err := host.RunKeyword(context.Background(), "Go To Page", "Home", "Contact")
	require.NoError(t, err)
	assert.Equal(t, "https://example.my.site.com/lightning/o/Contact/home", browser.location)
}

func TestRunnerUnbound(t *testing.T) {
	host := New(nil)

	_, err := host.RunKeyword(context.Background(), "Go To Page", "Home", "Contact")
	assert.Error(t, err)

	_, err = host.Run(context.Background(), &Suite{Name: "s", Steps: []Step{{Keyword: "k"}}})
	assert.Error(t, err)
}

func TestRunnerContinuesPastFailures(t *testing.T) {
	host, browser := newBoundRunner(t)

	suite := &Suite{
		Name: "island smoke",
		Steps: []Step{
			{Keyword: "Go To Page", Args: []string{"Listing", "Island__c"}},
			{Keyword: "No Such Keyword"},
			{Keyword: "Current Page Should Be", Args: []string{"Listing", "Island__c"}},
		},
	}

	result, err := host.Run(context.Background(), suite)
	require.NoError(t, err)
	assert.Equal(t, "island smoke", result.Suite)
	assert.Len(t, result.Steps, 3)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.OK())

	// The failing middle step did not stop the run.
	assert.NoError(t, result.Steps[0].Err)
	assert.Error(t, result.Steps[1].Err)
	assert.NoError(t, result.Steps[2].Err)
	assert.Equal(t, "https://example.my.site.com/lightning/o/Island__c/list", browser.location)
}

func TestRunnerAllPassing(t *testing.T) {
	host, _ := newBoundRunner(t)

	suite := &Suite{
		Name: "smoke",
		Steps: []Step{
			{Keyword: "Go To Page", Args: []string{"Home", "Contact"}},
			{Keyword: "Current Page Should Be", Args: []string{"Home", "Contact"}},
		},
	}

	result, err := host.Run(context.Background(), suite)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 0, result.Failed)
}

func TestRunnerStopsOnCanceledContext(t *testing.T) {
	host, _ := newBoundRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite := &Suite{
		Name:  "canceled",
		Steps: []Step{{Keyword: "Go To Page", Args: []string{"Home", "Contact"}}},
	}

	result, err := host.Run(ctx, suite)
	require.Error(t, err)
	assert.Empty(t, result.Steps)
}
