package pageobject

import (
	"context"
	"errors"
	"testing"
)

func TestDefaultGenericsFallback(t *testing.T) {
	generics := DefaultGenerics()

	for _, category := range []string{"Home", "Listing", "Detail", "New"} {
		desc, ok := generics.Fallback(category)
		if !ok {
			t.Errorf("Fallback(%q) not found", category)
			continue
		}
		if desc.Subject() != "" {
			t.Errorf("generic %s descriptor has subject %q, want empty", category, desc.Subject())
		}
	}

	if _, ok := generics.Fallback("Dashboard"); ok {
		t.Error("Fallback(Dashboard) should be unrecognized")
	}
}

func TestGenericSubjectBinding(t *testing.T) {
	generics := DefaultGenerics()
	desc, _ := generics.Fallback("Home")

	page := desc.Instantiate("Island__c", testCaps(nil, nil))
	if page.Subject() != "Island__c" {
		t.Errorf("Subject() = %q, want %q", page.Subject(), "Island__c")
	}
	if page.Category() != "Home" {
		t.Errorf("Category() = %q, want %q", page.Category(), "Home")
	}
}

func TestGenericNavigation(t *testing.T) {
	ctx := context.Background()
	generics := DefaultGenerics()

	cases := []struct {
		category string
		subject  string
		args     []string
		want     string
	}{
		{"Home", "Island__c", nil,
			"https://example.my.site.com/lightning/o/Island__c/home"},
		{"Listing", "Contact", nil,
			"https://example.my.site.com/lightning/o/Contact/list"},
		{"Listing", "Contact", []string{"filter_name=Recent Items"},
			"https://example.my.site.com/lightning/o/Contact/list?filterName=Recent+Items"},
		{"Detail", "Contact", []string{"003000000000001AAA"},
			"https://example.my.site.com/lightning/r/Contact/003000000000001AAA/view"},
		{"New", "Island__c", nil,
			"https://example.my.site.com/lightning/o/Island__c/new"},
	}

	for _, tc := range cases {
		browser := &fakeBrowser{}
		desc, _ := generics.Fallback(tc.category)
		page := desc.Instantiate(tc.subject, testCaps(browser, nil))

		if err := page.Navigate(ctx, tc.args...); err != nil {
			t.Errorf("%s: Navigate() error = %v", tc.category, err)
			continue
		}
		if len(browser.visited) != 1 || browser.visited[0] != tc.want {
			t.Errorf("%s: visited %v, want [%s]", tc.category, browser.visited, tc.want)
		}
	}
}

func TestGenericDetailNavigationRequiresID(t *testing.T) {
	generics := DefaultGenerics()
	desc, _ := generics.Fallback("Detail")
	page := desc.Instantiate("Contact", testCaps(nil, nil))

	if err := page.Navigate(context.Background()); err == nil {
		t.Error("Navigate() without a record id should fail")
	}
}

func TestGenericDetailKeywords(t *testing.T) {
	ctx := context.Background()
	browser := &fakeBrowser{
		location: "https://example.my.site.com/lightning/r/Contact/003000000000001AAA/view",
	}
	api := &fakeAPI{}
	generics := DefaultGenerics()
	desc, _ := generics.Fallback("Detail")
	page := desc.Instantiate("Contact", testCaps(browser, api))

	id, err := page.Invoke(ctx, "Get Current Record Id")
	if err != nil {
		t.Fatalf("Get Current Record Id error = %v", err)
	}
	if id != "003000000000001AAA" {
		t.Errorf("record id = %q, want %q", id, "003000000000001AAA")
	}

	if _, err := page.Invoke(ctx, "Delete Current Record"); err != nil {
		t.Fatalf("Delete Current Record error = %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "Contact/003000000000001AAA" {
		t.Errorf("deleted = %v, want [Contact/003000000000001AAA]", api.deleted)
	}
}

func TestGenericListingOpenItem(t *testing.T) {
	ctx := context.Background()
	browser := &fakeBrowser{}
	generics := DefaultGenerics()
	desc, _ := generics.Fallback("Listing")
	page := desc.Instantiate("Island__c", testCaps(browser, nil))

	if _, err := page.Invoke(ctx, "Open Item", "Kona"); err != nil {
		t.Fatalf("Open Item error = %v", err)
	}
	if len(browser.clicked) != 1 || browser.clicked[0] != `a[title="Kona"]` {
		t.Errorf("clicked %v, want [a[title=\"Kona\"]]", browser.clicked)
	}

	if _, err := page.Invoke(ctx, "Open Item"); err == nil {
		t.Error("Open Item without a label should fail")
	}
}

func TestGenericSharedKeywords(t *testing.T) {
	ctx := context.Background()
	browser := &fakeBrowser{location: "https://example.my.site.com/lightning/o/Contact/list"}
	generics := DefaultGenerics()
	desc, _ := generics.Fallback("Listing")
	page := desc.Instantiate("Contact", testCaps(browser, nil))

	location, err := page.Invoke(ctx, "Current Location")
	if err != nil {
		t.Fatalf("Current Location error = %v", err)
	}
	if location != browser.location {
		t.Errorf("Current Location = %q, want %q", location, browser.location)
	}

	if _, err := page.Invoke(ctx, "Location Should Contain", "/o/Contact/"); err != nil {
		t.Errorf("Location Should Contain failed: %v", err)
	}
	if _, err := page.Invoke(ctx, "Location Should Contain", "/o/Account/"); err == nil {
		t.Error("Location Should Contain should fail for an absent fragment")
	}

	// Navigation is dispatchable as a keyword too.
	if _, err := page.Invoke(ctx, "Go To", "filter_name=Recent Items"); err != nil {
		t.Fatalf("Go To error = %v", err)
	}
	want := "https://example.my.site.com/lightning/o/Contact/list?filterName=Recent+Items"
	if len(browser.visited) != 1 || browser.visited[0] != want {
		t.Errorf("visited %v, want [%s]", browser.visited, want)
	}
}

func TestGenericUnknownKeyword(t *testing.T) {
	generics := DefaultGenerics()
	desc, _ := generics.Fallback("Home")
	page := desc.Instantiate("Contact", testCaps(nil, nil))

	_, err := page.Invoke(context.Background(), "Not A Keyword")
	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("error = %v (%T), want *DispatchError", err, err)
	}
}

func TestGenericSetAdd(t *testing.T) {
	generics := DefaultGenerics()
	generics.Add("Dashboard", "d/{subject}/overview", navigateHome, map[string]Operation{
		"Refresh Widgets": echoOp("refresh"),
	})

	desc, ok := generics.Fallback("Dashboard")
	if !ok {
		t.Fatal("Fallback(Dashboard) not found after Add")
	}
	if !desc.Matches("Sales", "https://example.my.site.com/d/Sales/overview") {
		t.Error("host-added category pattern should match")
	}

	page := desc.Instantiate("Sales", testCaps(nil, nil))
	if _, err := page.Invoke(context.Background(), "refresh widgets"); err != nil {
		t.Errorf("host-added keyword failed: %v", err)
	}
}
