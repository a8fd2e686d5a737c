package models

import "testing"

func TestDefaultBreedPagesCoverAllSlugs(t *testing.T) {
	pages := DefaultBreedPages()
	for _, slug := range DefaultBreedSlugs {
		page, ok := pages[slug]
		if !ok {
			t.Errorf("missing default page for %q", slug)
			continue
		}
		if page.ID != slug {
			t.Errorf("page ID %q does not match slug %q", page.ID, slug)
		}
		if page.Title == "" || page.Description == "" {
			t.Errorf("default page %q has empty content", slug)
		}
	}
}

func TestDefaultSettingsHaveSiteTitle(t *testing.T) {
	if DefaultSettings().Get("site_title", "") == "" {
		t.Error("default settings must name the site")
	}
}

func TestSettingsMergeKeepsExistingKeys(t *testing.T) {
	base := Settings{"a": "1", "b": "2"}
	merged := base.Merge(Settings{"b": "changed", "c": "3"})

	if merged.Get("a", "") != "1" || merged.Get("b", "") != "changed" || merged.Get("c", "") != "3" {
		t.Errorf("merge result: %v", merged)
	}

	if base.Get("b", "") != "2" {
		t.Error("merge must not modify the receiver")
	}

	if base.Get("missing", "fallback") != "fallback" {
		t.Error("Get must return the fallback for absent keys")
	}
}
