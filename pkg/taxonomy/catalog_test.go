package taxonomy

import (
	"context"
	"testing"
)

func TestCatalog_EveryCategoryHasDisplayMetadata(t *testing.T) {
	for _, c := range All() {
		t.Run(string(c), func(t *testing.T) {
			info, ok := Lookup(c)
			if !ok {
				t.Fatalf("Expected catalog entry for %s", c)
			}
			if info.Title == "" {
				t.Error("Expected non-empty title")
			}
			if info.Message == "" {
				t.Error("Expected non-empty message")
			}
			if len(info.Remedies) == 0 {
				t.Error("Expected at least one remedy")
			}
			for i, r := range info.Remedies {
				if r == "" {
					t.Errorf("Remedy %d is empty", i)
				}
			}
			if info.Severity != c.Severity() {
				t.Errorf("Expected severity %s, got %s", c.Severity(), info.Severity)
			}
			if info.Category != c {
				t.Errorf("Expected category %s, got %s", c, info.Category)
			}
		})
	}
}

func TestCatalog_NoOrphanEntries(t *testing.T) {
	if len(catalog) != len(order) {
		t.Errorf("Expected %d catalog entries, got %d", len(order), len(catalog))
	}
	if len(traits) != len(order) {
		t.Errorf("Expected %d trait entries, got %d", len(order), len(traits))
	}
	seen := make(map[ErrorCategory]bool)
	for _, c := range order {
		if seen[c] {
			t.Errorf("Category %s listed twice", c)
		}
		seen[c] = true
	}
}

func TestCatalog_OrderMatchesAll(t *testing.T) {
	infos := Catalog()
	all := All()
	if len(infos) != len(all) {
		t.Fatalf("Expected %d entries, got %d", len(all), len(infos))
	}
	for i := range all {
		if infos[i].Category != all[i] {
			t.Errorf("Entry %d: expected %s, got %s", i, all[i], infos[i].Category)
		}
	}
}

func TestLookup_ReturnsCopyOfRemedies(t *testing.T) {
	info, _ := Lookup(TooDark)
	info.Remedies[0] = "mutated"

	again, _ := Lookup(TooDark)
	if again.Remedies[0] == "mutated" {
		t.Error("Expected catalog remedies to be isolated from callers")
	}
}

func TestMustLookup_FallsBackToUnknown(t *testing.T) {
	info := MustLookup(ErrorCategory("NOT_A_CATEGORY"))
	if info.Category != UnknownError {
		t.Errorf("Expected fallback to %s, got %s", UnknownError, info.Category)
	}
}

func TestSeverities(t *testing.T) {
	testCases := []struct {
		category ErrorCategory
		severity Severity
		group    Group
	}{
		{NoFaceDetected, SeverityError, GroupFace},
		{FaceTooTilted, SeverityWarning, GroupFace},
		{TooDark, SeverityError, GroupLighting},
		{HarshShadows, SeverityWarning, GroupLighting},
		{ImageBlurry, SeverityError, GroupQuality},
		{TooFar, SeverityWarning, GroupDistance},
		{MaskDetected, SeverityError, GroupObstruction},
		{ProcessingError, SeverityError, GroupTechnical},
		{UnknownError, SeverityInfo, GroupUnknown},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			if got := tc.category.Severity(); got != tc.severity {
				t.Errorf("Expected severity %s, got %s", tc.severity, got)
			}
			if got := tc.category.Group(); got != tc.group {
				t.Errorf("Expected group %s, got %s", tc.group, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if c, ok := Parse("TOO_BRIGHT"); !ok || c != TooBright {
		t.Errorf("Expected TOO_BRIGHT to parse, got %q ok=%v", c, ok)
	}
	if _, ok := Parse("too_bright"); ok {
		t.Error("Expected lower-case wire name to be rejected")
	}
}

func TestCatalog_KoreanCopyIsComplete(t *testing.T) {
	if len(catalogKo) != len(order) {
		t.Errorf("Expected %d Korean entries, got %d", len(order), len(catalogKo))
	}

	for _, c := range All() {
		t.Run(string(c), func(t *testing.T) {
			ko, ok := LookupLocale(c, Korean)
			if !ok {
				t.Fatalf("Expected Korean entry for %s", c)
			}
			en, _ := Lookup(c)
			if ko.Title == "" || ko.Message == "" || len(ko.Remedies) == 0 {
				t.Errorf("Expected complete Korean copy, got %+v", ko)
			}
			if ko.Title == en.Title {
				t.Errorf("Expected Korean title to differ from English %q", en.Title)
			}
			if ko.Severity != en.Severity || ko.Category != en.Category {
				t.Errorf("Expected same category and severity, got %+v vs %+v", ko, en)
			}
		})
	}
}

func TestCatalogLocale(t *testing.T) {
	infos := CatalogLocale(Korean)
	if len(infos) != len(All()) {
		t.Fatalf("Expected %d entries, got %d", len(All()), len(infos))
	}
	if infos[0].Title != catalogKo[order[0]].title {
		t.Errorf("Expected Korean title, got %q", infos[0].Title)
	}

	if info := MustLookupLocale(ErrorCategory("NOPE"), Korean); info.Title != catalogKo[UnknownError].title {
		t.Errorf("Expected Korean fallback title, got %q", info.Title)
	}
}

func TestMatchLocale(t *testing.T) {
	testCases := []struct {
		name     string
		prefs    []string
		expected Locale
	}{
		{"No preference", nil, English},
		{"Empty values", []string{"", ""}, English},
		{"Korean tag", []string{"ko"}, Korean},
		{"Korean region", []string{"ko-KR"}, Korean},
		{"Accept-Language header", []string{"", "ko-KR,ko;q=0.9,en-US;q=0.8"}, Korean},
		{"English header", []string{"en-US,en;q=0.9"}, English},
		{"Unsupported language", []string{"fr-FR"}, English},
		{"Earlier value wins", []string{"en", "ko"}, English},
		{"Malformed value skipped", []string{"!!", "ko"}, Korean},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchLocale(tc.prefs...); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestLocaleContext(t *testing.T) {
	if got := LocaleFromContext(context.Background()); got != English {
		t.Errorf("Expected default %s, got %s", English, got)
	}
	ctx := ContextWithLocale(context.Background(), Korean)
	if got := LocaleFromContext(ctx); got != Korean {
		t.Errorf("Expected %s, got %s", Korean, got)
	}
}
