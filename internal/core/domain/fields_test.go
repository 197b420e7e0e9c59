package domain

import "testing"

func TestSearchFieldsCoverAllEntityTypes(t *testing.T) {
	for _, et := range AllEntityTypes() {
		fields := SearchFields(et, false)
		if len(fields) == 0 {
			t.Errorf("%s: expected search fields", et)
		}
		for _, f := range fields {
			if f.Path == "" || f.Weight <= 0 {
				t.Errorf("%s: invalid field %+v", et, f)
			}
		}
	}
}

func TestSearchFieldsCustomGroup(t *testing.T) {
	base := SearchFields(EntityTypeCase, false)
	withCustom := SearchFields(EntityTypeCase, true)

	if len(withCustom) != len(base)+1 {
		t.Fatalf("expected one extra field, got %d vs %d", len(withCustom), len(base))
	}
	last := withCustom[len(withCustom)-1]
	if last.Path != CustomFieldsGroup {
		t.Errorf("expected custom group appended, got %q", last.Path)
	}

	// The registry itself must not be mutated by the append.
	again := SearchFields(EntityTypeCase, false)
	if len(again) != len(base) {
		t.Errorf("registry mutated: %d fields, expected %d", len(again), len(base))
	}
}

func TestHighlightFields(t *testing.T) {
	for _, et := range AllEntityTypes() {
		fields := HighlightFields(et)
		if len(fields) == 0 {
			t.Errorf("%s: expected highlight fields", et)
		}
		for _, f := range fields {
			if f.FragmentSize <= 0 || f.MaxFragments <= 0 {
				t.Errorf("%s: invalid highlight field %+v", et, f)
			}
		}
	}
}

func TestSuggestField(t *testing.T) {
	tests := map[EntityType]string{
		EntityTypeCase:          "summary",
		EntityTypeInvestigation: "title",
		EntityTypeDisclosure:    "title",
		EntityTypePolicy:        "title",
		EntityTypeCampaign:      "name",
		EntityTypeInteraction:   "summary",
	}
	for et, want := range tests {
		if got := SuggestField(et); got != want {
			t.Errorf("%s: expected %q, got %q", et, want, got)
		}
	}
}
