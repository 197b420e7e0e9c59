package domain

import (
	"errors"
	"testing"
)

func TestPermissionContextValidate(t *testing.T) {
	valid := PermissionContext{UserID: "user-1", TenantID: "tenant-1", Role: RoleAdmin}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := PermissionContext{TenantID: "tenant-1", Role: RoleAdmin}
	if !errors.Is(missing.Validate(), ErrUnauthorized) {
		t.Error("expected ErrUnauthorized for missing user id")
	}

	missing = PermissionContext{UserID: "user-1", Role: RoleAdmin}
	if !errors.Is(missing.Validate(), ErrUnauthorized) {
		t.Error("expected ErrUnauthorized for missing tenant id")
	}

	badRole := PermissionContext{UserID: "user-1", TenantID: "tenant-1", Role: "superuser"}
	if !errors.Is(badRole.Validate(), ErrUnknownRole) {
		t.Error("expected ErrUnknownRole for undefined role")
	}
}

func TestSearchRequestNormalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		req := SearchRequest{Query: "fraud"}
		if err := req.Normalize(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Limit != DefaultResultLimit {
			t.Errorf("expected default limit %d, got %d", DefaultResultLimit, req.Limit)
		}
		if len(req.EntityTypes) != len(AllEntityTypes()) {
			t.Errorf("expected all entity types, got %v", req.EntityTypes)
		}
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		req := SearchRequest{Limit: -1}
		if !errors.Is(req.Normalize(), ErrInvalidLimit) {
			t.Error("expected ErrInvalidLimit")
		}
	})

	t.Run("limit capped", func(t *testing.T) {
		req := SearchRequest{Limit: 10000}
		if err := req.Normalize(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.Limit != MaxResultLimit {
			t.Errorf("expected limit capped at %d, got %d", MaxResultLimit, req.Limit)
		}
	})

	t.Run("unknown entity type rejected", func(t *testing.T) {
		req := SearchRequest{EntityTypes: []EntityType{EntityTypeCase, "widgets"}}
		if !errors.Is(req.Normalize(), ErrUnknownEntityType) {
			t.Error("expected ErrUnknownEntityType")
		}
	})

	t.Run("duplicates removed, order preserved", func(t *testing.T) {
		req := SearchRequest{EntityTypes: []EntityType{EntityTypePolicy, EntityTypeCase, EntityTypePolicy}}
		if err := req.Normalize(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []EntityType{EntityTypePolicy, EntityTypeCase}
		if len(req.EntityTypes) != len(want) {
			t.Fatalf("expected %v, got %v", want, req.EntityTypes)
		}
		for i := range want {
			if req.EntityTypes[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], req.EntityTypes[i])
			}
		}
	})
}

func TestSearchRequestMatchAll(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		req := SearchRequest{Query: q}
		if !req.MatchAll() {
			t.Errorf("expected %q to be match-all", q)
		}
	}
	req := SearchRequest{Query: "fraud"}
	if req.MatchAll() {
		t.Error("expected non-blank query not to be match-all")
	}
}

func TestEmptyResult(t *testing.T) {
	res := EmptyResult(EntityTypeCase, CauseIndexMissing)
	if res.EntityType != EntityTypeCase {
		t.Errorf("expected entity type cases, got %s", res.EntityType)
	}
	if res.AuthorizedCount != 0 {
		t.Errorf("expected zero count, got %d", res.AuthorizedCount)
	}
	if res.Hits == nil || len(res.Hits) != 0 {
		t.Errorf("expected empty non-nil hits, got %v", res.Hits)
	}
	if res.Cause != CauseIndexMissing {
		t.Errorf("expected cause index_missing, got %s", res.Cause)
	}
}
