package domain

import "testing"

func TestExcludedFieldsElevatedRolesSeeEverything(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleComplianceOfficer} {
		ctx := PermissionContext{UserID: "u", TenantID: "t", Role: role}
		for _, et := range AllEntityTypes() {
			if fields := ExcludedFields(ctx, et); len(fields) != 0 {
				t.Errorf("%s/%s: expected no exclusions, got %v", role, et, fields)
			}
		}
	}
}

func TestExcludedFieldsNonElevated(t *testing.T) {
	ctx := PermissionContext{UserID: "u", TenantID: "t", Role: RoleInvestigator}

	caseFields := ExcludedFields(ctx, EntityTypeCase)
	if len(caseFields) == 0 {
		t.Fatal("expected reporter fields excluded on cases")
	}
	want := map[string]bool{
		"reporter.name":  true,
		"reporter.email": true,
		"reporter.phone": true,
	}
	for _, f := range caseFields {
		if !want[f] {
			t.Errorf("unexpected exclusion %q", f)
		}
		delete(want, f)
	}
	if len(want) != 0 {
		t.Errorf("missing exclusions: %v", want)
	}

	// Policies carry no sensitive fields for any role.
	if fields := ExcludedFields(ctx, EntityTypePolicy); len(fields) != 0 {
		t.Errorf("policies: expected no exclusions, got %v", fields)
	}
}

func TestExcludedFieldsReturnsCopy(t *testing.T) {
	ctx := PermissionContext{UserID: "u", TenantID: "t", Role: RoleEmployee}
	first := ExcludedFields(ctx, EntityTypeInteraction)
	if len(first) == 0 {
		t.Fatal("expected exclusions for interactions")
	}
	first[0] = "mutated"
	second := ExcludedFields(ctx, EntityTypeInteraction)
	if second[0] == "mutated" {
		t.Error("caller mutation leaked into the registry")
	}
}
