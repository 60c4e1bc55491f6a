package manifest

import (
	"strings"
	"testing"
)

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile(testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file    string
		desc    string
		keyword string
	}{
		{"invalid-missing-search-root.yaml", "missing required search_root", "required"},
		{"invalid-bad-order.yaml", "unknown order", "enum"},
		{"invalid-unknown-field.yaml", "unknown property", "additionalProperties"},
		{"invalid-bad-default.yaml", "default without type name", "pattern"},
		{"invalid-empty.yaml", "no registries", "minItems"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no %q issue for %s: %+v", tt.keyword, tt.file, result.Issues)
			}
		})
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	_, err := ValidateFile(testPath("invalid-not-yaml.yaml"))
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidate_IssuePaths(t *testing.T) {
	result, err := Validate([]byte("registries:\n  - name: pets\n    contract: subclass\n    search_root: pets\n    loader: dlopen\n"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if result.Issues[0].Path != "/registries/0/loader" {
		t.Errorf("Path = %q, want %q", result.Issues[0].Path, "/registries/0/loader")
	}
	if result.Issues[0].Message == "" {
		t.Error("expected a non-empty message")
	}
}

func TestInvalidErrorMessage(t *testing.T) {
	err := &InvalidError{Path: "productor.yaml", Issues: []ValidationIssue{
		{Path: "/registries/0", Message: "missing property 'search_root'"},
		{Message: "top level"},
	}}
	msg := err.Error()
	for _, want := range []string{"productor.yaml", "2 validation issue", "/registries/0: missing", "top level"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}
