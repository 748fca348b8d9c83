package api

import (
	"slices"
	"testing"
)

func TestPaths_DocumentsEveryRoute(t *testing.T) {
	paths, err := Paths()
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	for _, want := range []string{
		"/channels",
		"/channels/categories",
		"/channels/countries",
		"/channels/languages",
		"/channels/{id}",
		"/health",
	} {
		if !slices.Contains(paths, want) {
			t.Errorf("openapi.yaml does not document %s (have %v)", want, paths)
		}
	}
	if !slices.IsSorted(paths) {
		t.Errorf("expected sorted paths, got %v", paths)
	}
}
