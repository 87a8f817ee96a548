package controllers

import (
	"strings"
	"testing"
)

func TestRenderedPromptContainsInput(t *testing.T) {
	input := "Tenant shall pay rent monthly."
	for _, id := range AvailableTemplates() {
		tpl, ok := GetPromptTemplate(id)
		if !ok {
			t.Fatalf("AvailableTemplates returned unknown id %q", id)
		}
		rendered := tpl.User(input)
		if !strings.Contains(rendered, input) {
			t.Fatalf("template %q: rendered prompt does not contain input text", id)
		}
		if tpl.System == "" {
			t.Fatalf("template %q has empty system prompt", id)
		}
		if tpl.Description == "" {
			t.Fatalf("template %q has empty description", id)
		}
	}
}

func TestGetPromptTemplateUnknown(t *testing.T) {
	if _, ok := GetPromptTemplate("does-not-exist"); ok {
		t.Fatal("unknown template id reported as found")
	}
	if ValidateTransformationType("does-not-exist") {
		t.Fatal("unknown template id validated")
	}
	if !ValidateTransformationType("haiku") {
		t.Fatal("known template id rejected")
	}
}

func TestAvailableTemplatesStable(t *testing.T) {
	first := AvailableTemplates()
	second := AvailableTemplates()
	if len(first) != len(second) {
		t.Fatal("template list length changed between calls")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("template list order is not stable")
		}
	}
	// 七个内置模板都在
	want := []string{"eli5", "haiku", "json", "obligations", "poetry", "risks", "summary"}
	if len(first) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(first))
	}
	for i, id := range want {
		if first[i] != id {
			t.Fatalf("template list[%d] = %q, want %q", i, first[i], id)
		}
	}
}

func TestTemplatesByCategory(t *testing.T) {
	legal := TemplatesByCategory(CategoryLegal)
	for _, id := range []string{"summary", "risks", "obligations"} {
		if _, ok := legal[id]; !ok {
			t.Fatalf("legal category missing %q", id)
		}
	}
	if _, ok := legal["haiku"]; ok {
		t.Fatal("haiku listed under legal category")
	}
	if len(TemplatesByCategory("nonsense")) != 0 {
		t.Fatal("unknown category returned templates")
	}
}
