package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func templatesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/ai/templates", GetTemplates)
	return r
}

func TestGetTemplatesGrouped(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ai/templates", nil)
	templatesRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Success          bool                      `json:"success"`
		Templates        []TemplateInfo            `json:"templates"`
		GroupedTemplates map[string][]TemplateInfo `json:"groupedTemplates"`
		Categories       []string                  `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false")
	}
	if len(resp.Templates) != len(AvailableTemplates()) {
		t.Fatalf("templates count = %d", len(resp.Templates))
	}
	if len(resp.GroupedTemplates["legal"]) != 3 {
		t.Fatalf("legal group size = %d", len(resp.GroupedTemplates["legal"]))
	}
	if len(resp.Categories) != 4 {
		t.Fatalf("categories = %v", resp.Categories)
	}
}

func TestGetTemplatesByCategory(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ai/templates?category=creative", nil)
	templatesRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Success   bool           `json:"success"`
		Category  string         `json:"category"`
		Templates []TemplateInfo `json:"templates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Category != "creative" {
		t.Fatalf("category = %q", resp.Category)
	}
	if len(resp.Templates) != 2 { // haiku和poetry
		t.Fatalf("creative templates = %d", len(resp.Templates))
	}
	for _, tpl := range resp.Templates {
		if tpl.Category != "creative" {
			t.Fatalf("template %q has category %q", tpl.ID, tpl.Category)
		}
		if tpl.Name == "" || tpl.Description == "" {
			t.Fatalf("template %q missing metadata", tpl.ID)
		}
	}
}

func TestGetTemplatesUnknownCategory(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ai/templates?category=bogus", nil)
	templatesRouter().ServeHTTP(w, req)

	// 未知分类不是错误，返回空列表
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Templates []TemplateInfo `json:"templates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Templates) != 0 {
		t.Fatalf("bogus category returned %d templates", len(resp.Templates))
	}
}
