package controllers

// 模板目录接口-给前端展示可选的转换类型
import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type TemplateInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Examples    []string `json:"examples"`
}

func templateInfo(id string, tpl PromptTemplate) TemplateInfo {
	examples := tpl.Examples
	if examples == nil {
		examples = []string{}
	}
	return TemplateInfo{
		ID:          id,
		Name:        strings.ToUpper(id[:1]) + id[1:], // 首字母大写当显示名
		Description: tpl.Description,
		Category:    string(tpl.Category),
		Examples:    examples,
	}
}

// GetTemplates godoc
// @Summary     列出全部提示词模板
// @Description 可选category参数过滤，不传时返回按分类分组的全量模板
// @Tags        AI
// @Produce     json
// @Param       category  query  string  false  "模板分类"  Enums(legal, creative, analytical, educational)
// @Success     200  {object}  map[string]interface{}
// @Router      /api/ai/templates [get]
func GetTemplates(c *gin.Context) {
	category := c.Query("category")

	if category != "" {
		filtered := TemplatesByCategory(TemplateCategory(category))
		infos := make([]TemplateInfo, 0, len(filtered))
		for _, id := range AvailableTemplates() { //按排好的id序输出
			if tpl, ok := filtered[id]; ok {
				infos = append(infos, templateInfo(id, tpl))
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"category":  category,
			"templates": infos,
		})
		return
	}

	infos := make([]TemplateInfo, 0, len(legalPromptTemplates))
	grouped := make(map[string][]TemplateInfo)
	for _, id := range AvailableTemplates() {
		info := templateInfo(id, legalPromptTemplates[id])
		infos = append(infos, info)
		grouped[info.Category] = append(grouped[info.Category], info)
	}
	categories := make([]string, 0, len(grouped))
	for cat := range grouped {
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"templates":        infos,
		"groupedTemplates": grouped,
		"categories":       categories,
	})
}
