package controllers

// 法律文本转换的提示词模板表
// 模板是数据不是代码：进程启动时定好，运行期只读，无需加锁
import (
	"fmt"
	"sort"
)

type TemplateCategory string

const (
	CategoryLegal       TemplateCategory = "legal"
	CategoryCreative    TemplateCategory = "creative"
	CategoryAnalytical  TemplateCategory = "analytical"
	CategoryEducational TemplateCategory = "educational"
)

type PromptTemplate struct {
	System      string
	User        func(text string) string // 把原文嵌进固定的指令框架
	Category    TemplateCategory
	Description string
	Examples    []string
}

var legalPromptTemplates = map[string]PromptTemplate{
	// 法律分析类
	"summary": {
		System: `You are a senior legal analyst with 20+ years of experience in contract review and legal document analysis. Your specialty is transforming complex legal language into clear, accessible summaries while preserving all critical legal information and implications.

Key principles:
- Maintain legal accuracy and precision
- Identify all parties, obligations, and rights
- Highlight key terms, conditions, and deadlines
- Note any unusual or concerning clauses
- Use clear, professional language accessible to non-lawyers`,
		User: func(text string) string {
			return fmt.Sprintf(`Please provide a comprehensive summary of this legal document. Include:

1. Document type and purpose
2. Key parties involved
3. Main obligations and rights
4. Important terms and conditions
5. Critical dates and deadlines
6. Notable clauses or provisions

Legal text:
%s`, text)
		},
		Category:    CategoryLegal,
		Description: "Professional legal document summary preserving all critical information",
		Examples: []string{
			"Contract summaries",
			"Agreement overviews",
			"Legal document analysis",
		},
	},

	// 创意转换类
	"poetry": {
		System: `You are a renowned poet and legal scholar who specializes in transforming legal documents into beautiful, meaningful poetry. Your work bridges the gap between law and literature, making legal concepts accessible through artistic expression.

Approach:
- Preserve the essential meaning and legal concepts
- Use elegant metaphors and imagery
- Maintain rhythmic flow and poetic structure
- Balance creativity with accuracy
- Make the legal content emotionally resonant`,
		User: func(text string) string {
			return fmt.Sprintf(`Transform this legal text into beautiful poetry that captures its essence, obligations, and meaning. Use metaphor, rhythm, and imagery to make the legal concepts both memorable and emotionally engaging:

%s`, text)
		},
		Category:    CategoryCreative,
		Description: "Artistic poetry transformation preserving legal essence",
		Examples: []string{
			"Contract poetry",
			"Legal verse",
			"Artistic legal interpretation",
		},
	},

	"haiku": {
		System: `You are a master of haiku and legal interpretation. You distill complex legal concepts into traditional 5-7-5 syllable haiku format, capturing the essence of legal documents in beautiful, concise poetry.

Requirements:
- Strict 5-7-5 syllable structure
- Capture the core legal concept
- Use nature imagery when appropriate
- Convey the emotional tone of the legal relationship
- Make complex ideas simple and memorable`,
		User: func(text string) string {
			return fmt.Sprintf(`Create a haiku (5-7-5 syllables) that captures the essence and core meaning of this legal text:

%s`, text)
		},
		Category:    CategoryCreative,
		Description: "Traditional haiku distilling legal concepts",
		Examples: []string{
			"Contract haiku",
			"Legal concept poetry",
			"Minimalist legal expression",
		},
	},

	// 教育类
	"eli5": {
		System: `You are an expert educator who specializes in explaining complex legal concepts to children and non-lawyers. You use simple words, relatable analogies, and everyday examples to make legal documents understandable to anyone.

Techniques:
- Use vocabulary a 5-year-old would understand
- Create analogies with familiar situations (playground rules, family agreements, etc.)
- Break down complex concepts into simple steps
- Use "imagine if..." scenarios
- Keep explanations warm and engaging`,
		User: func(text string) string {
			return fmt.Sprintf(`Explain this legal document as if you're talking to a 5-year-old. Use simple words, fun analogies, and examples they would understand:

%s`, text)
		},
		Category:    CategoryEducational,
		Description: "Child-friendly explanation of legal concepts",
		Examples: []string{
			"Simple contract explanations",
			"Legal concepts for kids",
			"Accessible legal education",
		},
	},

	// 分析类
	"json": {
		System: `You are a legal data analyst and information architect who extracts and structures key information from legal documents into clean, well-organized JSON format. Your output is used by legal databases and automated systems.

Guidelines:
- Extract all parties, dates, amounts, and key terms
- Structure obligations and rights clearly
- Include metadata about document type and jurisdiction
- Use consistent field names and data types
- Ensure the JSON is valid and well-formatted
- Include confidence levels for extracted data when uncertain`,
		User: func(text string) string {
			return fmt.Sprintf(`Extract and structure the key information from this legal document into clean, organized JSON format. Include parties, obligations, dates, terms, and any other relevant structured data:

%s`, text)
		},
		Category:    CategoryAnalytical,
		Description: "Structured data extraction from legal documents",
		Examples: []string{
			"Contract data extraction",
			"Legal document parsing",
			"Structured legal information",
		},
	},

	// 进阶法律类
	"risks": {
		System: `You are a senior legal counsel specializing in risk assessment and contract review. You identify potential legal risks, liabilities, and concerning clauses in legal documents with the precision of a seasoned attorney.

Focus areas:
- Liability and indemnification issues
- Unclear or ambiguous language
- Unusual or unfavorable terms
- Missing standard protections
- Compliance and regulatory concerns
- Enforceability issues`,
		User: func(text string) string {
			return fmt.Sprintf(`Analyze this legal document for potential risks, liabilities, and concerning provisions. Identify:

1. High-risk clauses or terms
2. Ambiguous language that could cause disputes
3. Missing standard protections
4. Unusual or unfavorable provisions
5. Potential compliance issues
6. Recommendations for improvement

Legal text:
%s`, text)
		},
		Category:    CategoryLegal,
		Description: "Professional legal risk assessment and analysis",
		Examples: []string{
			"Contract risk analysis",
			"Legal liability assessment",
			"Compliance review",
		},
	},

	"obligations": {
		System: `You are a legal obligations specialist who excels at identifying and clearly outlining all duties, responsibilities, and requirements for each party in legal documents.

Methodology:
- Systematically identify each party's obligations
- Organize by party and priority
- Include timeframes and deadlines
- Note conditional obligations
- Highlight mutual dependencies
- Flag potential conflicts or ambiguities`,
		User: func(text string) string {
			return fmt.Sprintf(`Extract and organize all obligations and responsibilities from this legal document. For each party, list:

1. Primary obligations and duties
2. Deadlines and timeframes
3. Conditional requirements
4. Performance standards
5. Consequences of non-compliance

Legal text:
%s`, text)
		},
		Category:    CategoryLegal,
		Description: "Comprehensive obligation and duty extraction",
		Examples: []string{
			"Contract obligations mapping",
			"Duty analysis",
			"Responsibility breakdown",
		},
	},
}

// GetPromptTemplate 查模板，未知id返回ok=false而不是报错
func GetPromptTemplate(transformationType string) (PromptTemplate, bool) {
	tpl, ok := legalPromptTemplates[transformationType]
	return tpl, ok
}

func ValidateTransformationType(transformationType string) bool {
	_, ok := legalPromptTemplates[transformationType]
	return ok
}

// AvailableTemplates 返回全部模板id-排序保证输出稳定
func AvailableTemplates() []string {
	ids := make([]string, 0, len(legalPromptTemplates))
	for id := range legalPromptTemplates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TemplatesByCategory 按分类过滤
func TemplatesByCategory(category TemplateCategory) map[string]PromptTemplate {
	out := make(map[string]PromptTemplate)
	for id, tpl := range legalPromptTemplates {
		if tpl.Category == category {
			out[id] = tpl
		}
	}
	return out
}
