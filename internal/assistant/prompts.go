package assistant

import "strings"

const systemPromptTemplate = `You are a strict instructor support assistant for Polaris 2.0.
Your ONLY source of knowledge is the following PDF content and data about the current active learning strategy:
---
CURRENT STRATEGY DATA: {{STRATEGY_JSON}}
---
ALL PDF CONTENT: {{REFERENCE}}
---
RULES:
1. Answer ONLY using information from the content provided above.
2. Short, specific, and actionable responses.
3. Keep answers relevant to the current strategy: {{STRATEGY_ID}}.`

func buildSystemPrompt(strategyJSON, reference, strategyID string) string {
	r := strings.NewReplacer(
		"{{STRATEGY_JSON}}", strategyJSON,
		"{{REFERENCE}}", reference,
		"{{STRATEGY_ID}}", strategyID,
	)
	return r.Replace(systemPromptTemplate)
}
