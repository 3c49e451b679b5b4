package analyzer

import "fmt"

// analysisSystemPrompt frames the model as a contract reviewer that always
// responds with JSON.
const analysisSystemPrompt = "You are an experienced legal advisor. You analyze contracts in detail and identify critical points. You always respond in JSON format."

// analysisPromptTemplate embeds the contract text and the schema contract.
// Each list field shows two example entries so the model returns lists, not
// single objects. The tier fields are constrained to the three-value
// enumeration; anything else is classified as the lowest tier downstream.
const analysisPromptTemplate = `You are an experienced legal advisor. Analyze the contract below in detail.

Contract Text:
"""
%s
"""

Analyze this contract and respond in the following JSON format:

{
  "contract_type": "Type of contract (e.g. Employment agreement, Service agreement, etc.)",
  "parties": {
    "party_a": "Name of party 1 or 'Not specified'",
    "party_b": "Name of party 2 or 'Not specified'"
  },
  "key_dates": [
    {"date": "date", "description": "description"},
    {"date": "date", "description": "description"}
  ],
  "financial_terms": [
    {"term": "term", "amount": "amount", "description": "description"},
    {"term": "term", "amount": "amount", "description": "description"}
  ],
  "critical_points": [
    {
      "category": "Category (e.g. Payment, Termination, Liability, etc.)",
      "point": "Description of the critical point",
      "risk_level": "High/Medium/Low",
      "recommendation": "Recommendation"
    },
    {
      "category": "Category",
      "point": "Description of the critical point",
      "risk_level": "High/Medium/Low",
      "recommendation": "Recommendation"
    }
  ],
  "obligations": {
    "party_a": ["obligation 1", "obligation 2"],
    "party_b": ["obligation 1", "obligation 2"]
  },
  "termination_clauses": [
    "Termination clause 1",
    "Termination clause 2"
  ],
  "risks": [
    {
      "risk": "Description of the risk",
      "severity": "High/Medium/Low",
      "mitigation": "Mitigation suggestion"
    },
    {
      "risk": "Description of the risk",
      "severity": "High/Medium/Low",
      "mitigation": "Mitigation suggestion"
    }
  ],
  "missing_clauses": [
    "Missing clause 1",
    "Missing clause 2"
  ],
  "overall_assessment": "Overall assessment (2-3 sentences)"
}

Use "High", "Medium" or "Low" for risk_level and severity, nothing else.
Respond in %s. Be detailed and thorough. Respond ONLY in JSON format.`

// buildAnalysisPrompt assembles the user prompt for one analysis request.
// text must already be clipped to the input budget.
func buildAnalysisPrompt(text, language string) string {
	return fmt.Sprintf(analysisPromptTemplate, text, language)
}
