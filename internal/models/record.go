// Package models defines the structured contract analysis record and its nested types.
package models

// AnalysisRecord is the structured result of one analysis pass. The generation
// capability is asked for this exact shape but never guaranteed to honor it, so
// every field tolerates being absent; a partially filled record is still valid.
// Records are immutable once produced; a new analysis produces a new record.
type AnalysisRecord struct {
	ContractType       string          `json:"contract_type,omitempty"`
	Parties            Parties         `json:"parties"`
	KeyDates           []KeyDate       `json:"key_dates,omitempty"`
	FinancialTerms     []FinancialTerm `json:"financial_terms,omitempty"`
	CriticalPoints     []CriticalPoint `json:"critical_points,omitempty"`
	Obligations        *Obligations    `json:"obligations,omitempty"`
	TerminationClauses []string        `json:"termination_clauses,omitempty"`
	Risks              []Risk          `json:"risks,omitempty"`
	MissingClauses     []string        `json:"missing_clauses,omitempty"`
	OverallAssessment  string          `json:"overall_assessment,omitempty"`
}

// Parties names the two contracting parties.
type Parties struct {
	PartyA string `json:"party_a,omitempty"`
	PartyB string `json:"party_b,omitempty"`
}

// KeyDate is a dated milestone extracted from the contract.
type KeyDate struct {
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// FinancialTerm is a monetary term extracted from the contract.
type FinancialTerm struct {
	Term        string `json:"term,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Description string `json:"description,omitempty"`
}

// CriticalPoint is a flagged clause with its declared risk tier and a recommendation.
// RiskLevel keeps the verbatim model output; use ParseTier to classify it.
type CriticalPoint struct {
	Category       string `json:"category,omitempty"`
	Point          string `json:"point,omitempty"`
	RiskLevel      string `json:"risk_level,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Obligations lists each party's obligations. A nil Obligations means the field
// was absent from the response, which is distinct from two empty lists.
type Obligations struct {
	PartyA []string `json:"party_a,omitempty"`
	PartyB []string `json:"party_b,omitempty"`
}

// Risk is an identified risk with its declared severity and a mitigation.
// Severity keeps the verbatim model output; use ParseTier to classify it.
type Risk struct {
	Risk       string `json:"risk,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Mitigation string `json:"mitigation,omitempty"`
}

// QAExchange is a transient question/answer pair from grounded Q&A.
// It is never persisted as part of an AnalysisRecord.
type QAExchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
