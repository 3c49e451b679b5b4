package report

import (
	"strings"
	"testing"

	"github.com/hyperjump/keiyaku/internal/models"
)

var fixedHeaders = []string{
	"Overall Assessment",
	"Parties",
	"Key Dates",
	"Financial Terms",
	"Critical Points",
	"Risks",
	"Termination Clauses",
	"Missing Clauses",
}

func TestRender_emptyRecord(t *testing.T) {
	r := Render(&models.AnalysisRecord{})

	for _, h := range fixedHeaders {
		if n := strings.Count(r.Markdown, "## "+h+"\n"); n != 1 {
			t.Errorf("markdown header %q appears %d times", h, n)
		}
		if n := strings.Count(r.Plain, strings.ToUpper(h)+"\n"); n != 1 {
			t.Errorf("plain header %q appears %d times", h, n)
		}
	}

	// Empty list fields render placeholders, not empty sections
	for _, want := range []string{
		"No key dates specified",
		"No financial terms specified",
		"No critical points identified",
		"No significant risk detected",
		"Warning: no termination clause found",
		"No material omissions detected",
		"Not specified",
	} {
		if !strings.Contains(r.Markdown, want) {
			t.Errorf("markdown missing placeholder %q", want)
		}
		if !strings.Contains(r.Plain, want) {
			t.Errorf("plain missing placeholder %q", want)
		}
	}

	// Obligations section omitted when the field is absent
	if strings.Contains(r.Markdown, "Obligations") {
		t.Error("obligations section should be omitted for absent field")
	}
}

func TestRender_idempotent(t *testing.T) {
	rec := &models.AnalysisRecord{
		ContractType:      "Lease Agreement",
		OverallAssessment: "Generally balanced.",
		Risks:             []models.Risk{{Risk: "late fees", Severity: "Medium", Mitigation: "cap them"}},
	}
	a := Render(rec)
	b := Render(rec)
	if a.Markdown != b.Markdown {
		t.Error("markdown rendering not deterministic")
	}
	if a.Plain != b.Plain {
		t.Error("plain rendering not deterministic")
	}
}

func TestRender_criticalPointTiers(t *testing.T) {
	rec := &models.AnalysisRecord{
		CriticalPoints: []models.CriticalPoint{
			{Category: "Payment", Point: "net-90 terms", RiskLevel: "High", Recommendation: "negotiate net-30"},
		},
	}
	r := Render(rec)

	high := strings.Index(r.Markdown, "### High Risk")
	if high < 0 {
		t.Fatal("High Risk subgroup missing")
	}
	if strings.Contains(r.Markdown, "### Medium Risk") || strings.Contains(r.Markdown, "### Low Risk") {
		t.Error("empty tier subgroups should be suppressed")
	}
	if !strings.Contains(r.Markdown[high:], "net-90 terms") {
		t.Error("High entry not in High subgroup")
	}
}

func TestRender_unrecognizedTierFallsToLow(t *testing.T) {
	rec := &models.AnalysisRecord{
		CriticalPoints: []models.CriticalPoint{
			{Category: "Liability", Point: "unlimited", RiskLevel: "Catastrophic"},
		},
	}
	r := Render(rec)
	low := strings.Index(r.Markdown, "### Low Risk")
	if low < 0 {
		t.Fatal("Low Risk subgroup missing")
	}
	if !strings.Contains(r.Markdown[low:], "unlimited") {
		t.Error("unrecognized tier should land in Low")
	}
}

func TestRender_riskTierIndicator(t *testing.T) {
	rec := &models.AnalysisRecord{
		Risks: []models.Risk{{Risk: "auto-renewal", Severity: "high", Mitigation: "add notice period"}},
	}
	r := Render(rec)
	if !strings.Contains(r.Markdown, "[High] auto-renewal") {
		t.Errorf("missing tier indicator: %q", r.Markdown)
	}
	if !strings.Contains(r.Plain, "[High] auto-renewal") {
		t.Errorf("plain missing tier indicator: %q", r.Plain)
	}
}

func TestRender_obligations(t *testing.T) {
	rec := &models.AnalysisRecord{
		Parties: models.Parties{PartyA: "Acme Corp", PartyB: "Bob LLC"},
		Obligations: &models.Obligations{
			PartyA: []string{"deliver goods"},
			PartyB: []string{"pay invoices"},
		},
	}
	r := Render(rec)
	if !strings.Contains(r.Markdown, "## Obligations") {
		t.Error("obligations section missing")
	}
	if !strings.Contains(r.Markdown, "### Acme Corp") {
		t.Error("party A subsection should use the party name")
	}
	if !strings.Contains(r.Markdown, "- pay invoices") {
		t.Error("party B obligations missing")
	}
}

func TestRender_terminationWarning(t *testing.T) {
	rec := &models.AnalysisRecord{
		ContractType: "Lease Agreement",
		CriticalPoints: []models.CriticalPoint{
			{Category: "Deposit", Point: "non-refundable", RiskLevel: "High"},
		},
	}
	r := Render(rec)
	if !strings.Contains(r.Markdown, "Warning: no termination clause found") {
		t.Error("empty termination clauses should render the warning placeholder")
	}
}

func TestRender_title(t *testing.T) {
	r := Render(&models.AnalysisRecord{ContractType: "Service Agreement"})
	if !strings.HasPrefix(r.Markdown, "# Service Agreement\n") {
		t.Errorf("markdown title = %q", r.Markdown[:40])
	}
	if !strings.HasPrefix(r.Plain, "SERVICE AGREEMENT\n") {
		t.Errorf("plain title = %q", r.Plain[:40])
	}

	empty := Render(&models.AnalysisRecord{})
	if !strings.HasPrefix(empty.Markdown, "# Contract Analysis Report\n") {
		t.Error("missing default title")
	}
}
