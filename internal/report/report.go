// Package report renders an analysis record into display and archival formats.
package report

import (
	"fmt"
	"strings"

	"github.com/hyperjump/keiyaku/internal/models"
)

// Rendered holds both encodings of one report. They agree on section order
// and content; only the markup differs.
type Rendered struct {
	Markdown string `json:"markdown"`
	Plain    string `json:"plain"`
}

// Placeholder strings for empty sections.
const (
	defaultTitle        = "Contract Analysis Report"
	notSpecified        = "Not specified"
	noKeyDates          = "No key dates specified"
	noFinancialTerms    = "No financial terms specified"
	noCriticalPoints    = "No critical points identified"
	noSignificantRisk   = "No significant risk detected"
	noTerminationClause = "Warning: no termination clause found"
	noMaterialOmissions = "No material omissions detected"
)

// section pairs a fixed header with a body producer. One ordered list drives
// both encodings so they cannot drift apart.
type section struct {
	header string
	body   func(b builder, rec *models.AnalysisRecord)
}

// builder receives report content in document order. Implementations decide
// the markup.
type builder interface {
	Title(s string)
	Heading(s string)
	Subheading(s string)
	Para(s string)
	Item(s string)
	SubItem(s string)
	Field(key, value string)
	String() string
}

var sections = []section{
	{"Overall Assessment", func(b builder, rec *models.AnalysisRecord) {
		b.Para(orDash(rec.OverallAssessment))
	}},
	{"Parties", func(b builder, rec *models.AnalysisRecord) {
		b.Field("Party A", orDefault(rec.Parties.PartyA, notSpecified))
		b.Field("Party B", orDefault(rec.Parties.PartyB, notSpecified))
	}},
	{"Key Dates", func(b builder, rec *models.AnalysisRecord) {
		if len(rec.KeyDates) == 0 {
			b.Item(noKeyDates)
			return
		}
		for _, d := range rec.KeyDates {
			b.Field(orDash(d.Date), orDash(d.Description))
		}
	}},
	{"Financial Terms", func(b builder, rec *models.AnalysisRecord) {
		if len(rec.FinancialTerms) == 0 {
			b.Item(noFinancialTerms)
			return
		}
		for _, t := range rec.FinancialTerms {
			b.Field(orDash(t.Term), orDash(t.Amount))
			b.SubItem(orDash(t.Description))
		}
	}},
	{"Critical Points", func(b builder, rec *models.AnalysisRecord) {
		if len(rec.CriticalPoints) == 0 {
			b.Item(noCriticalPoints)
			return
		}
		groups := models.GroupCriticalPoints(rec.CriticalPoints)
		for _, tier := range models.Tiers() {
			points := groups[tier]
			if len(points) == 0 {
				continue
			}
			b.Subheading(string(tier) + " Risk")
			for _, p := range points {
				b.Field(orDash(p.Category), orDash(p.Point))
				b.SubItem("Recommendation: " + orDash(p.Recommendation))
			}
		}
	}},
	{"Risks", func(b builder, rec *models.AnalysisRecord) {
		if len(rec.Risks) == 0 {
			b.Item(noSignificantRisk)
			return
		}
		for _, r := range rec.Risks {
			tier := models.ParseTier(r.Severity)
			b.Item(fmt.Sprintf("[%s] %s (Severity: %s)", tier, orDash(r.Risk), orDefault(r.Severity, string(tier))))
			b.SubItem("Mitigation: " + orDash(r.Mitigation))
		}
	}},
	// Obligations is the one conditional section; it is omitted entirely when
	// the field is absent from the record.
	{"Obligations", func(b builder, rec *models.AnalysisRecord) {
		b.Subheading(orDefault(rec.Parties.PartyA, "Party A"))
		for _, o := range rec.Obligations.PartyA {
			b.Item(o)
		}
		b.Subheading(orDefault(rec.Parties.PartyB, "Party B"))
		for _, o := range rec.Obligations.PartyB {
			b.Item(o)
		}
	}},
	{"Termination Clauses", func(b builder, rec *models.AnalysisRecord) {
		if len(rec.TerminationClauses) == 0 {
			b.Item(noTerminationClause)
			return
		}
		for _, c := range rec.TerminationClauses {
			b.Item(c)
		}
	}},
	{"Missing Clauses", func(b builder, rec *models.AnalysisRecord) {
		if len(rec.MissingClauses) == 0 {
			b.Item(noMaterialOmissions)
			return
		}
		for _, c := range rec.MissingClauses {
			b.Item(c)
		}
	}},
}

// Render produces both encodings of the report for rec. It is a pure function:
// deterministic for the same record, never fails, and tolerates any combination
// of absent fields.
func Render(rec *models.AnalysisRecord) *Rendered {
	return &Rendered{
		Markdown: renderWith(newMarkdownBuilder(), rec),
		Plain:    renderWith(newPlainBuilder(), rec),
	}
}

func renderWith(b builder, rec *models.AnalysisRecord) string {
	b.Title(orDefault(rec.ContractType, defaultTitle))
	for _, s := range sections {
		if s.header == "Obligations" && rec.Obligations == nil {
			continue
		}
		b.Heading(s.header)
		s.body(b, rec)
	}
	return b.String()
}

func orDash(s string) string {
	return orDefault(s, "-")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
