package report

import "strings"

// markdownBuilder renders the display encoding.
type markdownBuilder struct {
	b strings.Builder
}

func newMarkdownBuilder() *markdownBuilder {
	return &markdownBuilder{}
}

func (m *markdownBuilder) Title(s string) {
	m.b.WriteString("# " + s + "\n")
}

func (m *markdownBuilder) Heading(s string) {
	m.b.WriteString("\n## " + s + "\n")
}

func (m *markdownBuilder) Subheading(s string) {
	m.b.WriteString("\n### " + s + "\n")
}

func (m *markdownBuilder) Para(s string) {
	m.b.WriteString(s + "\n")
}

func (m *markdownBuilder) Item(s string) {
	m.b.WriteString("- " + s + "\n")
}

func (m *markdownBuilder) SubItem(s string) {
	m.b.WriteString("  - " + s + "\n")
}

func (m *markdownBuilder) Field(key, value string) {
	m.b.WriteString("- **" + key + ":** " + value + "\n")
}

func (m *markdownBuilder) String() string {
	return m.b.String()
}

// plainBuilder renders the archival encoding: uppercase underlined headings,
// no markup.
type plainBuilder struct {
	b strings.Builder
}

func newPlainBuilder() *plainBuilder {
	return &plainBuilder{}
}

func (p *plainBuilder) Title(s string) {
	p.b.WriteString(strings.ToUpper(s) + "\n" + strings.Repeat("=", 60) + "\n")
}

func (p *plainBuilder) Heading(s string) {
	p.b.WriteString("\n" + strings.ToUpper(s) + "\n" + strings.Repeat("-", 60) + "\n")
}

func (p *plainBuilder) Subheading(s string) {
	p.b.WriteString("\n" + s + ":\n")
}

func (p *plainBuilder) Para(s string) {
	p.b.WriteString(s + "\n")
}

func (p *plainBuilder) Item(s string) {
	p.b.WriteString("- " + s + "\n")
}

func (p *plainBuilder) SubItem(s string) {
	p.b.WriteString("  " + s + "\n")
}

func (p *plainBuilder) Field(key, value string) {
	p.b.WriteString(key + ": " + value + "\n")
}

func (p *plainBuilder) String() string {
	return p.b.String()
}
