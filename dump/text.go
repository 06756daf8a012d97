package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles of the text format.
type Styles struct {
	Title   lipgloss.Style
	Kernel  lipgloss.Style
	Label   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles binds the text styles to r. A renderer on a non-terminal writer
// produces plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Kernel:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#98FB98")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFD166")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

// WriteText renders doc for a human reader.
func WriteText(w io.Writer, doc *Document) error {
	_, err := io.WriteString(w, RenderText(doc, NewStyles(lipgloss.NewRenderer(w))))
	return err
}

// RenderText renders doc with the given styles.
func RenderText(doc *Document, st Styles) string {
	var b strings.Builder
	title := "zebin"
	if doc.Source != "" {
		title += " " + doc.Source
	}
	b.WriteString(st.Title.Render(title))
	b.WriteString(" ")
	if doc.Error != "" {
		b.WriteString(st.Error.Render(doc.Outcome))
	} else {
		b.WriteString(doc.Outcome)
	}
	b.WriteString("\n")
	if doc.Error != "" {
		b.WriteString(st.Error.Render(doc.Error))
		b.WriteString("\n")
	}

	for _, k := range doc.Kernels {
		b.WriteString("\n")
		b.WriteString(st.Kernel.Render(k.Name))
		b.WriteString("\n")
		field := func(label, format string, args ...any) {
			fmt.Fprintf(&b, "  %s %s\n", st.Label.Render(label+":"), fmt.Sprintf(format, args...))
		}
		field("simd", "%d", k.SimdSize)
		field("grf", "%d", k.GRFCount)
		field("cross-thread data", "%d bytes", k.CrossThreadDataSize)
		if k.PerThreadDataSize > 0 {
			field("per-thread data", "%d bytes", k.PerThreadDataSize)
		}
		if k.SlmSize > 0 {
			field("slm", "%d bytes", k.SlmSize)
		}
		field("addressing", "buffers %s, images %s", k.BufferAddressing, k.ImageAddressing)
		if k.ScratchSize != [2]uint32{} {
			field("scratch", "%d / %d", k.ScratchSize[0], k.ScratchSize[1])
		}
		if k.BindingTableEntries > 0 || k.Samplers > 0 {
			field("heaps", "ssh %d (%d entries), dsh %d (%d samplers)", k.SSHSize, k.BindingTableEntries, k.DSHSize, k.Samplers)
		}
		if k.ISASize > 0 {
			field("isa", "%d bytes %s", k.ISASize, st.Dim.Render(k.Fingerprint[:16]))
		}
		if k.LanguageAttributes != "" {
			field("attributes", "%s", k.LanguageAttributes)
		}
		for _, a := range k.Args {
			desc := a.Kind
			if a.Type != "" {
				desc = a.Type + " " + a.Name
			}
			fmt.Fprintf(&b, "    %s %s %s\n", st.Dim.Render(fmt.Sprintf("[%d]", a.Index)), desc, st.Dim.Render(a.AddressSpace+"/"+a.Access))
		}
	}

	if g := doc.Globals; g != nil && (g.Variables > 0 || g.Constants > 0 || g.Strings > 0) {
		fmt.Fprintf(&b, "\n%s variables %d, constants %d, strings %d\n", st.Label.Render("globals:"), g.Variables, g.Constants, g.Strings)
	}
	for _, f := range doc.ExternalFunctions {
		fmt.Fprintf(&b, "%s %s simd %d grf %d\n", st.Label.Render("function:"), f.Name, f.SimdSize, f.GRFCount)
	}
	if n := doc.Notes; n != nil && n.ZebinVersion != "" {
		fmt.Fprintf(&b, "%s %s\n", st.Label.Render("zebin version:"), n.ZebinVersion)
	}

	if len(doc.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range doc.Warnings {
			b.WriteString(st.Warning.Render("warning: " + w))
			b.WriteString("\n")
		}
	}
	return b.String()
}
