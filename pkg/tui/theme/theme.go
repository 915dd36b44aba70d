package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Panel  PanelTheme
	List   ListTheme
	Form   FormTheme
	Footer FooterTheme
}

// PanelTheme styles framed panes and headings.
type PanelTheme struct {
	Frame        lipgloss.Style
	FocusedFrame lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
}

// ListTheme styles catalog rows.
type ListTheme struct {
	Row      lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
}

// FormTheme styles editor overlays.
type FormTheme struct {
	Frame      lipgloss.Style
	Title      lipgloss.Style
	Label      lipgloss.Style
	FocusLabel lipgloss.Style
	Error      lipgloss.Style
	Chip       lipgloss.Style
	Hint       lipgloss.Style
}

// FooterTheme styles the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	focus := lipgloss.Color("212")
	dim := lipgloss.Color("244")

	return Theme{
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			FocusedFrame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focus).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		List: ListTheme{
			Row:      lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(focus).Bold(true),
			Dim:      lipgloss.NewStyle().Foreground(dim),
			Empty:    lipgloss.NewStyle().Foreground(dim).Italic(true),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
		Form: FormTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focus).
				Padding(1, 2),
			Title:      lipgloss.NewStyle().Bold(true),
			Label:      lipgloss.NewStyle().Foreground(dim),
			FocusLabel: lipgloss.NewStyle().Foreground(focus),
			Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
			Chip: lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("63")).
				Padding(0, 1),
			Hint: lipgloss.NewStyle().Foreground(dim),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(dim),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
	}
}
