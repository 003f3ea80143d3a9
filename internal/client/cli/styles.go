package cli

import "github.com/charmbracelet/lipgloss"

// styles оформление строк вывода. Без терминала lipgloss выводит текст как есть.
type styles struct {
	header   lipgloss.Style
	channel  lipgloss.Style
	message  lipgloss.Style
	signal   lipgloss.Style
	presence lipgloss.Style
	object   lipgloss.Style
	action   lipgloss.Style
	status   lipgloss.Style
	warn     lipgloss.Style
	errText  lipgloss.Style
	muted    lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true),
		channel:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		message:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		signal:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		presence: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		object:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		action:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		status:   lipgloss.NewStyle().Faint(true),
		warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted:    lipgloss.NewStyle().Faint(true),
	}
}
