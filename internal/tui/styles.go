package tui

import "github.com/charmbracelet/lipgloss"

var (
	green   = lipgloss.Color("#00FF00")
	yellow  = lipgloss.Color("#FFFF00")
	red     = lipgloss.Color("#FF0000")
	cyan    = lipgloss.Color("#00FFFF")
	magenta = lipgloss.Color("#FF5FD7")
	gray    = lipgloss.Color("#808080")

	FocusedBorderColor   = lipgloss.Color("14")
	UnfocusedBorderColor = lipgloss.Color("8")

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan).
			MarginBottom(1)

	activeEntryStyle = lipgloss.NewStyle().
				Foreground(yellow).
				Bold(true)

	targetEntryStyle = lipgloss.NewStyle().
				Foreground(magenta)

	disabledEntryStyle = lipgloss.NewStyle().
				Foreground(gray).
				Faint(true).
				Strikethrough(true)

	hiddenEntryStyle = lipgloss.NewStyle().
				Foreground(gray)

	leaderStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(gray).
			MarginTop(1)

	resultIndexStyle = lipgloss.NewStyle().
				Foreground(gray)

	resultEntryStyle = lipgloss.NewStyle().
				Foreground(green).
				Bold(true)

	resultTimeStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(cyan)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(gray).
				Faint(true)

	progressTextStyle = lipgloss.NewStyle().
				Foreground(cyan)

	noticeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(red).
			Padding(0, 2).
			MarginTop(1)

	noticeHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(red).
				Background(lipgloss.Color("#330000"))

	noticeTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6666"))

	winnerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(green).
			Foreground(green).
			Bold(true).
			Padding(0, 2)

	tallyStatStyle = lipgloss.NewStyle().
			Foreground(gray)

	tallyBarStyle = lipgloss.NewStyle().
			Foreground(cyan)

	tallyBarEmptyStyle = lipgloss.NewStyle().
				Foreground(gray).
				Faint(true)

	appContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// ringTheme holds the styles the ring painter uses for one colour scheme.
type ringTheme struct {
	rim     lipgloss.Style
	divider lipgloss.Style
	label   lipgloss.Style
	active  lipgloss.Style
	target  lipgloss.Style
	pointer lipgloss.Style
	hub     lipgloss.Style
	footer  lipgloss.Style
}

func newRingTheme(dark bool) ringTheme {
	if dark {
		return ringTheme{
			rim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			divider: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			label:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			active:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(yellow).Bold(true),
			target:  lipgloss.NewStyle().Foreground(magenta),
			pointer: lipgloss.NewStyle().Foreground(red).Bold(true),
			hub:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
		}
	}
	return ringTheme{
		rim:     lipgloss.NewStyle().Foreground(gray).Faint(true),
		divider: lipgloss.NewStyle().Foreground(gray),
		label:   lipgloss.NewStyle(),
		active:  activeEntryStyle.Reverse(true),
		target:  targetEntryStyle,
		pointer: lipgloss.NewStyle().Foreground(red).Bold(true),
		hub:     lipgloss.NewStyle().Foreground(cyan),
		footer:  leaderStyle,
	}
}
