package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/mmconv/internal/config"
)

// StyleManager encapsulates the report styles
type StyleManager struct {
	Header lipgloss.Style
	OK     lipgloss.Style
	Fail   lipgloss.Style
	Path   lipgloss.Style
	Dim    lipgloss.Style

	// Summary box
	Border lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		OK:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Path:   lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headerColor := parseANSIColor(config.GetColorHeader())
	okColor := parseANSIColor(config.GetColorOK())
	failColor := parseANSIColor(config.GetColorFail())
	dimColor := parseANSIColor(config.GetColorDim())

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	s.OK = lipgloss.NewStyle().Foreground(okColor)
	s.Fail = lipgloss.NewStyle().Bold(true).Foreground(failColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dimColor).Padding(0, 1)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
