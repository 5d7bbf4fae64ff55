// Package ui provides terminal styling for skillsmith output.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY indicates whether stdout is an interactive terminal.
// When false, UI functions produce plain text without colors or decorations.
var IsTTY = term.IsTerminal(os.Stdout.Fd())

// Color palette - hot metal on a dark bench.

var (
	Ember    = lipgloss.Color("#E8590C") // Forge ember
	Flame    = lipgloss.Color("#F08C00") // Open flame
	Gold     = lipgloss.Color("#F4D03F") // Sparks
	Steel    = lipgloss.Color("#91A7B8") // Cold steel
	Iron     = lipgloss.Color("#5D6D7E") // Raw iron
	Slate    = lipgloss.Color("#3B4A5A") // Bench slate
	Green    = lipgloss.Color("#58D68D") // Quenched green
	Blue     = lipgloss.Color("#5DADE2") // Temper blue
	Cyan     = lipgloss.Color("#76D7C4") // Patina
	Pink     = lipgloss.Color("#FF6B9D") // Hot spot
	White    = lipgloss.Color("#FDFEFE")
	Gray     = lipgloss.Color("#AAB7B8")
	DarkGray = lipgloss.Color("#5D6D7E")
)

// Text styles.

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Flame)

	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Ember)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	Error = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Flame)

	Info = lipgloss.NewStyle().
		Foreground(Blue)

	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	Dim = lipgloss.NewStyle().
		Foreground(DarkGray)

	Highlight = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	Code = lipgloss.NewStyle().
		Foreground(Cyan)
)

var baseBadge = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true)

// SkillBadge returns the skill type badge.
func SkillBadge() string {
	if !IsTTY {
		return "[SKILL]"
	}
	return baseBadge.Background(Ember).Foreground(White).Render("⚒ SKILL")
}

// SourceBadge returns the badge for a tracked skill source.
func SourceBadge() string {
	if !IsTTY {
		return "[SRC]"
	}
	return baseBadge.Background(Slate).Foreground(White).Render("⛏ SRC")
}

// StatusOK returns the success status badge.
func StatusOK() string {
	if !IsTTY {
		return "[OK]"
	}
	return baseBadge.Background(Green).Foreground(White).Render("✓")
}

// StatusWarn returns the warning status badge.
func StatusWarn() string {
	if !IsTTY {
		return "[!]"
	}
	return baseBadge.Background(Flame).Foreground(White).Render("!")
}

// StatusError returns the error status badge.
func StatusError() string {
	if !IsTTY {
		return "[ERR]"
	}
	return baseBadge.Background(Pink).Foreground(White).Render("✗")
}

// Logo returns the skillsmith banner.
func Logo() string {
	if !IsTTY {
		return "\n  SKILLSMITH - The Forge for Agent Skills\n"
	}

	lines := []struct {
		text  string
		color lipgloss.Color
	}{
		{"", Slate},
		{"       ▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄", Slate},
		{"       █  SKILLSMITH         █", Flame},
		{"       █  ⚒ the forge        █", Ember},
		{"       ▀▀▀▀▀█▀▀▀▀▀█▀▀▀▀▀▀▀▀▀▀▀", Slate},
		{"            █     █", Iron},
		{"        ▄▄▄▄█▄▄▄▄▄█▄▄▄▄", Iron},
		{"", Slate},
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(lipgloss.NewStyle().Foreground(line.color).Render(line.text))
		b.WriteString("\n")
	}
	return b.String()
}

// Divider returns a horizontal divider.
func Divider(width int) string {
	return lipgloss.NewStyle().
		Foreground(DarkGray).
		Render(strings.Repeat("─", width))
}

// SectionHeader creates a decorated section header.
func SectionHeader(title string) string {
	if !IsTTY {
		return fmt.Sprintf("=== %s ===", title)
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}

	styled := lipgloss.NewStyle().
		Foreground(Flame).
		Bold(true).
		Render(title)

	titleLen := lipgloss.Width(title)
	padLeft := (width - titleLen - 6) / 2
	padRight := width - titleLen - 6 - padLeft
	if padLeft < 0 || padRight < 0 {
		return styled
	}

	left := lipgloss.NewStyle().Foreground(DarkGray).Render(strings.Repeat("─", padLeft) + "┤ ")
	right := lipgloss.NewStyle().Foreground(DarkGray).Render(" ├" + strings.Repeat("─", padRight))

	return left + styled + right
}

// StatusLine creates a status line with icon and message.
func StatusLine(icon, message string, color lipgloss.Color) string {
	if !IsTTY {
		return fmt.Sprintf("  %s %s", icon, message)
	}
	iconStyled := lipgloss.NewStyle().Foreground(color).Render(icon)
	msgStyled := lipgloss.NewStyle().Foreground(color).Render(message)
	return fmt.Sprintf("  %s %s", iconStyled, msgStyled)
}

// SuccessLine creates a success status line.
func SuccessLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  OK: %s", message)
	}
	return StatusLine("✓", message, Green)
}

// ErrorLine creates an error status line.
func ErrorLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  ERROR: %s", message)
	}
	return StatusLine("✗", message, Pink)
}

// WarningLine creates a warning status line.
func WarningLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  WARN: %s", message)
	}
	return StatusLine("!", message, Flame)
}

// InfoLine creates an info status line.
func InfoLine(message string) string {
	if !IsTTY {
		return fmt.Sprintf("  %s", message)
	}
	return StatusLine("→", message, Blue)
}

// EmptyForge returns a friendly empty state.
func EmptyForge() string {
	if !IsTTY {
		return "\n  (empty)\n\n  The forge is cold. No skills installed yet.\n  Use `skillsmith setup` or `skillsmith forge <name>` to begin.\n"
	}

	anvil := lipgloss.NewStyle().Foreground(DarkGray).Render(`
      ┌─────────────┐
      │   (empty)   │
      └─────────────┘`)

	message := lipgloss.NewStyle().Foreground(Gray).Render("The forge is cold. No skills installed yet.")
	hint := lipgloss.NewStyle().Foreground(Cyan).Render("skillsmith setup")

	return fmt.Sprintf("%s\n\n  %s\n  Use %s to begin.\n", anvil, message, hint)
}

// Truncate truncates text to max length with ellipsis.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}

// WrapText wraps text to fit within maxWidth, returning multiple lines.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current strings.Builder

	for _, word := range words {
		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case current.Len()+1+len(word) <= maxWidth:
			current.WriteString(" ")
			current.WriteString(word)
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// Render applies a lipgloss style to text, returning plain text in non-TTY
// environments.
func Render(style lipgloss.Style, text string) string {
	if !IsTTY {
		return text
	}
	return style.Render(text)
}

// TerminalWidth returns the current terminal width, defaulting to 80.
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// DescriptionWidth returns the recommended width for wrapped descriptions.
func DescriptionWidth() int {
	w := TerminalWidth() - 8
	if w < 40 {
		return 40
	}
	return w
}

// PageFooter creates a consistent page footer.
func PageFooter() string {
	if !IsTTY {
		return "\n"
	}

	width := TerminalWidth()
	if width > 80 {
		width = 80
	}
	padSide := (width - 5) / 2
	left := strings.Repeat("─", padSide)
	right := strings.Repeat("─", width-padSide-5)
	return "\n" + lipgloss.NewStyle().Foreground(DarkGray).Render(left+" ⚒ "+right) + "\n"
}
