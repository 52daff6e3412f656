package components

import "strings"

// RenderBanner renders the application title with an underline rule.
func RenderBanner(s Styles, title string) string {
	if title == "" {
		title = "Neora Installer"
	}
	rule := strings.Repeat("━", max(len([]rune(title)), 16))
	return s.Title.Render(title) + "\n" + s.Muted.Render(rule)
}
