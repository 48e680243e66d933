// Package tui renders terminal output for devenv-ctl.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/health"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// RenderSummary renders the resolved configuration before the orchestration
// step runs.
func RenderSummary(cfg *config.Config, profile string, repositories map[string]string, env map[string]string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Resolved dev environment") + "\n")
	b.WriteString(row("Action", string(cfg.Action)))
	b.WriteString(row("Profile", profile))
	if cfg.OSVersion != "" {
		b.WriteString(row("OS version", cfg.OSVersion))
	}
	if cfg.OSDVersion != "" {
		b.WriteString(row("OSD version", cfg.OSDVersion))
	}
	if cfg.ModeVersion != "" {
		b.WriteString(row("Mode version", cfg.ModeVersion))
	}
	if cfg.PluginsRoot != "" {
		b.WriteString(row("Plugins root", cfg.PluginsRoot))
	}
	if cfg.UseDashboardFromSource {
		b.WriteString(row("Dashboard base", cfg.DashboardBase))
	}

	for _, key := range sortedKeys(repositories) {
		b.WriteString(row(key, repositories[key]))
	}

	b.WriteString(titleStyle.Render("Environment") + "\n")
	for _, key := range sortedKeys(env) {
		b.WriteString(row(key, env[key]))
	}
	return b.String()
}

// RenderHealth renders preflight results, one line per task.
func RenderHealth(results []health.TaskResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Preflight") + "\n")
	for _, r := range results {
		switch r.Outcome {
		case health.OutcomePass:
			b.WriteString(passStyle.Render("✓") + " " + r.Name + "\n")
		case health.OutcomeRemediation:
			b.WriteString(warnStyle.Render("⚠") + " " + fmt.Sprintf("%s: %s (%s)\n", r.Name, r.Detail, r.Remediation))
		default:
			b.WriteString(failStyle.Render("✗") + " " + fmt.Sprintf("%s: %s\n", r.Name, r.Detail))
		}
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
