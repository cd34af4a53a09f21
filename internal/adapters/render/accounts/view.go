package accounts

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 20

type RenderOptions struct {
	Title    string
	BarWidth int
}

func renderView(accounts []*domain.Account, summary summaryMsg, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Bank Accounts"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("accounts: %d  total: %s  empty: %d", summary.count, formatAmount(summary.total), summary.empty)),
	}

	if len(accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, account := range accounts {
		lines = append(lines, s.section.Render(renderAccount(account, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(account *domain.Account, opts RenderOptions, s styles) string {
	balance := s.detail.Render(fmt.Sprintf("balance: %s", formatAmount(account.Balance())))
	if account.Balance() == 0 {
		balance += " " + s.warning.Render("[empty]")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.account.Render(fmt.Sprintf("Account %s", account.Number())),
		balance,
		rateLine(account.InterestRate(), opts, s),
	)
}

func rateLine(rate float64, opts RenderOptions, s styles) string {
	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	share := rate / domain.MaxInterestRate
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(share, 0, 1))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.rateKey.Render("interest:"),
		" ",
		renderProgressBar(share, width, s),
		" ",
		percentStyle.Render(formatRate(rate)),
	)
}

func renderProgressBar(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampFraction(fraction)))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := clampFraction((value - min) / (max - min))

	// ANSI 256 greyscale ramp: 240 (faded) at min, 255 (bright) at max.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
