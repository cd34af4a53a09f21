package accounts

import (
	"errors"
	"io"

	"github.com/bnema/bank-accounts-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// summaryMsg carries the totals computed before the list is drawn.
type summaryMsg struct {
	count int
	total float64
	empty int
}

type listModel struct {
	accounts []*domain.Account
	opts     RenderOptions
	styles   styles
	summary  summaryMsg
	output   string
}

func newListModel(accounts []*domain.Account, opts RenderOptions) listModel {
	return listModel{
		accounts: accounts,
		opts:     opts,
		styles:   newStyles(),
	}
}

func (m listModel) Init() tea.Cmd {
	accounts := m.accounts
	return func() tea.Msg {
		return summarize(accounts)
	}
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	summary, ok := msg.(summaryMsg)
	if !ok {
		return m, nil
	}

	m.summary = summary
	m.output = renderView(m.accounts, m.summary, m.opts, m.styles)
	return m, tea.Quit
}

func (m listModel) View() string {
	return m.output
}

func summarize(accounts []*domain.Account) summaryMsg {
	summary := summaryMsg{count: len(accounts)}
	for _, account := range accounts {
		summary.total += account.Balance()
		if account.Balance() == 0 {
			summary.empty++
		}
	}
	return summary
}

// Render draws the accounts once and returns the frame without touching the
// terminal.
func Render(accounts []*domain.Account, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		newListModel(accounts, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	list, ok := final.(listModel)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return list.View(), nil
}
