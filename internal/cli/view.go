package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/render/projection"
	"github.com/matzehuels/slabtower/pkg/render/tower"
	"github.com/matzehuels/slabtower/pkg/settle"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Browse the settled stack interactively",
		Long: `View settles a snapshot and opens a terminal browser over its side views.
Select a brick to see what it rests on, what rests on it and how many bricks
would fall without it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			runner, closeRunner, err := c.newRunner(ctx, true, false)
			if err != nil {
				return err
			}
			defer closeRunner()

			res, err := runner.Prepare(ctx, input)
			if err != nil {
				return err
			}
			sum, err := runner.Query(ctx, res)
			if err != nil {
				return err
			}
			m, err := newViewModel(res, sum)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}

// View styles
var (
	viewSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewSupportStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	viewLoadStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	viewNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	viewDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	viewPanelStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1).
				MarginLeft(2)
)

// =============================================================================
// viewModel - Interactive stack browser
// =============================================================================

// viewModel is the bubbletea model behind `slabtower view`.
type viewModel struct {
	res   *settle.Result
	sum   query.Summary
	views [2]*projection.View // along x, along y

	axis   int // index into views
	cursor int // selected brick ID
	offset int // layers scrolled down from the top
	height int // visible layers
}

func newViewModel(res *settle.Result, sum query.Summary) (viewModel, error) {
	m := viewModel{res: res, sum: sum, height: 20}
	for i, ax := range []brick.Axis{brick.AxisX, brick.AxisY} {
		v, err := projection.Project(res.Bricks, ax)
		if err != nil {
			return viewModel{}, err
		}
		m.views[i] = v
	}
	return m, nil
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "a":
			m.axis = 1 - m.axis
		case "right", "l", "n":
			if m.cursor < len(m.res.Bricks)-1 {
				m.cursor++
				m.follow()
			}
		case "left", "h", "p":
			if m.cursor > 0 {
				m.cursor--
				m.follow()
			}
		case "w":
			if m.sum.Stats.Worst >= 0 {
				m.cursor = m.sum.Stats.Worst
				m.follow()
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.offset = min(m.offset, m.maxOffset())
	}
	return m, nil
}

func (m viewModel) maxOffset() int {
	return max(m.views[0].Height-m.height, 0)
}

// follow scrolls so the selected brick is visible.
func (m *viewModel) follow() {
	if len(m.res.Bricks) == 0 {
		return
	}
	b := m.res.Brick(m.cursor)
	top := m.views[0].Height - m.offset
	switch {
	case b.Top() > top:
		m.offset = m.views[0].Height - b.Top()
	case b.Bottom() < top-m.height+1:
		m.offset = m.views[0].Height - (b.Bottom() + m.height - 1)
	}
	m.offset = max(0, min(m.offset, m.maxOffset()))
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Settled stack"))
	b.WriteString("\n")
	b.WriteString(viewDimStyle.Render("←/→ brick  ↑/↓ scroll  tab axis  w worst  q quit"))
	b.WriteString("\n\n")

	if len(m.res.Bricks) == 0 {
		b.WriteString(viewDimStyle.Render("  (no bricks)"))
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderView(), viewPanelStyle.Render(m.renderPanel())))
	b.WriteString("\n\n")
	b.WriteString(viewDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.res.Bricks))))
	return b.String()
}

func (m viewModel) renderView() string {
	v := m.views[m.axis]
	supporters := m.res.Graph.Supporters(m.cursor)
	supported := m.res.Graph.Supported(m.cursor)

	var b strings.Builder
	b.WriteString(viewDimStyle.Render(strings.Repeat(" ", (v.Width-1)/2)+v.Axis.String()) + "\n")

	top := v.Height - m.offset
	bottom := max(top-m.height+1, 1)
	for z := top; z >= bottom; z-- {
		for u := range v.Width {
			ids := v.At(u, z)
			b.WriteString(m.cellStyle(ids, supporters, supported).Render(cellGlyph(ids)))
		}
		b.WriteString(viewDimStyle.Render(fmt.Sprintf(" %d", z)) + "\n")
	}
	if bottom == 1 {
		b.WriteString(viewDimStyle.Render(strings.Repeat("-", v.Width) + " 0"))
	} else {
		b.WriteString(viewDimStyle.Render(fmt.Sprintf("  ↓ %d more", bottom-1)))
	}
	return b.String()
}

func (m viewModel) cellStyle(ids, supporters, supported []int) lipgloss.Style {
	switch {
	case slices.Contains(ids, m.cursor):
		return viewSelectedStyle
	case slices.ContainsFunc(ids, func(id int) bool { return slices.Contains(supporters, id) }):
		return viewSupportStyle
	case slices.ContainsFunc(ids, func(id int) bool { return slices.Contains(supported, id) }):
		return viewLoadStyle
	case len(ids) == 0:
		return viewDimStyle
	}
	return viewNormalStyle
}

func cellGlyph(ids []int) string {
	switch len(ids) {
	case 0:
		return "."
	case 1:
		return string(projection.Label(ids[0]))
	}
	return "?"
}

func (m viewModel) renderPanel() string {
	br := m.res.Brick(m.cursor)
	bs := m.sum.Bricks[m.cursor]

	lines := []string{
		viewSelectedStyle.Render("Brick " + tower.Label(br.ID)),
		"",
		"at       " + br.String(),
		fmt.Sprintf("dropped  %d", m.res.Drop[br.ID]),
		"on       " + viewSupportStyle.Render(joinInts(m.res.Graph.Supporters(br.ID))),
		"holds    " + viewLoadStyle.Render(joinInts(m.res.Graph.Supported(br.ID))),
		"",
	}
	if bs.Removable {
		lines = append(lines, StyleSuccess.Render("safe to remove"))
	} else {
		lines = append(lines,
			StyleWarning.Render(fmt.Sprintf("%d would fall", bs.Cascade)),
			"alone holds "+joinInts(bs.SoleDependents))
	}
	return strings.Join(lines, "\n")
}
