package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/slabtower/pkg/render/tower"
	"github.com/matzehuels/slabtower/pkg/report"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}

// writeReportTable prints a report as a summary block and, for detailed
// reports, one row per brick.
func writeReportTable(w io.Writer, r *report.Report) error {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Report "+r.ID) + "\n\n")

	summary := newTable().
		Rows(
			[]string{"Bricks", strconv.Itoa(r.BrickCount)},
			[]string{"Moved", strconv.Itoa(r.Moved)},
			[]string{"Height", strconv.Itoa(r.MaxHeight)},
			[]string{"Removable", StyleSuccess.Render(strconv.Itoa(r.Removable))},
			[]string{"Cascade sum", StyleNumber.Render(strconv.Itoa(r.CascadeSum))},
			[]string{"Cascade mean", fmt.Sprintf("%.2f", r.Stats.Mean)},
			[]string{"Cascade stddev", fmt.Sprintf("%.2f", r.Stats.StdDev)},
			[]string{"Worst brick", worstBrick(r)},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(summary.Render() + "\n")

	if len(r.Bricks) > 0 {
		rows := make([][]string, len(r.Bricks))
		for i, br := range r.Bricks {
			rows[i] = []string{
				tower.Label(br.ID),
				br.Start + "~" + br.End,
				strconv.Itoa(br.Drop),
				joinInts(br.Supporters),
				joinInts(br.Supported),
				yesNo(br.Removable),
				strconv.Itoa(br.Cascade),
			}
		}
		bricks := newTable("Brick", "Settled", "Drop", "On", "Holds", "Removable", "Cascade").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return tableHeaderStyle
				}
				if row >= 0 && row < len(r.Bricks) && !r.Bricks[row].Removable {
					return lipgloss.NewStyle().Foreground(colorYellow)
				}
				return lipgloss.NewStyle()
			})
		b.WriteString("\n" + bricks.Render() + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeReportList prints one row per stored report.
func writeReportList(w io.Writer, reports []*report.Report) error {
	rows := make([][]string, len(reports))
	for i, r := range reports {
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(r.BrickCount),
			strconv.Itoa(r.Removable),
			strconv.Itoa(r.CascadeSum),
		}
	}
	t := newTable("ID", "Created", "Bricks", "Removable", "Cascade").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

func worstBrick(r *report.Report) string {
	if r.Stats.Worst < 0 {
		return "-"
	}
	return fmt.Sprintf("%s (%d fall)", tower.Label(r.Stats.Worst), r.Stats.Max)
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = tower.Label(id)
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
