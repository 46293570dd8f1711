package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/tierdeck/internal/adapters/driving/tui/styles"
)

// writeTable renders rows under headers as a bordered table. Colours are
// dropped automatically when w is not a terminal.
func writeTable(w io.Writer, headers []string, rows [][]string) error {
	s := styles.DefaultStyles()
	header := s.Subtitle.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}
