package main

import (
	"fmt"
	"io"
	"liftotron/domain"
	"slices"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// ParticipantStat counts the closed days a participant was on the roster and greeted.
type ParticipantStat struct {
	Key      string
	Greeted  int
	Expected int
}

func (s ParticipantStat) Rate() float64 {
	if s.Expected == 0 {
		return 0
	}
	return float64(s.Greeted) / float64(s.Expected)
}

// Summarize aggregates records per participant, best attendance first.
func Summarize(records []domain.AttendanceRecord) []ParticipantStat {
	stats := make(map[string]*ParticipantStat)
	for _, record := range records {
		for _, key := range record.Roster {
			stat, ok := stats[key]
			if !ok {
				stat = &ParticipantStat{Key: key}
				stats[key] = stat
			}
			stat.Expected++
			if slices.Contains(record.Greeted, key) {
				stat.Greeted++
			}
		}
	}

	result := lo.Map(lo.Values(stats), func(s *ParticipantStat, _ int) ParticipantStat { return *s })
	slices.SortFunc(result, func(a, b ParticipantStat) int {
		if a.Rate() != b.Rate() {
			if a.Rate() > b.Rate() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
	return result
}

func RenderRecords(w io.Writer, records []domain.AttendanceRecord, colours bool) {
	table := newTable(w)
	table.SetHeader([]string{"Day", "Closed at", "Greeted", "Missing"})
	for _, record := range records {
		missing := strings.Join(record.Missing, ", ")
		switch {
		case record.Complete():
			missing = "-"
		case colours:
			missing = color.FgRed.Render(missing)
		}
		table.Append([]string{
			record.Day,
			record.ClosedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d/%d", len(record.Greeted), len(record.Roster)),
			missing,
		})
	}
	table.Render()
}

func RenderStats(w io.Writer, stats []ParticipantStat, days int) {
	table := newTable(w)
	table.SetHeader([]string{"Participant", "Greeted", "Rate"})
	for _, stat := range stats {
		table.Append([]string{
			stat.Key,
			fmt.Sprintf("%d/%d", stat.Greeted, stat.Expected),
			fmt.Sprintf("%.0f%%", 100*stat.Rate()),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d days", days)})
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
