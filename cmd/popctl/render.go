package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/riskibarqy/dietpop-lineup/internal/domain/lineup"
	"github.com/riskibarqy/dietpop-lineup/internal/domain/pop"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

const emptySlot = "-"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// popLabel renders a pop name in its can colors.
func popLabel(p pop.Pop) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.SecondaryColor)).
		Background(lipgloss.Color(p.PrimaryColor)).
		Render(p.Name)
}

func slotLabel(l lineup.Lineup, pos lineup.Position, byID map[string]pop.Pop) string {
	itemID := l.At(pos)
	if itemID == "" {
		return mutedStyle.Render(emptySlot)
	}
	p, ok := byID[itemID]
	if !ok {
		return itemID
	}
	return popLabel(p)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderLineup(summary usecase.LineupSummary, byID map[string]pop.Pop) string {
	l := summary.Lineup
	stats := summary.Stats

	forwards := newTable("LINE", "LW", "C", "RW", "FILLED")
	for _, group := range stats.ForwardLines {
		row := []string{strconv.Itoa(group.Line)}
		for _, side := range []lineup.Side{lineup.SideLeft, lineup.SideCenter, lineup.SideRight} {
			row = append(row, slotLabel(l, forwardAt(group.Line, side), byID))
		}
		row = append(row, fmt.Sprintf("%d/%d", group.Filled, group.Total))
		forwards.Row(row...)
	}

	defense := newTable("PAIR", "LD", "RD", "FILLED")
	for _, group := range stats.DefensePairs {
		defense.Row(
			strconv.Itoa(group.Line),
			slotLabel(l, defenseAt(group.Line, lineup.SideLeft), byID),
			slotLabel(l, defenseAt(group.Line, lineup.SideRight), byID),
			fmt.Sprintf("%d/%d", group.Filled, group.Total),
		)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d%% complete)", l.Name, stats.Completion)))
	b.WriteString("\n")
	b.WriteString(forwards.String())
	b.WriteString("\n")
	b.WriteString(defense.String())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("pops: %d/%d  avg caffeine: %dmg", stats.TotalPops, lineup.PositionCount, stats.AvgCaffeine))
	if brands := formatBrands(stats.Brands); brands != "" {
		b.WriteString("\nbrands: ")
		b.WriteString(brands)
	}
	return b.String()
}

func forwardAt(line int, side lineup.Side) lineup.Position {
	return positionAt(line, lineup.KindForward, side)
}

func defenseAt(line int, side lineup.Side) lineup.Position {
	return positionAt(line, lineup.KindDefense, side)
}

func positionAt(line int, kind lineup.Kind, side lineup.Side) lineup.Position {
	for _, p := range lineup.PositionsByLine(line, kind) {
		if p.Info().Side == side {
			return p
		}
	}
	return ""
}

func formatBrands(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}

func renderPops(items []pop.Pop) string {
	if len(items) == 0 {
		return mutedStyle.Render("no pops match")
	}

	t := newTable("ID", "NAME", "BRAND", "FLAVOR", "CAFFEINE", "CUSTOM")
	for _, p := range items {
		caffeine := emptySlot
		if p.Caffeine != nil {
			caffeine = fmt.Sprintf("%dmg", *p.Caffeine)
		}
		custom := ""
		if p.IsCustom {
			custom = "yes"
		}
		t.Row(p.ID, popLabel(p), p.Brand, p.Flavor, caffeine, custom)
	}
	return t.String()
}
