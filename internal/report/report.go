package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/rivalstats/internal/aggregator"
	"github.com/pable/rivalstats/internal/herofilter"
	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/ranking"
)

var (
	cHigh   = color.New(color.FgGreen)
	cMid    = color.New(color.FgYellow)
	cLow    = color.New(color.FgRed)
	cGold   = color.New(color.FgYellow, color.Bold)
	cSilver = color.New(color.FgWhite, color.Bold)
	cBronze = color.New(color.FgRed, color.Faint)
	cWarn   = color.New(color.FgYellow, color.Bold)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// Rate renders a 0–100 win rate with one decimal, coloured by band.
func Rate(rate float64) string {
	return banded(rate, fmt.Sprintf("%.1f%%", rate))
}

func banded(rate float64, s string) string {
	switch ranking.ClassifyRate(rate) {
	case ranking.High:
		return cHigh.Sprint(s)
	case ranking.Mid:
		return cMid.Sprint(s)
	default:
		return cLow.Sprint(s)
	}
}

func medal(i int) string {
	pos := strconv.Itoa(i + 1)
	switch ranking.RankBand(i) {
	case ranking.Gold:
		return cGold.Sprint(pos)
	case ranking.Silver:
		return cSilver.Sprint(pos)
	case ranking.Bronze:
		return cBronze.Sprint(pos)
	default:
		return pos
	}
}

func roleOrDash(r *model.Role) string {
	if r == nil {
		return "—"
	}
	return r.Title()
}

func heroRoleTitle(h model.HeroRole) string {
	if r, ok := h.Role(); ok {
		return r.Title()
	}
	return "Unknown"
}

// PrintSquadSummary prints the squad header block.
func PrintSquadSummary(w io.Writer, s model.SquadSummary) {
	fmt.Fprintf(w, "\nSquad: %d players  |  Games: %d  |  Wins: %d  |  Win rate: %s  |  MVP: %d  |  SVP: %d\n\n",
		s.PlayerCount, s.TotalGames, s.TotalWins, Rate(s.WinRate), s.TotalMVPs, s.TotalSVPs)
}

// PrintRoleCoverage prints who can fill each role.
func PrintRoleCoverage(w io.Writer, shares []aggregator.RoleShare) {
	table := newTable(w)
	table.Header("ROLE", "PLAYERS", "SHARE", "NAMES")
	for _, s := range shares {
		names := "None"
		if len(s.Players) > 0 {
			names = strings.Join(s.Players, ", ")
		}
		table.Append(s.Role.Title(), strconv.Itoa(s.Count), fmt.Sprintf("%.0f%%", s.Percent), names)
	}
	table.Render()
}

// PrintRoleDistribution prints games played per role.
func PrintRoleDistribution(w io.Writer, dist []aggregator.RoleGames) {
	total := 0
	for _, d := range dist {
		total += d.Games
	}
	table := newTable(w)
	table.Header("ROLE", "GAMES", "SHARE")
	for _, d := range dist {
		share := "—"
		if total > 0 {
			share = fmt.Sprintf("%.0f%%", float64(d.Games)/float64(total)*100)
		}
		table.Append(d.Role.Title(), strconv.Itoa(d.Games), share)
	}
	table.Render()
}

// PrintWinRateRanking prints players ordered by win rate with medal positions.
func PrintWinRateRanking(w io.Writer, rows []ranking.Ranked) {
	table := newTable(w)
	table.Header("#", "PLAYER", "WIN%")
	for i, r := range rows {
		table.Append(medal(i), r.Name, Rate(r.Value))
	}
	table.Render()
}

// PrintLeaderboard prints one leaderboard category in upstream order.
func PrintLeaderboard(w io.Writer, cat ranking.Category, entries []model.LeaderboardEntry) {
	table := newTable(w)
	switch cat {
	case ranking.CategoryWinRate:
		table.Header("#", "PLAYER", cat.Title(), "GAMES")
	case ranking.CategoryKDA:
		table.Header("#", "PLAYER", cat.Title(), "K", "D", "A")
	default:
		table.Header("#", "PLAYER", cat.Title(), "TOTAL")
	}

	for i, e := range entries {
		value := ranking.FormatValue(cat, e.Value)
		switch cat {
		case ranking.CategoryWinRate:
			table.Append(medal(i), e.Name, banded(e.Value, value), optInt(e.Games))
		case ranking.CategoryKDA:
			table.Append(medal(i), e.Name, value, optInt(e.Kills), optInt(e.Deaths), optInt(e.Assists))
		default:
			total := "—"
			if e.Total != nil {
				total = ranking.FormatValue(cat, *e.Total)
			}
			table.Append(medal(i), e.Name, value, total)
		}
	}
	table.Render()
}

func optInt(p *int) string {
	if p == nil {
		return "—"
	}
	return strconv.Itoa(*p)
}

// PrintComposition prints one line-up grouped by role and flags the role the
// random teammate should fill.
func PrintComposition(w io.Writer, index int, c model.Composition, groups map[model.Role][]model.Assignment, missing *model.Role) {
	fmt.Fprintf(w, "\nComposition #%d  (score %.1f)\n\n", index+1, c.Score)
	table := newTable(w)
	table.Header("ROLE", "PLAYER", "HERO")
	for _, r := range model.Roles {
		for _, a := range groups[r] {
			table.Append(r.Title(), a.Player, a.Hero)
		}
		if missing != nil && *missing == r {
			table.Append(r.Title(), cWarn.Sprint("random"), "—")
		}
	}
	table.Render()
	if missing != nil {
		fmt.Fprintf(w, "\nOpen slot: %s (filled by the random teammate)\n", missing.Title())
	}
}

// PrintCompositionList prints a one-line overview of every composition.
func PrintCompositionList(w io.Writer, comps []model.Composition, missing []*model.Role) {
	table := newTable(w)
	table.Header("#", "SCORE", "SLOTS", "OPEN ROLE")
	for i, c := range comps {
		open := "—"
		if missing[i] != nil {
			open = missing[i].Title()
		}
		table.Append(strconv.Itoa(i+1), fmt.Sprintf("%.1f", c.Score), strconv.Itoa(len(c.Assignments)), open)
	}
	table.Render()
}

// PrintHeroTable prints squad-wide hero stats with each hero's best player.
func PrintHeroTable(w io.Writer, heroes []model.HeroAggregate) {
	table := newTable(w)
	table.Header("HERO", "ROLE", "GAMES", "WINS", "WIN%", "BEST PLAYER", "SCORE")
	for _, h := range heroes {
		best, score := "—", "—"
		if p, ok := herofilter.BestPlayerForHero(h); ok {
			best = p.Name
			score = fmt.Sprintf("%.1f", p.PerformanceScore)
		}
		table.Append(h.Name, heroRoleTitle(h.Role), strconv.Itoa(h.TotalGames),
			strconv.Itoa(h.TotalWins), Rate(h.WinRate), best, score)
	}
	table.Render()
}

// PrintHeroPlayers prints every squad player's record on one hero, in
// upstream rank order.
func PrintHeroPlayers(w io.Writer, h model.HeroAggregate) {
	fmt.Fprintf(w, "\n%s  (%s)  |  Games: %d  |  Win rate: %s\n\n",
		h.Name, heroRoleTitle(h.Role), h.TotalGames, Rate(h.WinRate))
	table := newTable(w)
	table.Header("#", "PLAYER", "GAMES", "WIN%", "SCORE")
	for i, p := range h.Players {
		table.Append(medal(i), p.Name, strconv.Itoa(p.GamesPlayed), Rate(p.WinRate),
			fmt.Sprintf("%.1f", p.PerformanceScore))
	}
	table.Render()
}

// PrintPlayerCard prints a player's headline stats, role scores, top heroes
// and per-role breakdown.
func PrintPlayerCard(w io.Writer, p model.Player) {
	fmt.Fprintf(w, "\n%s  |  Games: %d  |  Wins: %d  |  Win rate: %s  |  Primary: %s  |  Secondary: %s\n\n",
		p.Name, p.TotalGames, p.TotalWins, Rate(p.WinRate), roleOrDash(p.PrimaryRole), roleOrDash(p.SecondaryRole))

	rt := newTable(w)
	rt.Header("ROLE", "SCORE")
	for _, r := range model.Roles {
		rt.Append(r.Title(), fmt.Sprintf("%.1f", p.RoleScores[r]))
	}
	rt.Render()

	if len(p.TopHeroes) > 0 {
		fmt.Fprintf(w, "\n--- Top Heroes ---\n\n")
		ht := newTable(w)
		ht.Header("#", "HERO", "ROLE", "GAMES", "WIN%", "KDA", "SCORE", "DMG/MIN", "HEAL/MIN", "BLK/MIN", "MVP", "SVP")
		for i, h := range p.TopHeroes {
			ht.Append(
				strconv.Itoa(i+1),
				h.Name,
				heroRoleTitle(h.Role),
				strconv.Itoa(h.GamesPlayed),
				Rate(h.WinRate),
				fmt.Sprintf("%.2f", h.KDA),
				fmt.Sprintf("%.1f", h.PerformanceScore),
				fmt.Sprintf("%.0f", h.AvgDamage),
				fmt.Sprintf("%.0f", h.AvgHealing),
				fmt.Sprintf("%.0f", h.AvgBlocked),
				strconv.Itoa(h.MVPCount),
				strconv.Itoa(h.SVPCount),
			)
		}
		ht.Render()
	}

	for _, r := range model.Roles {
		rows := p.HeroBreakdown[r]
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %ss ---\n\n", r.Title())
		bt := newTable(w)
		bt.Header("HERO", "GAMES", "WIN%", "KDA", "SCORE")
		for _, h := range rows {
			bt.Append(h.Name, strconv.Itoa(h.GamesPlayed), Rate(h.WinRate),
				fmt.Sprintf("%.2f", h.KDA), fmt.Sprintf("%.1f", h.PerformanceScore))
		}
		bt.Render()
	}
}

// PrintRecommendations prints each player's suggested primary and secondary
// role.
func PrintRecommendations(w io.Writer, recs []aggregator.Recommendation) {
	table := newTable(w)
	table.Header("PLAYER", "PRIMARY", "SCORE", "SECONDARY", "SCORE", "BEST HERO")
	for _, r := range recs {
		pScore, sScore := "—", "—"
		if r.Primary != nil {
			pScore = fmt.Sprintf("%.1f", r.PrimaryScore)
		}
		if r.Secondary != nil {
			sScore = fmt.Sprintf("%.1f", r.SecondaryScore)
		}
		best := "—"
		if r.BestHero != "" {
			best = r.BestHero
		}
		table.Append(r.Player, roleOrDash(r.Primary), pScore, roleOrDash(r.Secondary), sScore, best)
	}
	table.Render()
}
