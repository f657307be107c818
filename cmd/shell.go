package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/rivalstats/internal/aggregator"
	"github.com/pable/rivalstats/internal/herofilter"
	"github.com/pable/rivalstats/internal/model"
	"github.com/pable/rivalstats/internal/ranking"
	"github.com/pable/rivalstats/internal/report"
	"github.com/pable/rivalstats/internal/selection"
	"github.com/pable/rivalstats/internal/snapshot"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long: `Load the snapshot once and browse it interactively. The session keeps a
role filter, the selected composition and the open leaderboard category.
Type 'help' for available commands.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

// shellSession is the data one shell works on. snap is nil after a failed
// reload, matching the store, until a later reload succeeds.
type shellSession struct {
	store *snapshot.Store
	snap  *model.Snapshot
	state *selection.State
}

func (s *shellSession) reload(ctx context.Context) error {
	fresh, err := s.store.Reload(ctx)
	if err != nil {
		s.snap = nil
		return err
	}
	s.snap = fresh
	return nil
}

// viewCommands read the snapshot and are refused while none is loaded.
var viewCommands = map[string]bool{
	"summary": true, "players": true, "recs": true, "player": true, "hero": true,
	"heroes": true, "comp": true, "next": true, "prev": true, "lb": true,
}

func runShell(cmd *cobra.Command, _ []string) error {
	store, snap, err := loadSnapshot(cmd.Context())
	if err != nil {
		return err
	}
	sess := &shellSession{store: store, snap: snap, state: selection.Default()}

	cGreeting.Println("rivalstats shell")
	cMuted.Printf("%d players, %d compositions, %d heroes from %s\n",
		len(sess.snap.Players), len(sess.snap.Compositions), len(sess.snap.HeroStats), cfg.Snapshot)
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("rivalstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		name, args := tokens[0], tokens[1:]

		if viewCommands[name] && sess.snap == nil {
			cWarn.Fprintln(os.Stderr, "no snapshot loaded (last reload failed), run 'reload'")
			continue
		}

		switch name {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "summary":
			report.PrintSquadSummary(os.Stdout, aggregator.SquadSummary(sess.snap))
			report.PrintRoleCoverage(os.Stdout, aggregator.CoverageShare(sess.snap.RoleCoverage, len(sess.snap.Players)))
		case "players":
			report.PrintWinRateRanking(os.Stdout, ranking.WinRateRanking(sess.snap.Players))
		case "recs":
			report.PrintRecommendations(os.Stdout, aggregator.RoleRecommendations(sess.snap.Players))
		case "player":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: player <name>")
				continue
			}
			if p, ok := snapshot.FindPlayer(sess.snap, strings.Join(args, " ")); ok {
				report.PrintPlayerCard(os.Stdout, *p)
			} else {
				cWarn.Fprintf(os.Stderr, "no player matching %q\n", strings.Join(args, " "))
			}
		case "hero":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: hero <name>")
				continue
			}
			if h, ok := snapshot.FindHero(sess.snap, strings.Join(args, " ")); ok {
				report.PrintHeroPlayers(os.Stdout, *h)
			} else {
				cWarn.Fprintf(os.Stderr, "no hero matching %q\n", strings.Join(args, " "))
			}
		case "roles":
			shellRoles(sess.state)
		case "toggle":
			if len(args) == 0 {
				cError.Fprintln(os.Stderr, "usage: toggle <vanguard|duelist|strategist>")
				continue
			}
			r, err := model.ParseRole(strings.ToLower(args[0]))
			if err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			sess.state.ToggleRole(r)
			shellRoles(sess.state)
		case "heroes":
			shellHeroes(sess.snap, sess.state)
		case "comp":
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					cError.Fprintf(os.Stderr, "invalid composition number %q\n", args[0])
					continue
				}
				sess.state.SetCompositionIndex(n - 1)
			}
			shellComp(sess.snap, sess.state)
		case "next":
			sess.state.SetCompositionIndex(sess.state.CompositionIndex + 1)
			shellComp(sess.snap, sess.state)
		case "prev":
			sess.state.SetCompositionIndex(sess.state.CompositionIndex - 1)
			shellComp(sess.snap, sess.state)
		case "lb":
			if len(args) > 0 {
				sess.state.SetCategory(args[0])
			}
			shellLeaderboard(sess.snap, sess.state)
		case "reload":
			if err := sess.reload(cmd.Context()); err != nil {
				cError.Fprintf(os.Stderr, "error: %v\n", err)
				cWarn.Fprintln(os.Stderr, "snapshot cleared; views are unavailable until a reload succeeds")
				continue
			}
			cMuted.Println("snapshot reloaded")
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", name)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"summary", "squad totals and role coverage"},
		{"players", "players ranked by win rate"},
		{"recs", "recommended roles per player"},
		{"player <name>", "one player's profile"},
		{"hero <name>", "who plays a hero best"},
		{"roles", "show the active role filter"},
		{"toggle <role>", "flip a role in the filter"},
		{"heroes", "top heroes for the active roles"},
		{"comp [n]", "show composition n (or the selected one)"},
		{"next / prev", "step through compositions"},
		{"lb [category]", "leaderboard: winRate, kda, damage, healing, blocked"},
		{"reload", "fetch the snapshot again"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-20s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellRoles(state *selection.State) {
	for _, r := range model.Roles {
		mark := "[ ]"
		if state.ActiveRoles.Has(r) {
			mark = "[x]"
		}
		fmt.Fprintf(os.Stdout, "  %s %s\n", mark, r.Title())
	}
}

func shellHeroes(snap *model.Snapshot, state *selection.State) {
	heroes := herofilter.ChartHeroes(snap.HeroStats, state.ActiveRoles)
	cHeader.Fprintf(os.Stdout, "\nTop heroes (%s)\n\n", state.ActiveRoles)
	if len(heroes) == 0 {
		cMuted.Println("No heroes for the active roles.")
		return
	}
	report.PrintHeroTable(os.Stdout, heroes)
}

func shellComp(snap *model.Snapshot, state *selection.State) {
	if err := showComposition(snap.Compositions, state.CompositionIndex); err != nil {
		cWarn.Fprintf(os.Stderr, "%v\n", err)
	}
}

func shellLeaderboard(snap *model.Snapshot, state *selection.State) {
	cHeader.Fprintf(os.Stdout, "\n--- %s ---\n\n", state.Category.Title())
	entries := ranking.LeaderboardEntries(snap.Leaderboard, state.Category)
	if len(entries) == 0 {
		cMuted.Println("No entries.")
		return
	}
	report.PrintLeaderboard(os.Stdout, state.Category, entries)
}
