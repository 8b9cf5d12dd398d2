package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/deck"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/equity"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/fileutil"
	"github.com/stealthazblondguy1981/PokerStudTrainer/internal/statistics"
)

type CLI struct {
	Hands   []string `arg:"" help:"Player hands in format 'AcKd' ('??' for unknown)" required:""`
	Board   string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Dead    string   `short:"d" help:"Dead cards removed from play"`
	Trials  int      `short:"n" default:"100000" help:"Number of Monte Carlo trials"`
	Workers int      `short:"w" default:"1" help:"Worker goroutines (1 = deterministic reference stream)"`
	Seed    *int64   `help:"Random seed for reproducible results"`
	Curve   bool     `short:"c" help:"Sweep opponent counts 1-8 for the first hand instead"`
	Output  string   `short:"o" help:"Write results as JSON to this file" type:"path"`
	Verbose bool     `short:"v" help:"Verbose logging"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	marginStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level := log.WarnLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}

	players, err := parsePlayers(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	board, err := deck.ParseCards(cli.Board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
		ctx.Exit(1)
	}
	dead, err := deck.ParseCards(cli.Dead)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing dead cards: %v\n", err)
		ctx.Exit(1)
	}

	if cli.Curve {
		if err := runCurve(players, cli.Trials, seed, cli.Output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			ctx.Exit(1)
		}
		return
	}

	cfg := equity.Config{
		Trials:  cli.Trials,
		Seed:    seed,
		Workers: cli.Workers,
		Logger:  logger,
	}

	start := time.Now()
	result, err := equity.Simulate(context.Background(), players, board, dead, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}
	duration := time.Since(start)

	if result.Trials == 0 {
		fmt.Fprintln(os.Stderr, "Not enough cards left in the deck for that deal")
		ctx.Exit(1)
	}

	displayResults(players, board, result, duration)

	if cli.Output != "" {
		if err := writeResultJSON(cli.Output, players, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", cli.Output, err)
			ctx.Exit(1)
		}
	}
}

// parsePlayers turns hand arguments into simulation players. "??" (or "-")
// marks a player with fully unknown hole cards.
func parsePlayers(handStrings []string) ([]equity.Player, error) {
	players := make([]equity.Player, 0, len(handStrings))
	for i, handStr := range handStrings {
		handStr = strings.TrimSpace(handStr)
		p := equity.Player{Name: fmt.Sprintf("hand %d", i+1), Active: true, Hero: i == 0}

		if handStr != "??" && handStr != "-" {
			hole, err := deck.ParseCards(handStr)
			if err != nil {
				return nil, fmt.Errorf("hand %d: %w", i+1, err)
			}
			if len(hole) > 2 {
				return nil, fmt.Errorf("hand %d: must contain at most 2 cards, got %d", i+1, len(hole))
			}
			p.Hole = hole
			p.Name = handStr
		}
		players = append(players, p)
	}
	return players, nil
}

func runCurve(players []equity.Player, trials int, seed int64, output string) error {
	if len(players) == 0 || len(players[0].Hole) != 2 {
		return fmt.Errorf("curve mode needs a fully known first hand")
	}

	hero := [2]deck.Card{players[0].Hole[0], players[0].Hole[1]}
	points, err := equity.Curve(context.Background(), hero, equity.MaxCurveOpponents, trials, seed)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("equity curve for %s%s", hero[0], hero[1])
	if pct, err := deck.StartingHandPercentile(hero[0], hero[1]); err == nil {
		title += fmt.Sprintf(" (%s, top %.0f%%)", deck.StartingHandKey(hero[0], hero[1]), (1-pct)*100)
	}
	fmt.Printf("%s\n\n", headerStyle.Render(title))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render("opponents"), headerStyle.Render("equity"))
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%s\n", p.Opponents, winStyle.Render(fmt.Sprintf("%.1f%%", p.EquityPct)))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if output != "" {
		data, err := json.MarshalIndent(points, "", "  ")
		if err != nil {
			return err
		}
		return fileutil.WriteFileAtomic(output, append(data, '\n'), 0o644)
	}
	return nil
}

// handReport mirrors one row of the results table for JSON output.
type handReport struct {
	Hand      string  `json:"hand"`
	Wins      int     `json:"wins"`
	Ties      int     `json:"ties"`
	WinPct    float64 `json:"win_pct"`
	TiePct    float64 `json:"tie_pct"`
	MarginPct float64 `json:"margin_pct"`
}

func writeResultJSON(path string, players []equity.Player, result equity.Result) error {
	report := struct {
		Trials int          `json:"trials"`
		Hands  []handReport `json:"hands"`
	}{Trials: result.Trials, Hands: make([]handReport, len(players))}

	for i, p := range players {
		prop := statistics.Proportion{Successes: result.Wins[i], Trials: result.Trials}
		report.Hands[i] = handReport{
			Hand:      p.Name,
			Wins:      result.Wins[i],
			Ties:      result.Ties[i],
			WinPct:    float64(result.Wins[i]) / float64(result.Trials) * 100,
			TiePct:    float64(result.Ties[i]) / float64(result.Trials) * 100,
			MarginPct: prop.MarginPct(),
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

func displayResults(players []equity.Player, board []deck.Card, result equity.Result, duration time.Duration) {
	if len(board) > 0 {
		fmt.Printf("%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("95% margin"))

	for i, p := range players {
		winPct := float64(result.Wins[i]) / float64(result.Trials) * 100
		tiePct := float64(result.Ties[i]) / float64(result.Trials) * 100
		prop := statistics.Proportion{Successes: result.Wins[i], Trials: result.Trials}

		name := p.Name
		if len(p.Hole) > 0 {
			name = formatCards(p.Hole)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			handStyle.Render(name),
			winStyle.Render(fmt.Sprintf("%.1f%%", winPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", tiePct)),
			marginStyle.Render(fmt.Sprintf("±%.2f%%", prop.MarginPct())))
	}
	w.Flush()

	fmt.Printf("\n%d trials in %v\n", result.Trials, duration.Truncate(time.Millisecond))
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
