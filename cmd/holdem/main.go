package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"

	"holdem-trainer/internal/config"
	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/deck"
	"holdem-trainer/pkg/holdem"
	"holdem-trainer/pkg/strategy"
)

var seed = flag.Int64("seed", 0, "deal deterministically from this seed, overrides the configuration")
var strategyName = flag.String("strategy", "", "how the other players decide, overrides the configuration")

func main() {
	flag.Parse()

	// the table is drawn on stdout, keep the engine logs out of the way
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	cfg := config.Instance()
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	if *strategyName != "" {
		cfg.Game.Strategy = *strategyName
	}

	gen := rng.FromSeed(cfg.Game.Seed)
	provider, err := strategy.New(cfg.Game.Strategy, logger, gen)
	if err != nil {
		pterm.Fatal.Println(err)
	}

	engine, err := holdem.NewEngine(logger, provider, gen, cfg.Game.Options())
	if err != nil {
		pterm.Fatal.Println(err)
	}

	title, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hold", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("'em", pterm.FgDarkGray.ToStyle()),
	).Srender()
	pterm.Print(title)

	state := engine.StartNewGame()
	pterm.Info.Println(state.GameMessage)

	for {
		deal, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Start hand?").WithDefaultValue(true).Show()
		if !deal {
			break
		}

		if err := engine.StartHand(state); err != nil {
			pterm.Error.Println(state.GameMessage)
			again, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Start a new game?").WithDefaultValue(true).Show()
			if !again {
				break
			}

			state = engine.StartNewGame()
			continue
		}

		playHand(engine, state)
	}

	pterm.Println("Thank you for playing...")
}

func playHand(engine *holdem.Engine, state *holdem.GameState) {
	ctx := context.Background()
	seen := 0

	for state.IsBettingRoundActive {
		spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Waiting for the other players ...")
		for {
			acted, err := engine.ProcessNonHumanTurn(ctx, state)
			if err != nil {
				_ = spinner.Stop()
				pterm.Error.Println(err)
				return
			}

			if !acted {
				break
			}
		}
		_ = spinner.Stop()

		seen = printLog(state, seen)
		if !state.IsBettingRoundActive {
			break
		}

		if !state.IsHumanTurn() {
			pterm.Error.Println("nobody can act, abandoning the hand")
			return
		}

		printState(state)
		action, amount := chooseAction(state)
		if err := engine.MakePlayerAction(state, action, amount); err != nil {
			pterm.Error.Println(err)
			return
		}
	}

	printLog(state, seen)
	printState(state)
	pterm.Success.Println(state.GameMessage)
}

func chooseAction(state *holdem.GameState) (holdem.Action, int) {
	view := state.View(state.HumanSeat())

	options := make([]string, len(view.LegalActions))
	byOption := make(map[string]holdem.Action, len(view.LegalActions))
	for i, action := range view.LegalActions {
		option := action.String()
		if action == holdem.Call {
			option = fmt.Sprintf("Call $%d", view.AmountToCall)
		}

		options[i] = option
		byOption[option] = action
	}

	selected, _ := pterm.DefaultInteractiveSelect.WithDefaultText("Select your next action").WithOptions(options).Show()
	action := byOption[selected]
	if action != holdem.Raise {
		return action, 0
	}

	for {
		raw, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText(fmt.Sprintf("Raise by ($%d to $%d)", view.MinRaise, view.MaxRaise)).
			WithDefaultValue(strconv.Itoa(view.MinRaise)).
			Show()

		amount, err := strconv.Atoi(raw)
		if err == nil && amount >= view.MinRaise && amount <= view.MaxRaise {
			return action, amount
		}

		pterm.Error.Printfln("Invalid amount: %s", raw)
	}
}

func printLog(state *holdem.GameState, seen int) int {
	for _, msg := range state.Log[seen:] {
		pterm.Info.Println(msg.Message)
	}

	return len(state.Log)
}

func printState(state *holdem.GameState) {
	view := state.View(state.HumanSeat())

	var others []pterm.Panel
	var human pterm.Panel
	for _, p := range view.Players {
		panel := pterm.Panel{Data: printPlayerInfo(p)}
		if p.IsHuman {
			human = panel
		} else {
			others = append(others, panel)
		}
	}

	board := pterm.Panel{Data: pterm.DefaultBox.WithTitle(view.Phase.String()).Sprintf(
		"%s\nPot: $%d", boardString(view), view.Pot,
	)}

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		others[:len(others)/2],
		others[len(others)/2:],
		{board, human},
	}).Render()
}

func printPlayerInfo(p *holdem.PlayerView) string {
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)

	title := p.Name
	if p.IsDealer {
		title += " (D)"
	}

	var status string
	switch {
	case !p.IsActive:
		status = pterm.Cyan("Sitting out")
		return box.WithTitle(title).Sprint(status)
	case p.HasFolded:
		status = pterm.LightRed("Folded")
	case p.IsAllIn:
		status = pterm.LightYellow("All-in")
	case p.IsWinner:
		status = pterm.LightGreen("Winner")
	default:
		status = pterm.LightGreen("Active")
	}

	hand := "?? ??"
	if len(p.HoleCards) > 0 {
		hand = cardsString(p.HoleCards)
	}

	body := pterm.Sprintf("%s\nBet: $%d\nChips: $%d\n%s", status, p.CurrentBet, p.Chips, pterm.BgGreen.Sprint(hand))
	if p.BestHand != nil {
		body += "\n" + p.BestHand.Description
	}

	return box.WithTitle(title).Sprint(body)
}

func boardString(view *holdem.View) string {
	if len(view.CommunityCards) == 0 {
		return "-"
	}

	return pterm.BgGreen.Sprint(cardsString(view.CommunityCards))
}

func cardsString(cards deck.Hand) string {
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = c.String()
	}

	return strings.Join(s, " ")
}
