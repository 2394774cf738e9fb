package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/gamenight/internal/randutil"
	"github.com/lox/gamenight/internal/session"
)

// DealCmd plays one or more hands from deal to showdown
type DealCmd struct {
	Players []string `short:"p" help:"Player names in seat order (defaults to config players)"`
	Hands   int      `short:"n" default:"1" help:"Number of hands to deal"`
	Seed    int64    `help:"Random seed for reproducible deals (0 = config or time based)"`
}

func (cmd *DealCmd) Run(cli *CLI, logger *log.Logger) error {
	cfg, err := loadConfig(cli, logger)
	if err != nil {
		return err
	}

	players := cmd.Players
	if len(players) == 0 {
		players = cfg.PlayerNames()
	}
	if len(players) < 2 {
		return errors.New("deal needs at least two players (use --players or player blocks in config)")
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	seed = randutil.Seed(seed)
	logger.Debug("dealing", "players", len(players), "seed", seed)

	s, err := session.New(players,
		session.WithLogger(logger),
		session.WithRand(randutil.New(seed)),
		session.WithTrials(cfg.Table.EquityTrials),
	)
	if err != nil {
		return err
	}

	for hand := 0; hand < max(cmd.Hands, 1); hand++ {
		if err := playHand(s); err != nil {
			return err
		}
	}
	return nil
}

func playHand(s *session.Session) error {
	players := s.Players()
	snap, err := s.Deal()
	if err != nil {
		return err
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("Hand #%d", s.HandNumber())))

	for {
		label := strings.ToUpper(snap.Stage.String())
		if len(snap.Board) > 0 {
			label += "  " + formatCards(snap.Board)
		}
		fmt.Println(categoryStyle.Render(label))
		if snap.Equity != nil {
			for i, hole := range s.Holes() {
				fmt.Printf("  %-12s %s  %5.1f%%\n", players[i], handStyle.Render(hole.String()), snap.Equity.Rounded()[i])
			}
		}
		if snap.Stage == session.River {
			break
		}
		if snap, err = s.Reveal(); err != nil {
			return err
		}
	}

	sd, err := s.Showdown()
	if err != nil {
		return err
	}
	if sd.Split() {
		names := make([]string, len(sd.Ties))
		for i, idx := range sd.Ties {
			names[i] = players[idx]
		}
		fmt.Printf("%s %s split with %s\n\n", winStyle.Render("Split:"), strings.Join(names, ", "), sd.Hand.Name())
		return nil
	}
	fmt.Printf("%s %s wins with %s [%s]\n\n", winStyle.Render("Winner:"), players[sd.Index], sd.Hand.Name(), formatCards(sd.Hand.Cards[:]))
	return nil
}
