package main

import (
	"fmt"
	"strings"

	"github.com/lox/gamenight/poker"
)

// EvalCmd classifies seven cards
type EvalCmd struct {
	Cards []string `arg:"" help:"Seven cards, e.g. 'As Ks Qs Js Ts 2c 3d'"`
}

func (cmd *EvalCmd) Run() error {
	cards, err := poker.ParseCards(strings.Join(cmd.Cards, " "))
	if err != nil {
		return err
	}
	if err := poker.CheckDistinct(cards...); err != nil {
		return err
	}
	hand, err := poker.Evaluate(cards)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s\n", categoryStyle.Render(hand.Name()), handStyle.Render(formatCards(hand.Cards[:])))
	return nil
}
