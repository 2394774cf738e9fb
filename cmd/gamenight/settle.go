package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/lox/gamenight/internal/fileutil"
	"github.com/lox/gamenight/internal/session"
	"github.com/lox/gamenight/settlement"
)

// SettleCmd computes who pays whom from the player ledger in the config
type SettleCmd struct {
	Ratio float64 `help:"Currency per chip (overrides config currency_ratio)"`
	Out   string  `short:"o" help:"Also write the settlement as JSON to this file"`
}

type settleReport struct {
	Ratio    float64         `json:"ratio"`
	Totals   reportTotals    `json:"totals"`
	Payments []reportPayment `json:"payments"`
	Warning  string          `json:"warning,omitempty"`
}

type reportTotals struct {
	InitialChips int64   `json:"initial_chips"`
	CurrentChips int64   `json:"current_chips"`
	InitialValue float64 `json:"initial_value"`
	CurrentValue float64 `json:"current_value"`
}

type reportPayment struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

func (cmd *SettleCmd) Run(cli *CLI, logger *log.Logger) error {
	cfg, err := loadConfig(cli, logger)
	if err != nil {
		return err
	}
	if len(cfg.Players) == 0 {
		return errors.New("no player blocks found in config")
	}

	ratio := cfg.Table.CurrencyRatio
	if cmd.Ratio != 0 {
		ratio = cmd.Ratio
	}

	positions := cfg.Positions()
	s, err := session.New(cfg.PlayerNames(), session.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := s.Settle(positions, ratio)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("Player")+"\t"+headerStyle.Render("Chips")+"\t"+headerStyle.Render("Net"))
	for _, p := range positions {
		delta := p.NetCents(ratio)
		style := winStyle
		if delta < 0 {
			style = lossStyle
		}
		fmt.Fprintf(w, "%s\t%d → %d\t%s\n", p.Name, p.InitialChips, p.CurrentChips, style.Render(delta.String()))
	}
	fmt.Fprintf(w, "%s\t%d → %d\t%s → %s\n", headerStyle.Render("Total"),
		res.Totals.InitialChips, res.Totals.CurrentChips, res.Totals.InitialValue, res.Totals.CurrentValue)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	if len(res.Payments) == 0 {
		fmt.Println("Nobody owes anything.")
	}
	for _, p := range res.Payments {
		fmt.Println("  " + p.String())
	}
	if res.Warning != nil {
		fmt.Println(warnStyle.Render("Warning: " + res.Warning.Error()))
	}

	if cmd.Out != "" {
		if err := fileutil.WriteJSONAtomic(cmd.Out, newSettleReport(ratio, res)); err != nil {
			return err
		}
		logger.Info("settlement written", "file", cmd.Out)
	}
	return nil
}

func newSettleReport(ratio float64, res *settlement.Result) settleReport {
	r := settleReport{
		Ratio: ratio,
		Totals: reportTotals{
			InitialChips: res.Totals.InitialChips,
			CurrentChips: res.Totals.CurrentChips,
			InitialValue: res.Totals.InitialValue.Float(),
			CurrentValue: res.Totals.CurrentValue.Float(),
		},
		Payments: make([]reportPayment, len(res.Payments)),
	}
	for i, p := range res.Payments {
		r.Payments[i] = reportPayment{From: p.FromName, To: p.ToName, Amount: p.Amount.Float()}
	}
	if res.Warning != nil {
		r.Warning = res.Warning.Error()
	}
	return r
}
