package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/gamenight/internal/config"
	"github.com/lox/gamenight/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

// loadConfig reads and validates the config file, then applies the log level
func loadConfig(cli *CLI, logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cli.LogLevel != "" {
		cfg.Table.LogLevel = cli.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.Table.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	logger.Debug("config loaded", "file", cli.Config, "table", cfg.Table.Name)
	return cfg, nil
}

func parseHoles(args []string) ([]poker.Hole, error) {
	holes := make([]poker.Hole, 0, len(args))
	for i, arg := range args {
		hole, err := poker.ParseHole(arg)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		holes = append(holes, hole)
	}
	return holes, nil
}

func formatCards(cards []poker.Card) string {
	strs := make([]string, len(cards))
	for i, c := range cards {
		strs[i] = c.String()
	}
	return strings.Join(strs, " ")
}
