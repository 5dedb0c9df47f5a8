package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"totobot/internal/database"
	"totobot/internal/service"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Массовая загрузка календаря матчей в существующий турнир.
// Формат файла:
//
//	matches:
//	  - date: "15.06.2025"
//	    time: "18:00"
//	    team1: "Спартак"
//	    team2: "Зенит"
type MatchesConfig struct {
	Matches []struct {
		Date  string `yaml:"date"`
		Time  string `yaml:"time"`
		Team1 string `yaml:"team1"`
		Team2 string `yaml:"team2"`
	} `yaml:"matches"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		matchesPath  = flag.String("matches", "configs/matches.yaml", "path to matches.yaml")
		dbPath       = flag.String("db", "./data/totobot.db", "path to sqlite db")
		tournamentID = flag.Int64("tournament", 0, "tournament id")
	)
	flag.Parse()

	if *tournamentID <= 0 {
		return fmt.Errorf("tournament id is required")
	}

	data, err := os.ReadFile(*matchesPath)
	if err != nil {
		return fmt.Errorf("read matches: %w", err)
	}
	var cfg MatchesConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse matches: %w", err)
	}
	if len(cfg.Matches) == 0 {
		return fmt.Errorf("no matches in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog := service.NewCatalogService(db, nil, &logger)

	tournament, err := catalog.GetTournament(ctx, *tournamentID)
	if err != nil {
		return fmt.Errorf("get tournament %d: %w", *tournamentID, err)
	}

	existing, err := db.ListMatches(ctx, tournament.ID)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, m := range existing {
		known[matchKey(m.Date, m.Time, m.Team1, m.Team2)] = true
	}

	created := 0
	skipped := 0
	for _, m := range cfg.Matches {
		if known[matchKey(m.Date, m.Time, m.Team1, m.Team2)] {
			skipped++
			continue
		}
		if _, err = catalog.CreateMatch(ctx, tournament.ID, m.Date, m.Time, m.Team1, m.Team2, 0); err != nil {
			return fmt.Errorf("create %s - %s: %w", m.Team1, m.Team2, err)
		}
		created++
	}

	fmt.Printf("done: tournament=%q created=%d skipped=%d\n", tournament.Name, created, skipped)
	return nil
}

func matchKey(date, matchTime, team1, team2 string) string {
	return fmt.Sprintf("%s|%s|%s|%s", date, matchTime, team1, team2)
}
