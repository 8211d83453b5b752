// Seed applies the schema and loads the destination country catalog.
// Safe to run repeatedly; existing country codes are skipped.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripbook/internal/config"
	"tripbook/internal/models"
)

const schemaPath = "scripts/schema.sql"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	log.Println("Schema applied")

	seeded := 0
	for _, c := range seedCountries() {
		tag, err := pool.Exec(ctx,
			`INSERT INTO countries (id, name, code, capital, currency, language, description, image,
                daily_budget, budget_currency, best_time_to_visit, popular_attractions,
                visa_required, safety_level, created_at, updated_at)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
             ON CONFLICT (code) DO NOTHING`,
			uuid.New(), c.Name, c.Code, c.Capital, c.Currency, c.Language, c.Description, c.Image,
			c.DailyBudget, c.BudgetCurrency, c.BestTimeToVisit, c.PopularAttractions,
			c.VisaRequired, c.SafetyLevel)
		if err != nil {
			log.Fatalf("seed %s: %v", c.Name, err)
		}
		seeded += int(tag.RowsAffected())
	}
	log.Printf("Seeded %d countries", seeded)
}

func seedCountries() []models.Country {
	return []models.Country{
		{
			Name: "France", Code: "FR", Capital: "Paris", Currency: "EUR", Language: "French",
			Description:        "Home to world-class art, cuisine, and the most visited city on Earth.",
			Image:              "https://images.unsplash.com/photo-1502602898657-3e91760cbb34",
			DailyBudget:        120, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"April", "May", "June", "September", "October"},
			PopularAttractions: []string{"Eiffel Tower", "Louvre Museum", "Palace of Versailles", "Mont Saint-Michel"},
			VisaRequired:       false, SafetyLevel: models.SafetySafe,
		},
		{
			Name: "Japan", Code: "JP", Capital: "Tokyo", Currency: "JPY", Language: "Japanese",
			Description:        "A striking blend of ancient temples and neon-lit cities.",
			Image:              "https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e",
			DailyBudget:        100, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"March", "April", "October", "November"},
			PopularAttractions: []string{"Mount Fuji", "Fushimi Inari Shrine", "Tokyo Skytree", "Arashiyama Bamboo Grove"},
			VisaRequired:       false, SafetyLevel: models.SafetyVerySafe,
		},
		{
			Name: "Italy", Code: "IT", Capital: "Rome", Currency: "EUR", Language: "Italian",
			Description:        "Renaissance art, Roman ruins, and the world's favorite food.",
			Image:              "https://images.unsplash.com/photo-1515542622106-78bda8ba0e5b",
			DailyBudget:        110, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"April", "May", "September", "October"},
			PopularAttractions: []string{"Colosseum", "Venice Canals", "Amalfi Coast", "Uffizi Gallery"},
			VisaRequired:       false, SafetyLevel: models.SafetySafe,
		},
		{
			Name: "Thailand", Code: "TH", Capital: "Bangkok", Currency: "THB", Language: "Thai",
			Description:        "Golden temples, island beaches, and legendary street food.",
			Image:              "https://images.unsplash.com/photo-1552465011-b4e21bf6e79a",
			DailyBudget:        50, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"November", "December", "January", "February"},
			PopularAttractions: []string{"Grand Palace", "Phi Phi Islands", "Wat Arun", "Chiang Mai Old City"},
			VisaRequired:       false, SafetyLevel: models.SafetyModerate,
		},
		{
			Name: "United States", Code: "US", Capital: "Washington, D.C.", Currency: "USD", Language: "English",
			Description:        "Vast national parks and iconic cities coast to coast.",
			Image:              "https://images.unsplash.com/photo-1485738422979-f5c462d49f74",
			DailyBudget:        150, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"May", "June", "September", "October"},
			PopularAttractions: []string{"Grand Canyon", "Statue of Liberty", "Yellowstone", "Golden Gate Bridge"},
			VisaRequired:       true, SafetyLevel: models.SafetySafe,
		},
		{
			Name: "Australia", Code: "AU", Capital: "Canberra", Currency: "AUD", Language: "English",
			Description:        "Reef, outback, and laid-back coastal cities.",
			Image:              "https://images.unsplash.com/photo-1523482580672-f109ba8cb9be",
			DailyBudget:        130, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"September", "October", "November", "March"},
			PopularAttractions: []string{"Great Barrier Reef", "Sydney Opera House", "Uluru", "Great Ocean Road"},
			VisaRequired:       true, SafetyLevel: models.SafetyVerySafe,
		},
		{
			Name: "Canada", Code: "CA", Capital: "Ottawa", Currency: "CAD", Language: "English",
			Description:        "Mountain lakes, cosmopolitan cities, and wide-open wilderness.",
			Image:              "https://images.unsplash.com/photo-1503614472-8c93d56e92ce",
			DailyBudget:        100, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"June", "July", "August", "September"},
			PopularAttractions: []string{"Banff National Park", "Niagara Falls", "Old Quebec", "Stanley Park"},
			VisaRequired:       true, SafetyLevel: models.SafetyVerySafe,
		},
		{
			Name: "Spain", Code: "ES", Capital: "Madrid", Currency: "EUR", Language: "Spanish",
			Description:        "Flamenco, Gaudi, and sun-soaked Mediterranean coastline.",
			Image:              "https://images.unsplash.com/photo-1543783207-ec64e4d95325",
			DailyBudget:        80, BudgetCurrency: "USD",
			BestTimeToVisit:    []string{"April", "May", "June", "September", "October"},
			PopularAttractions: []string{"Sagrada Familia", "Alhambra", "Park Guell", "Plaza Mayor"},
			VisaRequired:       false, SafetyLevel: models.SafetySafe,
		},
	}
}
