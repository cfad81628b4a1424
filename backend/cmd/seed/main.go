// Seeds a development database with a demo user and a few recipes.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"pentacook/backend/internal/auth"
	"pentacook/backend/internal/graph"
	"pentacook/backend/internal/recipes"
	"pentacook/backend/internal/users"
	"pentacook/backend/pkg/config"
	"pentacook/backend/pkg/logger"
)

func main() {
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	store := graph.NewStore(driver)

	hash, err := auth.HashPassword("demo-password-1")
	if err != nil {
		log.Fatal("Failed to hash demo password", zap.Error(err))
	}
	demo := graph.User{
		ID:           uuid.New().String(),
		Username:     "demo",
		Email:        "demo@example.com",
		Role:         users.DefaultRole,
		PasswordHash: hash,
	}
	if err := store.CreateUser(ctx, demo); err != nil {
		log.Fatal("Failed to create demo user", zap.Error(err))
	}
	log.Info("Demo user created", zap.String("id", demo.ID))

	identity := auth.Identity{UserID: demo.ID, Username: demo.Username}
	service := recipes.NewService(store, 0)

	seedRecipes := []graph.Recipe{
		{
			Name:     "Tortilla de patatas",
			Public:   true,
			Steps:    []string{"Peel and slice the potatoes", "Fry gently in olive oil", "Beat the eggs and combine", "Set in the pan and flip once"},
			Tipo:     "main",
			Calories: 450, Carbohydrates: 32, Fat: 28, Protein: 15,
			Servings: "4", MealType: "dinner", Time: "45m",
			Ingredients: []graph.Ingredient{
				{Name: "Potato", Tipo: "vegetable", Amount: "600g"},
				{Name: "Egg", Tipo: "protein", Amount: "6"},
				{Name: "Olive oil", Tipo: "fat", Amount: "200ml"},
			},
		},
		{
			Name:     "Overnight oats",
			Public:   false,
			Steps:    []string{"Combine oats and milk", "Refrigerate overnight", "Top with fruit"},
			Tipo:     "breakfast",
			Calories: 320, Carbohydrates: 48, Fat: 9, Protein: 12,
			Servings: "1", MealType: "breakfast", Time: "5m",
			Ingredients: []graph.Ingredient{
				{Name: "Oats", Tipo: "grain", Amount: "80g"},
				{Name: "Milk", Tipo: "dairy", Amount: "200ml"},
			},
		},
	}

	for _, r := range seedRecipes {
		id, err := service.Create(ctx, identity, r)
		if err != nil {
			log.Fatal("Failed to seed recipe", zap.String("name", r.Name), zap.Error(err))
		}
		log.Info("Recipe seeded", zap.String("id", id), zap.String("name", r.Name))
	}

	log.Info("Seed finished", zap.Time("at", time.Now()))
}
