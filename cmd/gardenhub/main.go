package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gardenhub-dev/gardenhub/db"
	"github.com/gardenhub-dev/gardenhub/internal/auth"
	"github.com/gardenhub-dev/gardenhub/internal/handlers"
	"github.com/gardenhub-dev/gardenhub/internal/mailer"
	"github.com/gardenhub-dev/gardenhub/internal/notify"
	"github.com/gardenhub-dev/gardenhub/internal/router"
	"github.com/gardenhub-dev/gardenhub/internal/scheduler"
	"github.com/gardenhub-dev/gardenhub/internal/store"
	"github.com/gardenhub-dev/gardenhub/internal/workflow"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedDatabase(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	s := store.NewStore(db.DB)
	notifier := notify.NewNotifier(s, mailer.NewFromEnv())
	wf := workflow.NewService(s, notifier)

	sched := scheduler.New(s, notifier)
	sched.Start()
	defer sched.Stop()

	h := handlers.New(s, wf, notifier)
	r := router.NewRouter(h, s)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
