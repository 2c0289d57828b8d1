package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"chirper/app/cache"
	"chirper/app/config"
	"chirper/app/controllers"
	"chirper/app/models"
	"chirper/app/ratelimit"
	"chirper/app/repositories"
	"chirper/app/routes"
	"chirper/app/services"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("chirper version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: chirper <command> [options]
Commands:
  help                 Display this help message.
  version              Show version information.
  serve [options]      Run the microblog API server.
                       Options: -addr, -db, -redis, -redis-password,
                       -redis-db, -directory-url, -authors, -rate-limit,
                       -rate-window, -feed-cache-ttl
`
	fmt.Println(helpText)
}

// serve wires the application and runs the HTTP server.
func serve(args []string) {
	cfg, err := config.Load(args)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	opts := badger.DefaultOptions(cfg.DBPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	counters := buildCounterStore(cfg)
	directory, err := buildDirectory(cfg)
	if err != nil {
		log.Fatalf("Failed to build identity directory: %v", err)
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	admitter := ratelimit.NewAdmitter(counters, cfg.RateLimit, cfg.RateWindow)
	feedCache := cache.NewFeedCache(cfg.FeedCacheTTL)

	postService := services.NewPostService(postRepo, admitter, feedCache)
	feedService := services.NewFeedService(postRepo, directory, feedCache)

	postController := controllers.NewPostController(postService, feedService)
	router := routes.SetupRoutes(postController, counters)

	log.Printf("Starting chirper on %s (limit %d per %s)", cfg.Addr, cfg.RateLimit, cfg.RateWindow)
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// buildCounterStore picks Redis when configured so every instance
// shares one logical limiter, otherwise an in-process store.
func buildCounterStore(cfg *config.Config) repositories.CounterStore {
	if cfg.RedisAddr == "" {
		log.Println("No redis address configured; rate limiter is process-local")
		return repositories.NewMemoryCounterStore()
	}
	return repositories.NewRedisCounterStore(repositories.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
}

// buildDirectory picks the remote identity directory when configured,
// otherwise a static directory seeded from the -authors file.
func buildDirectory(cfg *config.Config) (repositories.UserDirectory, error) {
	if cfg.DirectoryURL != "" {
		return repositories.NewHTTPUserDirectory(cfg.DirectoryURL), nil
	}

	var authors []models.Author
	if cfg.AuthorsFile != "" {
		data, err := os.ReadFile(cfg.AuthorsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read authors file: %v", err)
		}
		if err := json.Unmarshal(data, &authors); err != nil {
			return nil, fmt.Errorf("failed to parse authors file: %v", err)
		}
	}
	return repositories.NewStaticUserDirectory(authors), nil
}
