// Command migrations manages the schema of the local activity log.
//
//	migrations up       apply every pending migration
//	migrations down     roll back the latest migration
//	migrations reset    roll back every migration
//	migrations status   list migrations and when they were applied
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/vncsmyrnk/dayfinder/internal/adapters/repository/sqlstore"
	"github.com/vncsmyrnk/dayfinder/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("a command is required: up, down, reset or status.")
	}
	command := os.Args[1]

	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlstore.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	provider, err := sqlstore.NewProvider(db, cfg.DatabaseType)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(ctx, provider, command); err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func run(ctx context.Context, provider *goose.Provider, command string) error {
	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		if len(results) == 0 {
			fmt.Println("no pending migrations")
		}
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("rolled back %s\n", result.Source.Path)
	case "reset":
		results, err := provider.DownTo(ctx, 0)
		if err != nil {
			return err
		}
		fmt.Printf("rolled back %d migration(s)\n", len(results))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-40s %s\n", s.Source.Path, applied)
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}
