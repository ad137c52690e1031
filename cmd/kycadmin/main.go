// Command kycadmin is the operator tool that advances a KYC record's
// approval state. The intake path never writes the approval flag; every
// transition comes through here (or an equivalent external actor).
//
// Usage:
//
//	kycadmin list
//	kycadmin approve <clerkId> <state>
//
// where <state> is one of 0 (pending), 1 (approved), 2 (under review),
// 3 (rejected).
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"veridian/internal/config"
	"veridian/internal/models"
	"veridian/internal/repositories"
)

func main() {
	config.LoadEnv()

	if len(os.Args) < 2 {
		usage()
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	repo := repositories.NewKYCRepository(repositories.DB, repositories.CacheService)
	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		records, err := repo.ListAll(ctx)
		if err != nil {
			log.Fatalf("Failed to list records: %v", err)
		}
		for _, r := range records {
			fmt.Printf("%-32s account=%s approve=%s balance=%s applied=%s\n",
				r.ClerkID, r.Account, r.Approve, r.Balance.StringFixed(2), r.Applied)
		}

	case "approve":
		if len(os.Args) != 4 {
			usage()
		}
		clerkID := os.Args[2]
		state, err := models.ParseApprovalState(os.Args[3])
		if err != nil {
			log.Fatalf("Invalid approval state: %v", err)
		}
		if err := repo.SetApproval(ctx, clerkID, state); err != nil {
			log.Fatalf("Failed to set approval for %s: %v", clerkID, err)
		}
		log.Printf("✅ %s is now in state %s", clerkID, state)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kycadmin list | kycadmin approve <clerkId> <state>")
	os.Exit(2)
}
