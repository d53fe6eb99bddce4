// Package main seeds the item catalog with sample data for local
// development. It is idempotent: re-running it leaves existing rows alone.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sample catalog items, keyed by fixed UUIDs so re-seeding is stable.
var items = []struct {
	id          string
	title       string
	description string
}{
	{"0d1f7f62-4f3e-4f75-9a0a-3d3c6a1b0001", "Heart Rate Dataset", "Anonymized heart rate measurements, 2019-2023"},
	{"0d1f7f62-4f3e-4f75-9a0a-3d3c6a1b0002", "Genome Reference Panel", "Reference panel for imputation studies"},
	{"0d1f7f62-4f3e-4f75-9a0a-3d3c6a1b0003", "Clinical Trial Registry", "Metadata for registered interventional trials"},
	{"0d1f7f62-4f3e-4f75-9a0a-3d3c6a1b0004", "Imaging Cohort", "De-identified MRI scans with annotations"},
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	const q = `
		INSERT INTO items (id, title, description)
		VALUES (@id, @title, @description)
		ON CONFLICT (id) DO NOTHING`

	for _, item := range items {
		args := pgx.NamedArgs{
			"id":          uuid.MustParse(item.id),
			"title":       item.title,
			"description": item.description,
		}
		if _, err := pool.Exec(ctx, q, args); err != nil {
			slog.Error("failed to seed item", "title", item.title, "error", err)
			os.Exit(1)
		}
		slog.Info("seeded item", "title", item.title)
	}
}
