package main

import (
	"context"
	"fmt"

	"github.com/duskthistle/swipereel/internal/formatter"
	"github.com/duskthistle/swipereel/internal/repositories"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recent review decisions from the local log.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := repositories.NewHistoryRepository(db).Recent(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		r.writePlain("No decisions recorded yet.\n")
		return nil
	}

	data, err := formatter.ExportToText(entries)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// HistoryExport writes review decisions to a file in the requested format.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := repositories.NewHistoryRepository(db).Recent(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	path, err := formatter.WriteExport(entries, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d decisions to %s\n", len(entries), path)
	return nil
}
