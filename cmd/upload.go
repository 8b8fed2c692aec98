package main

import (
	"context"
	"fmt"

	"github.com/duskthistle/swipereel/internal/queue"
	"github.com/duskthistle/swipereel/internal/shared"
	"github.com/duskthistle/swipereel/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Upload validates and transfers a single media file to the pipeline backend.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a media file is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: backend service not initialized", shared.ErrServiceUnavailable)
	}

	dispatcher := tasks.NewDispatcher(tasks.DispatcherOpts{
		Queue:   queue.New(),
		Service: r.service,
		Upload:  r.config.Upload,
		Logger:  r.logger,
	})

	r.logger.Info("uploading", "path", path)

	var lastPercent int
	video, err := dispatcher.Upload(ctx, path, func(sent, total int64) {
		if total <= 0 {
			return
		}
		percent := int(float64(sent) / float64(total) * 100)
		if percent >= lastPercent+10 {
			lastPercent = percent
			r.logger.Info("upload progress", "percent", percent)
		}
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"id":     video.ID.String(),
			"title":  video.Title,
			"status": string(video.State),
		}, true)
	}

	r.writePlain("✓ Uploaded %s\n", path)
	r.writePlain("  id: %s\n", video.ID)
	r.writePlain("  state: %s\n", video.State)
	return nil
}
