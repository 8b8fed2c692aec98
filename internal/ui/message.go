package ui

import (
	"github.com/duskthistle/swipereel/internal/models"
	"github.com/duskthistle/swipereel/internal/tasks"
)

type categoriesFetchedMsg struct {
	categories []models.Category
	err        error
}

type categoryCreatedMsg struct {
	category *models.Category
	err      error
}

// reportMsg carries one reconciliation pass from the background poller.
type reportMsg tasks.ReconcileReport

// pollerStoppedMsg signals that the poller closed its report channel.
type pollerStoppedMsg struct{}

// uploadProgress is a single transfer progress sample.
type uploadProgress struct {
	sent  int64
	total int64
}

type uploadProgressMsg uploadProgress

type uploadDoneMsg struct {
	video *models.Video
	err   error
}

type saveResultMsg struct {
	err error
}
