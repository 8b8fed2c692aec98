package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/duskthistle/swipereel/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF5F56", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	card  lipgloss.Style
	faint lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t)).
			Padding(1, 2),
		faint: NewStyle(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

var stateStyles = map[models.State]lipgloss.Style{
	models.StateUploaded:         NewEm("#626262"),
	models.StateProcessing:       NewEm("#FFA500"),
	models.StateProcessed:        NewBold("#04B575"),
	models.StateAwaitingCategory: NewBold("#7D56F4"),
	models.StateUploading:        NewStyle("#FFA500"),
	models.StateCompleted:        NewBold("#04B575"),
	models.StateFailed:           NewBold("#FF5F56"),
	models.StateDiscarded:        NewStyle("#626262"),
}

// stateBadge renders a colored label for a video's pipeline state.
func stateBadge(s models.State) string {
	style, ok := stateStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}
