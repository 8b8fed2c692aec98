package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/duskthistle/swipereel/internal/models"
)

var (
	_ list.Item = categoryItem{}
)

// categoryItem wraps [models.Category] to implement [list.Item].
type categoryItem struct {
	category models.Category
}

func (i categoryItem) FilterValue() string { return i.category.Name }
func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string {
	if i.category.Description == "" {
		return "no description"
	}
	return i.category.Description
}
