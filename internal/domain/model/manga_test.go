package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Juliorubiodev/inku-go/internal/domain/model"
)

func numbers(chapters []model.Chapter) []int {
	out := make([]int, len(chapters))
	for i, ch := range chapters {
		out[i] = ch.Number
	}
	return out
}

func TestSortChapters_Ascending(t *testing.T) {
	chapters := []model.Chapter{{Number: 10}, {Number: 1}, {Number: 5}}

	model.SortChapters(chapters, model.SortAsc)

	assert.Equal(t, []int{1, 5, 10}, numbers(chapters))
}

func TestSortChapters_Descending(t *testing.T) {
	chapters := []model.Chapter{{Number: 10}, {Number: 1}, {Number: 5}}

	model.SortChapters(chapters, model.SortDesc)

	assert.Equal(t, []int{10, 5, 1}, numbers(chapters))
}

func TestSortChapters_StableOnTies(t *testing.T) {
	chapters := []model.Chapter{
		{ID: "b", Number: 2},
		{ID: "a1", Number: 1},
		{ID: "a2", Number: 1},
	}

	model.SortChapters(chapters, model.SortAsc)

	assert.Equal(t, "a1", chapters[0].ID)
	assert.Equal(t, "a2", chapters[1].ID)
	assert.Equal(t, "b", chapters[2].ID)
}
