package variant_test

import (
	"testing"

	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/dukerupert/vitrine/internal/variant"
	"github.com/stretchr/testify/assert"
)

func TestComputeAxes(t *testing.T) {
	tests := []struct {
		name       string
		variants   []domain.Variant
		wantColors []string
		wantSizes  []string
	}{
		{
			name:       "empty list",
			variants:   nil,
			wantColors: []string{},
			wantSizes:  []string{},
		},
		{
			name: "first seen order with duplicates",
			variants: []domain.Variant{
				{Color: "red", StandardSize: "M"},
				{Color: "blue", StandardSize: "L"},
				{Color: "red", StandardSize: "S"},
				{Color: "green", StandardSize: "M"},
				{Color: "blue", StandardSize: "S"},
			},
			wantColors: []string{"red", "blue", "green"},
			wantSizes:  []string{"M", "L", "S"},
		},
		{
			name: "empty values dropped",
			variants: []domain.Variant{
				{Color: "", StandardSize: "M"},
				{Color: "black", StandardSize: ""},
				{},
			},
			wantColors: []string{"black"},
			wantSizes:  []string{"M"},
		},
		{
			name: "no colors at all",
			variants: []domain.Variant{
				{StandardSize: "40"},
				{StandardSize: "42"},
			},
			wantColors: []string{},
			wantSizes:  []string{"40", "42"},
		},
		{
			name: "no sizes at all",
			variants: []domain.Variant{
				{Color: "white"},
				{Color: "white"},
			},
			wantColors: []string{"white"},
			wantSizes:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axes := variant.ComputeAxes(tt.variants)
			assert.Equal(t, tt.wantColors, axes.Colors)
			assert.Equal(t, tt.wantSizes, axes.Sizes)
			assert.Equal(t, len(tt.wantColors) > 0, axes.HasColors())
			assert.Equal(t, len(tt.wantSizes) > 0, axes.HasSizes())
		})
	}
}

func TestComputeAxes_NoDuplicatesOrEmpties(t *testing.T) {
	colors := []string{"", "red", "blue", "red", "", "blue", "amber"}
	sizes := []string{"S", "", "S", "M", "XL", "", "M"}

	var variants []domain.Variant
	for i := range colors {
		for j := range sizes {
			variants = append(variants, domain.Variant{Color: colors[i], StandardSize: sizes[j]})
		}
	}

	axes := variant.ComputeAxes(variants)

	for _, values := range [][]string{axes.Colors, axes.Sizes} {
		seen := map[string]bool{}
		for _, v := range values {
			assert.NotEmpty(t, v)
			assert.False(t, seen[v], "duplicate axis value %q", v)
			seen[v] = true
		}
	}
	assert.Equal(t, []string{"red", "blue", "amber"}, axes.Colors)
	assert.Equal(t, []string{"S", "M", "XL"}, axes.Sizes)
}

func TestAxes_Membership(t *testing.T) {
	axes := variant.ComputeAxes([]domain.Variant{{Color: "red", StandardSize: "M"}})

	assert.True(t, axes.HasColor("red"))
	assert.False(t, axes.HasColor("blue"))
	assert.False(t, axes.HasColor(""))
	assert.True(t, axes.HasSize("M"))
	assert.False(t, axes.HasSize("L"))
}
