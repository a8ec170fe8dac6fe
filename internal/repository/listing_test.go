package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propertyapi/internal/model"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		existing []model.Listing
		want     int
	}{
		{name: "empty store starts at one", existing: nil, want: 1},
		{name: "single listing", existing: []model.Listing{{ID: 1}}, want: 2},
		{name: "gaps use the max", existing: []model.Listing{{ID: 3}, {ID: 7}, {ID: 2}}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.existing))
		})
	}
}
