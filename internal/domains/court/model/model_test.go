package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtbook/internal/domains/court/model"
)

func TestBracketFor(t *testing.T) {
	tests := []struct {
		name         string
		pricePerHour int64
		want         string
	}{
		{name: "well below mid", pricePerHour: 50000, want: model.PriceBracketLow},
		{name: "just below mid", pricePerHour: 79999, want: model.PriceBracketLow},
		{name: "mid lower boundary", pricePerHour: 80000, want: model.PriceBracketMid},
		{name: "inside mid", pricePerHour: 90000, want: model.PriceBracketMid},
		{name: "mid upper boundary", pricePerHour: 100000, want: model.PriceBracketMid},
		{name: "just above mid", pricePerHour: 100001, want: model.PriceBracketHigh},
		{name: "well above mid", pricePerHour: 250000, want: model.PriceBracketHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.BracketFor(tt.pricePerHour))
		})
	}
}
