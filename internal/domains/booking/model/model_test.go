package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"courtbook/internal/domains/booking/model"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    model.Status
		wantErr bool
	}{
		{name: "pending", raw: "PENDING", want: model.StatusPending},
		{name: "waiting", raw: "WAITING", want: model.StatusWaiting},
		{name: "confirmed", raw: "CONFIRMED", want: model.StatusConfirmed},
		{name: "cancelled", raw: "CANCELLED", want: model.StatusCancelled},
		{name: "lowercase rejected", raw: "pending", wantErr: true},
		{name: "unknown rejected", raw: "APPROVED", wantErr: true},
		{name: "empty rejected", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseStatus(tt.raw)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		to   model.Status
		want bool
	}{
		{name: "pending to waiting", from: model.StatusPending, to: model.StatusWaiting, want: true},
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed, want: true},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled, want: true},
		{name: "waiting to confirmed", from: model.StatusWaiting, to: model.StatusConfirmed, want: true},
		{name: "waiting to cancelled", from: model.StatusWaiting, to: model.StatusCancelled, want: true},
		{name: "waiting to pending rejected", from: model.StatusWaiting, to: model.StatusPending, want: false},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled, want: true},
		{name: "confirmed to waiting rejected", from: model.StatusConfirmed, to: model.StatusWaiting, want: false},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusPending, want: false},
		{name: "cancelled to confirmed rejected", from: model.StatusCancelled, to: model.StatusConfirmed, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, model.StatusCancelled.Terminal())
	assert.False(t, model.StatusPending.Terminal())
	assert.False(t, model.StatusWaiting.Terminal())
	assert.False(t, model.StatusConfirmed.Terminal())
}

func TestTotalPrice(t *testing.T) {
	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		duration     time.Duration
		pricePerHour int64
		want         int64
	}{
		{name: "one hour", duration: time.Hour, pricePerHour: 90000, want: 90000},
		{name: "half hour", duration: 30 * time.Minute, pricePerHour: 90000, want: 45000},
		{name: "ninety minutes", duration: 90 * time.Minute, pricePerHour: 100000, want: 150000},
		{name: "two hours", duration: 2 * time.Hour, pricePerHour: 75000, want: 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.TotalPrice(base, base.Add(tt.duration), tt.pricePerHour)
			assert.Equal(t, tt.want, got)
		})
	}
}
