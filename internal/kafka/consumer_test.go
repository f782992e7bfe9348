package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeOrderEvent(t *testing.T) {
	reserved := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)
	payload, err := json.Marshal(OrderEvent{
		Type:       "order_created",
		BookingNo:  "b0001",
		MemberID:   "m0001",
		SitterID:   "t0001",
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-03",
		TotalPrice: 2100,
		Status:     "reserved",
		ReservedAt: reserved,
	})
	assert.NoError(t, err)

	event, err := decodeOrderEvent(payload)
	assert.NoError(t, err)
	assert.Equal(t, "b0001", event.BookingNo)
	assert.Equal(t, "m0001", event.MemberID)
	assert.Equal(t, 2100.0, event.TotalPrice)
	assert.True(t, reserved.Equal(event.ReservedAt))
}

func TestDecodeOrderEvent_RejectsMalformedPayload(t *testing.T) {
	_, err := decodeOrderEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestDecodeOrderEvent_RejectsMissingBookingNo(t *testing.T) {
	_, err := decodeOrderEvent([]byte(`{"type":"order_created","mId":"m0001"}`))
	assert.Error(t, err)
}
