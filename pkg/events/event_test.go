package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	before := time.Now().UTC()
	event := NewBaseEvent("loanrisk.prediction.scored", aggregateID, "DefaultAssessment")
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "loanrisk.prediction.scored", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "DefaultAssessment", event.AggregateType())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	id := uuid.New()
	a := NewBaseEvent("x", id, "A")
	b := NewBaseEvent("x", id, "A")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestBaseEvent_JSONEnvelope(t *testing.T) {
	type scored struct {
		BaseEvent
		RiskLevel string `json:"risk_level"`
	}

	evt := scored{
		BaseEvent: NewBaseEvent("loanrisk.prediction.scored", uuid.New(), "DefaultAssessment"),
		RiskLevel: "HIGH",
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "loanrisk.prediction.scored", decoded["event_type"])
	assert.Equal(t, "DefaultAssessment", decoded["aggregate_type"])
	assert.Equal(t, evt.EventID().String(), decoded["event_id"])
	assert.Equal(t, "HIGH", decoded["risk_level"])
}

func TestEventCollector(t *testing.T) {
	var c EventCollector
	assert.Empty(t, c.Events())

	c.Record(NewBaseEvent("a", uuid.New(), "A"))
	c.Record(NewBaseEvent("b", uuid.New(), "A"))
	assert.Len(t, c.Events(), 2)

	cleared := c.ClearEvents()
	assert.Len(t, cleared, 2)
	assert.Equal(t, "a", cleared[0].EventType())
	assert.Empty(t, c.Events())
}
