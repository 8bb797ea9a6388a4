package models

import (
	"testing"
	"time"
)

func TestObservation_ValueSetValue(t *testing.T) {
	obs := Observation{Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}

	for i, ch := range Channels {
		want := float64(i) + 0.5
		obs.SetValue(ch, Float(want))

		got := obs.Value(ch)
		if got == nil {
			t.Fatalf("Value(%s) = nil after SetValue", ch)
		}
		if *got != want {
			t.Errorf("Value(%s) = %v, want %v", ch, *got, want)
		}
	}

	// Clearing a channel marks it missing again.
	obs.SetValue(ChannelTemperature, nil)
	if obs.Value(ChannelTemperature) != nil {
		t.Error("Value(T) should be nil after SetValue(T, nil)")
	}

	// Unknown channels read as missing and writes are dropped.
	unknown := Channel("bogus")
	if obs.Value(unknown) != nil {
		t.Error("Value of unknown channel should be nil")
	}
	obs.SetValue(unknown, Float(1.0))
	if obs.Value(unknown) != nil {
		t.Error("SetValue on unknown channel should be a no-op")
	}
}

func TestSeries_Len(t *testing.T) {
	s := Series{Step: time.Minute}
	if s.Len() != 0 {
		t.Errorf("empty series Len() = %d, want 0", s.Len())
	}

	s.Observations = append(s.Observations, Observation{}, Observation{})
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}
