package sysinfo

import (
	"testing"

	"github.com/BeatGlow/infoscreen/screen"
)

func TestProviderPingEntities(t *testing.T) {
	p := NewProvider("eth0")

	v, err := p.Entity(screen.EntityPingState, "state")
	if err != nil {
		t.Fatal(err)
	}
	if v != "off" {
		t.Errorf("expected the local ping probe to report %q, got %q", "off", v)
	}

	if _, err := p.Entity(screen.EntityPingRTT, "state"); err != nil {
		t.Fatal(err)
	}
}

func TestProviderUnknownEntity(t *testing.T) {
	p := NewProvider("eth0")
	if _, err := p.Entity("sensor.does_not_exist", "state"); err == nil {
		t.Error("expected an error for an unknown entity")
	}
}

var _ screen.EntityGetter = (*Provider)(nil)
