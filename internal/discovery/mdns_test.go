// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager construction and channel plumbing
package discovery

import (
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	m := NewManager(Config{ServiceName: "test-padbank", Port: 8941})
	if m == nil {
		t.Fatal("expected manager")
	}
	defer m.Stop()

	if m.config.ServiceName != "test-padbank" || m.config.Port != 8941 {
		t.Errorf("config not stored: %+v", m.config)
	}
}

func TestMachinesChannelBuffered(t *testing.T) {
	m := NewManager(Config{ServiceName: "test", Port: 1})
	defer m.Stop()

	// The channel must absorb a few discoveries without a reader.
	for i := 0; i < 3; i++ {
		select {
		case m.machines <- &MachineInfo{Name: "m", Host: "127.0.0.1", Port: 1}:
		default:
			t.Fatalf("machines channel refused entry %d", i)
		}
	}

	got := <-m.Machines()
	if got.Host != "127.0.0.1" {
		t.Errorf("unexpected machine %+v", got)
	}
}

func TestStopCancelsContext(t *testing.T) {
	m := NewManager(Config{})
	m.Stop()

	select {
	case <-m.ctx.Done():
	case <-time.After(time.Second):
		t.Error("context not cancelled by Stop")
	}
}
