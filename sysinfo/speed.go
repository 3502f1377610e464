package sysinfo

import (
	"fmt"
	"sync"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// SpeedSampler derives megabit-per-second rates from interface byte
// counters. The first sample for an interface only records a baseline
// and reports zero.
type SpeedSampler struct {
	mu       sync.Mutex
	counters func(pernic bool) ([]psnet.IOCountersStat, error)
	now      func() time.Time

	lastTime  time.Time
	lastRecv  uint64
	lastSent  uint64
	lastIface string
	inited    bool
}

func NewSpeedSampler() *SpeedSampler {
	return &SpeedSampler{
		counters: psnet.IOCounters,
		now:      time.Now,
	}
}

// Sample reports (upload, download) in Mbps for the named interface. An
// empty or unknown interface name falls back to the host-wide total.
func (s *SpeedSampler) Sample(iface string) (up, down float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	recv, sent, err := s.read(iface)
	if err != nil {
		return 0, 0, err
	}

	if !s.inited || s.lastIface != iface {
		s.record(now, iface, recv, sent)
		return 0, 0, nil
	}

	elapsed := now.Sub(s.lastTime).Seconds()
	if elapsed <= 0 {
		return 0, 0, nil
	}
	if recv < s.lastRecv || sent < s.lastSent {
		// Counter reset, start over.
		s.record(now, iface, recv, sent)
		return 0, 0, nil
	}

	up = float64(sent-s.lastSent) * 8 / 1e6 / elapsed
	down = float64(recv-s.lastRecv) * 8 / 1e6 / elapsed
	s.record(now, iface, recv, sent)
	return up, down, nil
}

func (s *SpeedSampler) record(now time.Time, iface string, recv, sent uint64) {
	s.inited = true
	s.lastTime = now
	s.lastIface = iface
	s.lastRecv = recv
	s.lastSent = sent
}

func (s *SpeedSampler) read(iface string) (recv, sent uint64, err error) {
	if iface != "" {
		stats, err := s.counters(true)
		if err != nil {
			return 0, 0, err
		}
		for _, c := range stats {
			if c.Name == iface {
				return c.BytesRecv, c.BytesSent, nil
			}
		}
	}

	all, err := s.counters(false)
	if err != nil {
		return 0, 0, err
	}
	if len(all) == 0 {
		return 0, 0, fmt.Errorf("sysinfo: no interface counters")
	}
	return all[0].BytesRecv, all[0].BytesSent, nil
}
