// Package sysinfo serves the metrics collaborator contract from the
// local host, so the status screen works without a home automation API.
package sysinfo

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/BeatGlow/infoscreen/screen"
)

const ipv4EntityPrefix = "sensor.system_monitor_ipv4_address_"

// Provider resolves the known entity IDs against local host readings.
type Provider struct {
	// Iface is the WAN-facing interface sampled for up/download speeds.
	Iface string

	sampler *SpeedSampler
}

func NewProvider(iface string) *Provider {
	return &Provider{
		Iface:   iface,
		sampler: NewSpeedSampler(),
	}
}

func (p *Provider) Entity(entity, field string) (string, error) {
	switch entity {
	case screen.EntityMemory:
		vm, err := mem.VirtualMemory()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.1f", vm.UsedPercent), nil

	case screen.EntityCPU:
		percents, err := cpu.Percent(0, false)
		if err != nil {
			return "", err
		}
		if len(percents) == 0 {
			return "", fmt.Errorf("sysinfo: no CPU usage reading")
		}
		return fmt.Sprintf("%.1f", percents[0]), nil

	case screen.EntityDisk:
		du, err := disk.Usage("/")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.1f", du.UsedPercent), nil

	case screen.EntityTemperature:
		return temperature()

	case screen.EntityPingState:
		// No local prober; the status screen masks the latency.
		return "off", nil

	case screen.EntityPingRTT:
		return "", nil

	case screen.EntityUploadSpeed:
		up, _, err := p.sampler.Sample(p.Iface)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.1f", up), nil

	case screen.EntityDownloadSpeed:
		_, down, err := p.sampler.Sample(p.Iface)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.1f", down), nil

	case screen.EntityLastBoot:
		boot, err := host.BootTime()
		if err != nil {
			return "", err
		}
		return time.Unix(int64(boot), 0).UTC().Format(time.RFC3339), nil
	}

	if iface, ok := strings.CutPrefix(entity, ipv4EntityPrefix); ok {
		return ipv4(iface)
	}
	return "", fmt.Errorf("sysinfo: unknown entity %q", entity)
}

// temperature picks the CPU sensor when one is labeled as such, the
// first sensor otherwise.
func temperature() (string, error) {
	sensors, err := host.SensorsTemperatures()
	if err != nil {
		return "", err
	}
	if len(sensors) == 0 {
		return "", fmt.Errorf("sysinfo: no temperature sensors")
	}
	for _, s := range sensors {
		if strings.Contains(s.SensorKey, "cpu") || strings.Contains(s.SensorKey, "coretemp") {
			return fmt.Sprintf("%.1f", s.Temperature), nil
		}
	}
	return fmt.Sprintf("%.1f", sensors[0].Temperature), nil
}

func ipv4(iface string) (string, error) {
	ifaces, err := psnet.Interfaces()
	if err != nil {
		return "", err
	}
	for _, i := range ifaces {
		if i.Name != iface {
			continue
		}
		for _, addr := range i.Addrs {
			ip := addr.Addr
			if idx := strings.IndexByte(ip, '/'); idx >= 0 {
				ip = ip[:idx]
			}
			if strings.Count(ip, ".") == 3 {
				return ip, nil
			}
		}
	}
	return "", fmt.Errorf("sysinfo: no IPv4 address on %q", iface)
}

// Hostname returns the local host name.
func Hostname() (string, error) {
	if info, err := host.Info(); err == nil && info.Hostname != "" {
		return info.Hostname, nil
	}
	return os.Hostname()
}
