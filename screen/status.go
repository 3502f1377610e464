package screen

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Entity IDs polled from the home automation API.
const (
	EntityMemory        = "sensor.system_monitor_memory_usage"
	EntityCPU           = "sensor.system_monitor_processor_use"
	EntityDisk          = "sensor.system_monitor_disk_usage"
	EntityTemperature   = "sensor.system_monitor_processor_temperature"
	EntityIPEth         = "sensor.system_monitor_ipv4_address_end0"
	EntityIPWLAN        = "sensor.system_monitor_ipv4_address_wlan0"
	EntityPingState     = "binary_sensor.8_8_8_8"
	EntityPingRTT       = "sensor.8_8_8_8_round_trip_time_average"
	EntityDownloadSpeed = "sensor.wan_download_speed_mbps"
	EntityUploadSpeed   = "sensor.wan_upload_speed_mbps"
	EntityLastBoot      = "sensor.system_monitor_last_boot"
)

// pingUnavailable masks the latency reading while the probe reports the
// target as down; the last value would be stale.
const pingUnavailable = "XXX"

// EntityGetter is the metrics collaborator contract: a state lookup
// keyed by a namespaced entity ID and a field name.
type EntityGetter interface {
	Entity(entity, field string) (string, error)
}

// StatusScreen shows host, resource, network and uptime metrics on five
// lines.
type StatusScreen struct {
	Base

	// Hostname supplies the host name shown on the first line.
	Hostname func() (string, error)

	metrics EntityGetter
}

func NewStatus(display *Display, duration time.Duration, metrics EntityGetter) *StatusScreen {
	return &StatusScreen{
		Base:     NewBase("status", display, duration),
		metrics:  metrics,
		Hostname: os.Hostname,
	}
}

func (s *StatusScreen) Render() error {
	host, err := s.Hostname()
	if err != nil {
		return err
	}

	get := func(entity string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = s.metrics.Entity(entity, "state")
		return v
	}
	var (
		mem       = get(EntityMemory)
		cpu       = get(EntityCPU)
		disk      = get(EntityDisk)
		temp      = get(EntityTemperature)
		ipEth     = get(EntityIPEth)
		ipWLAN    = get(EntityIPWLAN)
		pingState = get(EntityPingState)
		pingRTT   = get(EntityPingRTT)
		down      = get(EntityDownloadSpeed)
		up        = get(EntityUploadSpeed)
		lastBoot  = get(EntityLastBoot)
	)
	if err != nil {
		return fmt.Errorf("screen: fetching metrics: %w", err)
	}

	ping := pingUnavailable
	if pingState == "on" {
		ping = pingRTT
	}
	since, err := s.Display().HumanReadableTimeSince(lastBoot)
	if err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("%s %s", host, s.Display().HumanReadableTimeNow()),
		fmt.Sprintf("C%s%% M%s%% D%s%% t%s°C", cpu, mem, disk, temp),
		fmt.Sprintf("A %s %s", ipEth, ipWLAN),
		fmt.Sprintf("P%s U%s D%s", ping, up, down),
		fmt.Sprintf("B %s", since),
	}
	for _, line := range lines {
		log.Printf("screen: %s", line)
	}

	if err := s.DisplayText(lines); err != nil {
		return err
	}
	return s.Finish()
}
