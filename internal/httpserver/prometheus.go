package httpserver

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SpikeHD/gpuinfo"
	"github.com/SpikeHD/gpuinfo/internal/poll"
)

type deviceMetricsCollector struct {
	poller  *poll.Poller
	metrics []deviceMetric

	activeDesc    *prometheus.Desc
	supportedDesc *prometheus.Desc
	deviceDesc    *prometheus.Desc
	timestampDesc *prometheus.Desc
	ageDesc       *prometheus.Desc
}

type deviceMetric struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	extract   func(t *gpuinfo.Telemetry) (float64, bool)
}

func newDeviceMetricsCollector(poller *poll.Poller) prometheus.Collector {
	if poller == nil {
		return nil
	}

	labels := []string{"index", "vendor", "model", "bus_address"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName("gpuinfo", "gpu", name),
			help,
			labels,
			nil,
		)
	}

	collector := &deviceMetricsCollector{
		poller:        poller,
		activeDesc:    desc("active", "1 for the selected GPU, 0 for the others."),
		supportedDesc: desc("telemetry_supported", "1 when the GPU exposes runtime telemetry, 0 when it is identity-only."),
		deviceDesc: prometheus.NewDesc(
			prometheus.BuildFQName("gpuinfo", "", "devices"),
			"Number of GPUs seen in the latest snapshot.",
			nil,
			nil,
		),
		timestampDesc: prometheus.NewDesc(
			prometheus.BuildFQName("gpuinfo", "", "snapshot_timestamp_seconds"),
			"Unix timestamp of the latest snapshot.",
			nil,
			nil,
		),
		ageDesc: prometheus.NewDesc(
			prometheus.BuildFQName("gpuinfo", "", "snapshot_age_seconds"),
			"Seconds elapsed since the latest snapshot was taken.",
			nil,
			nil,
		),
	}

	collector.metrics = []deviceMetric{
		{
			desc:      desc("load_percent", "Current graphics engine load percentage."),
			valueType: prometheus.GaugeValue,
			extract: func(t *gpuinfo.Telemetry) (float64, bool) {
				if t.LoadPct == nil {
					return 0, false
				}
				return float64(*t.LoadPct), true
			},
		},
		{
			desc:      desc("vram_used_bytes", "Current VRAM usage in bytes."),
			valueType: prometheus.GaugeValue,
			extract: func(t *gpuinfo.Telemetry) (float64, bool) {
				if t.UsedVRAMBytes == nil {
					return 0, false
				}
				return float64(*t.UsedVRAMBytes), true
			},
		},
		{
			desc:      desc("vram_total_bytes", "Total VRAM capacity in bytes."),
			valueType: prometheus.GaugeValue,
			extract: func(t *gpuinfo.Telemetry) (float64, bool) {
				if t.TotalVRAMBytes == nil {
					return 0, false
				}
				return float64(*t.TotalVRAMBytes), true
			},
		},
		{
			desc:      desc("temperature_celsius", "Current GPU temperature in Celsius."),
			valueType: prometheus.GaugeValue,
			extract: func(t *gpuinfo.Telemetry) (float64, bool) {
				if t.TemperatureMilliC == nil {
					return 0, false
				}
				return float64(*t.TemperatureMilliC) / 1000, true
			},
		},
	}

	return collector
}

func (c *deviceMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeDesc
	ch <- c.supportedDesc
	ch <- c.deviceDesc
	ch <- c.timestampDesc
	ch <- c.ageDesc
	for _, metric := range c.metrics {
		ch <- metric.desc
	}
}

func (c *deviceMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	snap, ok := c.poller.Latest()
	if !ok {
		return
	}

	ch <- prometheus.MustNewConstMetric(c.deviceDesc, prometheus.GaugeValue, float64(len(snap.Devices)))
	if !snap.Timestamp.IsZero() {
		ch <- prometheus.MustNewConstMetric(c.timestampDesc, prometheus.GaugeValue, float64(snap.Timestamp.Unix()))
		age := time.Since(snap.Timestamp).Seconds()
		if age < 0 {
			age = 0
		}
		ch <- prometheus.MustNewConstMetric(c.ageDesc, prometheus.GaugeValue, age)
	}

	for i, device := range snap.Devices {
		labels := []string{
			strconv.Itoa(i),
			string(device.Vendor),
			device.Model,
			device.BusAddress,
		}

		active := 0.0
		if i == snap.ActiveIndex {
			active = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.activeDesc, prometheus.GaugeValue, active, labels...)

		supported := 0.0
		if device.Telemetry != nil {
			supported = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.supportedDesc, prometheus.GaugeValue, supported, labels...)

		// Absent readings export nothing rather than a zero.
		if device.Telemetry == nil {
			continue
		}
		for _, metric := range c.metrics {
			value, ok := metric.extract(device.Telemetry)
			if !ok {
				continue
			}
			ch <- prometheus.MustNewConstMetric(metric.desc, metric.valueType, value, labels...)
		}
	}
}
