package eightsleep

import (
	"context"
	"time"
)

// TestStatusReader is a canned in-memory reader used by actor tests.
type TestStatusReader struct {
	history []Snapshot
}

func CreateTestStatusReader() *TestStatusReader {
	return &TestStatusReader{}
}

func (r *TestStatusReader) Start() error {
	return nil
}

func (r *TestStatusReader) Stop() {
}

func (r *TestStatusReader) Fetch(_ context.Context) error {
	r.history = append([]Snapshot{{
		Data: map[string]any{
			"left": map[string]any{
				"currentTemperatureF": float64(83),
				"targetTemperatureF":  float64(90),
				"secondsRemaining":    float64(300),
				"isAlarmVibrating":    false,
				"isOn":                true,
			},
			"right": map[string]any{
				"currentTemperatureF": float64(78),
				"targetTemperatureF":  float64(82),
				"secondsRemaining":    float64(0),
				"isAlarmVibrating":    false,
				"isOn":                false,
			},
			"waterLevel":  "true",
			"isPriming":   false,
			"sensorLabel": "00000-0000-000-00000",
		},
		FetchedAt: time.Now(),
	}}, r.history...)
	if len(r.history) > historySize {
		r.history = r.history[:historySize]
	}
	return nil
}

func (r *TestStatusReader) Latest() Snapshot {
	if len(r.history) == 0 {
		return Snapshot{Data: map[string]any{}}
	}
	return r.history[0]
}

func (r *TestStatusReader) History() []Snapshot {
	return r.history
}

func (r *TestStatusReader) Info() DeviceInfo {
	return DeviceInfo{
		Host:        "localhost",
		Port:        8080,
		SensorLabel: "00000-0000-000-00000",
	}
}

var _ StatusReader = (*TestStatusReader)(nil)
