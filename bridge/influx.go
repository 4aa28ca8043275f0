package bridge

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/pkg/errors"

	"github.com/cloudkucooland/go-vesync"
)

// Recorder writes outlet telemetry into an InfluxDB v2 bucket, one
// point per device per poll.
type Recorder struct {
	client      influxdb2.Client
	write       api.WriteAPIBlocking
	measurement string
}

func NewRecorder(c InfluxConfig) *Recorder {
	measurement := c.Measurement
	if measurement == "" {
		measurement = "vesync"
	}
	client := influxdb2.NewClient(c.Host, c.Token)
	return &Recorder{
		client:      client,
		write:       client.WriteAPIBlocking(c.Organization, c.Bucket),
		measurement: measurement,
	}
}

// Record writes one telemetry point. Devices without energy metering
// are skipped silently.
func (r *Recorder) Record(d *vesync.Device) error {
	if d.Family() != vesync.FamilyOutlet {
		return nil
	}

	point := influxdb2.NewPoint(r.measurement,
		map[string]string{
			"device": d.Name,
			"model":  d.DeviceType,
		},
		map[string]interface{}{
			"power":   d.Power(),
			"voltage": d.Voltage(),
			"energy":  d.KilowattHoursToday(),
		},
		time.Now())

	if err := r.write.WritePoint(context.Background(), point); err != nil {
		return errors.Wrapf(err, "recording %s telemetry", d.Name)
	}
	return nil
}

func (r *Recorder) Close() {
	r.client.Close()
}
