package bridge

import (
	"github.com/brutella/hc"
)

// Config is the bridge daemon configuration, read from a JSON file by
// the launcher.
type Config struct {
	Username    string    // VeSync account email
	Password    string    // VeSync account password
	Name        string    // what this bridge shows as in the Home app
	HTTPAddress string    // net.Dial address format, :port is good enough
	HCConfig    hc.Config // base HomeControl configuration
	PullRate    int       // (seconds) how frequently to poll the cloud -- 0 for the default
	Influx      InfluxConfig
}

// InfluxConfig points the telemetry recorder at an InfluxDB v2 bucket.
// Leave Host empty to disable recording.
type InfluxConfig struct {
	Host         string
	Organization string
	Bucket       string
	Token        string
	Measurement  string // defaults to "vesync"
}
