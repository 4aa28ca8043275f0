package vesync

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// hexDivisor converts the summed hex pair into a physical unit.
// Credit for the conversion goes to itsnotlupus/vesync_wsproxy.
const hexDivisor = 8192

// decodeHexPair converts the 7A outlet's power/voltage encoding, two
// colon-separated hex integers such as "2C01:0064", into watts or
// volts: parse both as base 16, sum, divide by 8192.
func decodeHexPair(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.Errorf("malformed hex pair: %q", s)
	}
	a, err := strconv.ParseUint(parts[0], 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed hex pair: %q", s)
	}
	b, err := strconv.ParseUint(parts[1], 16, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed hex pair: %q", s)
	}
	return float64(a+b) / hexDivisor, nil
}

// asFloat coerces the shapes the API sends for a numeric field: a JSON
// number or a decimal string. Anything else is not a number.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// The extractors below absorb every malformed-response condition into
// the metric's zero default: a missing key, a null, and a non-numeric
// value all read the same to the caller.

// activeTime extracts the powered-on time in minutes, clamped to >= 0.
func activeTime(r map[string]interface{}) int {
	if r == nil {
		return 0
	}
	f, ok := asFloat(r["activeTime"])
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}

// floatField extracts a plain numeric field (energy, totalEnergy, and
// power/voltage on the newer outlets, which send decimal strings).
func floatField(r map[string]interface{}, field string) float64 {
	if r == nil {
		return 0
	}
	f, ok := asFloat(r[field])
	if !ok {
		return 0
	}
	return f
}

// hexField extracts a 7A power/voltage field, routing the hex-pair
// encoding through decodeHexPair. Malformed encodings read as 0.
func hexField(r map[string]interface{}, field string) float64 {
	if r == nil {
		return 0
	}
	s, ok := r[field].(string)
	if !ok {
		return 0
	}
	f, err := decodeHexPair(s)
	if err != nil {
		return 0
	}
	return f
}

// meterField dispatches power/voltage extraction on the dialect: only
// the 7A generation stores these hex-encoded.
func meterField(r map[string]interface{}, d Dialect, field string) float64 {
	if d == DialectOutlet7A {
		return hexField(r, field)
	}
	return floatField(r, field)
}

// dailySeries extracts the ordered per-day energy values from an
// energy-week response.
func dailySeries(r map[string]interface{}) []float64 {
	if r == nil {
		return nil
	}
	raw, ok := r["data"].([]interface{})
	if !ok {
		return nil
	}
	series := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, ok := asFloat(v)
		if !ok {
			f = 0
		}
		series = append(series, f)
	}
	return series
}

// stringField extracts a string, with a caller-supplied default.
func stringField(r map[string]interface{}, field, fallback string) string {
	if r == nil {
		return fallback
	}
	s, ok := r[field].(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// intField extracts a small integer (purifier fan level).
func intField(r map[string]interface{}, field string) int {
	if r == nil {
		return 0
	}
	f, ok := asFloat(r[field])
	if !ok {
		return 0
	}
	return int(f)
}
