package vesync

import (
	"testing"
)

func TestDecodeHexPair(t *testing.T) {
	got, err := decodeHexPair("2C01:0064")
	if err != nil {
		t.Fatal(err)
	}
	want := float64(0x2C01+0x0064) / 8192
	if got != want {
		t.Errorf("decodeHexPair(\"2C01:0064\") = %v, want %v", got, want)
	}

	if _, err := decodeHexPair("0:0"); err != nil {
		t.Errorf("zero pair should decode: %v", err)
	}

	for _, bad := range []string{"ZZ:01", "2C01", "2C01:0064:0", "2C01:", ":0064", ""} {
		if _, err := decodeHexPair(bad); err == nil {
			t.Errorf("decodeHexPair(%q) should fail", bad)
		}
	}
}

func TestActiveTime(t *testing.T) {
	if v := activeTime(map[string]interface{}{"activeTime": float64(75)}); v != 75 {
		t.Errorf("activeTime = %d, want 75", v)
	}
	if v := activeTime(map[string]interface{}{"activeTime": float64(-3)}); v != 0 {
		t.Errorf("negative activeTime should clamp to 0, got %d", v)
	}
	if v := activeTime(map[string]interface{}{}); v != 0 {
		t.Errorf("missing activeTime should be 0, got %d", v)
	}
	if v := activeTime(nil); v != 0 {
		t.Errorf("nil response should be 0, got %d", v)
	}
}

func TestFloatField(t *testing.T) {
	r := map[string]interface{}{
		"energy":      "4.32",
		"totalEnergy": float64(12.5),
		"junk":        []interface{}{},
		"null":        nil,
	}
	if v := floatField(r, "energy"); v != 4.32 {
		t.Errorf("string energy = %v, want 4.32", v)
	}
	if v := floatField(r, "totalEnergy"); v != 12.5 {
		t.Errorf("numeric totalEnergy = %v, want 12.5", v)
	}
	// missing, null and non-numeric are all the same condition
	for _, field := range []string{"absent", "null", "junk"} {
		if v := floatField(r, field); v != 0 {
			t.Errorf("floatField(%q) = %v, want 0", field, v)
		}
	}
	if v := floatField(nil, "energy"); v != 0 {
		t.Errorf("nil response = %v, want 0", v)
	}
}

func TestMeterField(t *testing.T) {
	hex := map[string]interface{}{"power": "2C01:0064", "voltage": "magic"}
	want := float64(0x2C01+0x0064) / 8192
	if v := meterField(hex, DialectOutlet7A, "power"); v != want {
		t.Errorf("7A power = %v, want %v", v, want)
	}
	if v := meterField(hex, DialectOutlet7A, "voltage"); v != 0 {
		t.Errorf("malformed 7A voltage should read 0, got %v", v)
	}

	// the newer outlets send plain decimal strings, no hex decode
	plain := map[string]interface{}{"power": "12.5"}
	if v := meterField(plain, DialectOutlet15A, "power"); v != 12.5 {
		t.Errorf("15A power = %v, want 12.5", v)
	}
	if v := meterField(hex, DialectOutlet15A, "power"); v != 0 {
		t.Errorf("hex-shaped field on 15A should read 0, got %v", v)
	}
}

func TestDailySeries(t *testing.T) {
	r := map[string]interface{}{
		"data": []interface{}{float64(1.1), "2.2", float64(0)},
	}
	got := dailySeries(r)
	want := []float64{1.1, 2.2, 0}
	if len(got) != len(want) {
		t.Fatalf("series length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("series[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if s := dailySeries(map[string]interface{}{"data": "oops"}); len(s) != 0 {
		t.Errorf("non-list data should yield empty series, got %v", s)
	}
	if s := dailySeries(nil); len(s) != 0 {
		t.Errorf("nil response should yield empty series, got %v", s)
	}
}
