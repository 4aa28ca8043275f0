package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudkucooland/go-vesync"
)

// fake cloud API: one 15A outlet named heater, accepts any status
// change
func apiServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/cloud/v1/user/login":
			fmt.Fprint(w, `{"code":0,"result":{"token":"tok","accountID":"acct"}}`)
		case "/cloud/v1/deviceManaged/devices":
			fmt.Fprint(w, `{"code":0,"result":{"list":[
				{"deviceType":"ESW15-USA","cid":"c15","uuid":"u15","deviceName":"heater","deviceStatus":"on","connectionStatus":"online"}
			]}}`)
		case "/15a/v1/device/devicestatus":
			fmt.Fprint(w, `{"code":0}`)
		case "/15a/v1/device/devicedetail":
			fmt.Fprint(w, `{"code":0,"power":"12.5","voltage":"118.9","energy":"0.5","activeTime":10}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func testPlatform(t *testing.T) (*Platform, func()) {
	t.Helper()
	api := apiServer()

	m := vesync.NewWithURL("user@example.com", "pw", api.URL)
	p := NewWithManager(Config{Name: "test"}, m)
	if err := p.Startup(); err != nil {
		api.Close()
		t.Fatal(err)
	}
	return p, api.Close
}

func TestDevicesEndpoint(t *testing.T) {
	p, closer := testPlatform(t)
	defer closer()

	ctl := httptest.NewServer(p.router())
	defer ctl.Close()

	resp, err := http.Get(ctl.URL + "/devices")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var devs []deviceStatus
	if err := json.NewDecoder(resp.Body).Decode(&devs); err != nil {
		t.Fatal(err)
	}
	if len(devs) != 1 {
		t.Fatalf("got %d devices, want 1", len(devs))
	}
	if devs[0].Name != "heater" || devs[0].Family != "outlet" || devs[0].Status != "on" {
		t.Errorf("device listing wrong: %+v", devs[0])
	}
}

func TestDeviceCommand(t *testing.T) {
	p, closer := testPlatform(t)
	defer closer()

	ctl := httptest.NewServer(p.router())
	defer ctl.Close()

	// devices are addressable by name as well as key
	resp, err := http.Get(ctl.URL + "/device/heater/off")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("command returned %d", resp.StatusCode)
	}

	var ds deviceStatus
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		t.Fatal(err)
	}
	if ds.Status != "off" {
		t.Errorf("status = %s, want off", ds.Status)
	}

	a, _ := p.GetAccessory("u15")
	if a.Device.Status != "off" {
		t.Errorf("registry entry status = %s, want off", a.Device.Status)
	}
}

func TestDeviceCommandErrors(t *testing.T) {
	p, closer := testPlatform(t)
	defer closer()

	ctl := httptest.NewServer(p.router())
	defer ctl.Close()

	resp, err := http.Get(ctl.URL + "/device/nosuch/on")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown device returned %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(ctl.URL + "/device/heater/explode")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotAcceptable {
		t.Errorf("unknown command returned %d, want 406", resp.StatusCode)
	}
}

func TestSpeedMapping(t *testing.T) {
	for _, c := range []struct {
		level int
		speed float64
	}{
		{0, 0}, {1, 100.0 / 3}, {2, 200.0 / 3}, {3, 100},
	} {
		if got := levelToSpeed(c.level); got != c.speed {
			t.Errorf("levelToSpeed(%d) = %v, want %v", c.level, got, c.speed)
		}
	}
	for _, c := range []struct {
		speed float64
		level int
	}{
		{0, 1}, {25, 1}, {50, 2}, {80, 3}, {100, 3},
	} {
		if got := speedToLevel(c.speed); got != c.level {
			t.Errorf("speedToLevel(%v) = %d, want %d", c.speed, got, c.level)
		}
	}
}
