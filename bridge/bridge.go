// Package bridge exposes a VeSync account's devices over HomeKit,
// with an HTTP control channel and an optional InfluxDB telemetry
// recorder.
package bridge

import (
	"sync"
	"time"

	"github.com/brutella/hc"
	"github.com/brutella/hc/accessory"
	hclog "github.com/brutella/hc/log"
	"github.com/pkg/errors"

	"github.com/cloudkucooland/go-vesync"
)

// Accessory ties one registry entry to its HomeKit representation.
// Exactly one of Outlet, Switch, Fan is set, per the device family.
type Accessory struct {
	Device *vesync.Device
	*accessory.Accessory
	Outlet *EnergyOutlet
	Switch *WallSwitch
	Fan    *Purifier
}

// Platform is the handle to the running bridge.
type Platform struct {
	Running bool

	conf     Config
	manager  *vesync.Manager
	recorder *Recorder

	mu   sync.Mutex
	accs map[string]*Accessory // keyed by the device's authoritative key
}

// New builds a platform for the configured VeSync account.
func New(c Config) *Platform {
	return NewWithManager(c, vesync.New(c.Username, c.Password))
}

// NewWithManager injects a prebuilt manager, mostly for tests.
func NewWithManager(c Config, m *vesync.Manager) *Platform {
	return &Platform{
		conf:    c,
		manager: m,
		accs:    make(map[string]*Accessory),
	}
}

// Startup logs in, runs the first poll, and builds an accessory for
// every registry entry. Call before StartHC.
func (p *Platform) Startup() error {
	if err := p.manager.Login(); err != nil {
		return errors.Wrap(err, "vesync login")
	}
	p.manager.Update()

	for _, d := range p.manager.Devices() {
		p.addDevice(d)
	}

	if p.conf.Influx.Host != "" {
		p.recorder = NewRecorder(p.conf.Influx)
	}

	p.Running = true
	return nil
}

// Shutdown stops the background work.
func (p *Platform) Shutdown() {
	p.Running = false
	if p.recorder != nil {
		p.recorder.Close()
	}
}

// GetAccessory looks up a bridged device by its key or name.
func (p *Platform) GetAccessory(id string) (*Accessory, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if a, ok := p.accs[id]; ok {
		return a, true
	}
	for _, a := range p.accs {
		if a.Device.Name == id {
			return a, true
		}
	}
	return nil, false
}

func (p *Platform) addDevice(d *vesync.Device) {
	info := accessory.Info{
		Name:         d.Name,
		SerialNumber: d.ID(),
		Manufacturer: "Etekcity",
		Model:        d.DeviceType,
		ID:           accessoryID(d.ID()),
	}

	a := Accessory{Device: d}
	switch d.Family() {
	case vesync.FamilyOutlet:
		o := NewEnergyOutlet(info)
		a.Accessory = o.Accessory
		a.Outlet = o
		o.Outlet.On.OnValueRemoteUpdate(func(newstate bool) {
			hclog.Info.Printf("setting [%s] to [%t] from HC handler", d.Name, newstate)
			if !setState(d, newstate) {
				hclog.Info.Printf("unable to update %s, reverting GUI", d.Name)
				o.Outlet.On.SetValue(d.Status == "on")
			}
			o.Outlet.OutletInUse.SetValue(d.Status == "on")
		})
	case vesync.FamilySwitch:
		s := NewWallSwitch(info)
		a.Accessory = s.Accessory
		a.Switch = s
		s.Switch.On.OnValueRemoteUpdate(func(newstate bool) {
			hclog.Info.Printf("setting [%s] to [%t] from HC handler", d.Name, newstate)
			if !setState(d, newstate) {
				s.Switch.On.SetValue(d.Status == "on")
			}
		})
	case vesync.FamilyPurifier:
		f := NewPurifier(info)
		a.Accessory = f.Accessory
		a.Fan = f
		f.Fan.Active.OnValueRemoteUpdate(func(newval int) {
			hclog.Info.Printf("setting [%s] active to [%d] from HC handler", d.Name, newval)
			if !setState(d, newval == 1) {
				f.Fan.Active.SetValue(activeValue(d.Status))
			}
		})
		f.Fan.RotationSpeed.OnValueRemoteUpdate(func(newval float64) {
			level := speedToLevel(newval)
			hclog.Info.Printf("setting [%s] fan level to [%d] from HC handler", d.Name, level)
			if !d.ChangeFanSpeed(level) {
				f.Fan.RotationSpeed.SetValue(levelToSpeed(d.FanLevel()))
			}
		})
	default:
		hclog.Info.Printf("not bridging [%s]: unhandled family", d.Name)
		return
	}

	p.mu.Lock()
	p.accs[d.ID()] = &a
	p.mu.Unlock()

	a.updateGUI()
}

// StartHC registers everything with HomeControl and starts the HomeKit
// transport; blocks until all accessories are added, so call last.
func (p *Platform) StartHC() error {
	name := p.conf.Name
	if name == "" {
		name = "VeSync"
	}
	root := accessory.NewBridge(accessory.Info{
		Name:         name,
		ID:           1,
		Manufacturer: "cloudkucooland",
		Model:        "go-vesync",
	})

	values := []*accessory.Accessory{}
	p.mu.Lock()
	for _, a := range p.accs {
		values = append(values, a.Accessory)
	}
	p.mu.Unlock()

	transport, err := hc.NewIPTransport(p.conf.HCConfig, root.Accessory, values...)
	if err != nil {
		return errors.Wrap(err, "starting HomeKit transport")
	}

	hc.OnTermination(func() {
		<-transport.Stop()
	})
	go transport.Start()

	uri, _ := transport.XHMURI()
	hclog.Info.Printf("add this bridge with: %s", uri)
	return nil
}

// Background starts the poller that keeps HC and Influx in sync with
// the cloud.
func (p *Platform) Background() {
	rate := p.conf.PullRate
	if rate <= 0 {
		rate = 60
	}
	go func() {
		for range time.Tick(time.Second * time.Duration(rate)) {
			if !p.Running {
				return
			}
			p.backgroundPuller()
		}
	}()
}

func (p *Platform) backgroundPuller() {
	p.manager.Update()

	// new devices can appear between polls; they join the HTTP
	// channel immediately and HomeKit on the next restart
	for _, d := range p.manager.Devices() {
		p.mu.Lock()
		_, known := p.accs[d.ID()]
		p.mu.Unlock()
		if !known {
			hclog.Info.Printf("new device appeared: [%s]", d.Name)
			p.addDevice(d)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.accs {
		if a.Fan != nil {
			a.Device.FetchDetails()
		}
		a.updateGUI()
		if p.recorder != nil {
			if err := p.recorder.Record(a.Device); err != nil {
				hclog.Info.Println(err.Error())
			}
		}
	}
}

// setState drives the cloud from an HC toggle.
func setState(d *vesync.Device, on bool) bool {
	if on {
		return d.TurnOn()
	}
	return d.TurnOff()
}

// updateGUI pushes the registry state into the HC characteristics.
func (a *Accessory) updateGUI() {
	on := a.Device.Status == "on"
	switch {
	case a.Outlet != nil:
		if a.Outlet.Outlet.On.GetValue() != on {
			a.Outlet.Outlet.On.SetValue(on)
		}
		a.Outlet.Outlet.OutletInUse.SetValue(on)
	case a.Switch != nil:
		if a.Switch.Switch.On.GetValue() != on {
			a.Switch.Switch.On.SetValue(on)
		}
	case a.Fan != nil:
		a.Fan.Fan.Active.SetValue(activeValue(a.Device.Status))
		a.Fan.Fan.RotationSpeed.SetValue(levelToSpeed(a.Device.FanLevel()))
		a.Fan.Fan.FilterLifeLevel.SetValue(float64(a.Device.FilterLife()))
	}
}

func activeValue(status string) int {
	if status == "on" {
		return 1
	}
	return 0
}

// the purifier has three speeds; HC wants a percentage
func levelToSpeed(level int) float64 {
	if level < 1 {
		return 0
	}
	if level > 3 {
		level = 3
	}
	return float64(level) * 100 / 3
}

func speedToLevel(speed float64) int {
	switch {
	case speed <= 0:
		return 1
	case speed <= 34:
		return 1
	case speed <= 67:
		return 2
	default:
		return 3
	}
}

// accessoryID folds the device key into the uint64 HC wants.
func accessoryID(key string) uint64 {
	var id uint64
	for k, v := range []byte(key) {
		id += uint64(v) << ((k % 8) * 8)
	}
	if id < 2 {
		id += 2 // 1 is the bridge root
	}
	return id
}
