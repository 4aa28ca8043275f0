package bridge

import (
	"github.com/brutella/hc/accessory"
	"github.com/brutella/hc/characteristic"
	"github.com/brutella/hc/service"
)

// EnergyOutlet is a single outlet with energy monitoring (the 7A, 15A
// and 10A hardware).
type EnergyOutlet struct {
	*accessory.Accessory
	Outlet *service.Outlet
}

func NewEnergyOutlet(info accessory.Info) *EnergyOutlet {
	acc := EnergyOutlet{}
	acc.Accessory = accessory.New(info, accessory.TypeOutlet)

	acc.Outlet = service.NewOutlet()
	acc.AddService(acc.Outlet.Service)

	return &acc
}

// WallSwitch is an in-wall light switch, no energy data.
type WallSwitch struct {
	*accessory.Accessory
	Switch *service.Switch
}

func NewWallSwitch(info accessory.Info) *WallSwitch {
	acc := WallSwitch{}
	acc.Accessory = accessory.New(info, accessory.TypeSwitch)

	acc.Switch = service.NewSwitch()
	acc.AddService(acc.Switch.Service)

	return &acc
}

// Purifier is the LV-PUR131S, shown as a fan with a filter life
// reading.
type Purifier struct {
	*accessory.Accessory
	Fan *PurifierSvc
}

func NewPurifier(info accessory.Info) *Purifier {
	acc := Purifier{}
	acc.Accessory = accessory.New(info, accessory.TypeAirPurifier)

	acc.Fan = NewPurifierSvc()
	acc.AddService(acc.Fan.Service)

	return &acc
}

type PurifierSvc struct {
	*service.Service

	Active          *characteristic.Active
	RotationSpeed   *characteristic.RotationSpeed
	FilterLifeLevel *characteristic.FilterLifeLevel
}

func NewPurifierSvc() *PurifierSvc {
	svc := PurifierSvc{}
	svc.Service = service.New(service.TypeFanV2)

	svc.Active = characteristic.NewActive()
	svc.AddCharacteristic(svc.Active.Characteristic)

	svc.RotationSpeed = characteristic.NewRotationSpeed()
	svc.AddCharacteristic(svc.RotationSpeed.Characteristic)

	svc.FilterLifeLevel = characteristic.NewFilterLifeLevel()
	svc.AddCharacteristic(svc.FilterLifeLevel.Characteristic)

	return &svc
}
