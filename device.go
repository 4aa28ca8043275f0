package vesync

// Device is one registry entry. The identity key (cid for the 7A
// generation, uuid for everything newer) never changes once set;
// everything else is refreshed on each poll.
type Device struct {
	Name             string
	CID              string
	UUID             string
	DeviceType       string
	DeviceImage      string
	ConfigModule     string
	ConnectionType   string
	ConnectionStatus string
	Status           string // on/off/unknown

	family  Family
	dialect Dialect
	manager *Manager

	mode    string                 // purifier only
	details map[string]interface{} // purifier telemetry bag
}

// newDevice classifies a raw listing record. Returns nil for
// deviceType codes we do not support.
func newDevice(rec map[string]interface{}, m *Manager) *Device {
	deviceType := stringField(rec, "deviceType", "")
	family, dialect, ok := Classify(deviceType)
	if !ok {
		return nil
	}

	return &Device{
		Name:             stringField(rec, "deviceName", ""),
		CID:              stringField(rec, "cid", ""),
		UUID:             stringField(rec, "uuid", ""),
		DeviceType:       deviceType,
		DeviceImage:      stringField(rec, "deviceImg", ""),
		ConfigModule:     stringField(rec, "configModule", ""),
		ConnectionType:   stringField(rec, "connectionType", ""),
		ConnectionStatus: stringField(rec, "connectionStatus", ""),
		Status:           stringField(rec, "deviceStatus", "unknown"),
		mode:             stringField(rec, "mode", ""),
		family:           family,
		dialect:          dialect,
		manager:          m,
	}
}

// key is the identifier this device's dialect addresses it by.
func (d *Device) key() string {
	if d.dialect.usesUUID() {
		return d.UUID
	}
	return d.CID
}

// ID is the exported view of the authoritative key.
func (d *Device) ID() string {
	return d.key()
}

// Family returns the device's capability grouping.
func (d *Device) Family() Family {
	return d.family
}

// Dialect returns the API generation the device speaks.
func (d *Device) Dialect() Dialect {
	return d.dialect
}

// Online reports cloud connectivity as of the last poll.
func (d *Device) Online() bool {
	return d.ConnectionStatus == "online"
}

// absorb copies the mutable fields from a freshly fetched record onto
// this entry, preserving its identity for anyone holding the pointer.
func (d *Device) absorb(nd *Device) {
	d.Name = nd.Name
	d.DeviceImage = nd.DeviceImage
	d.Status = nd.Status
	d.ConnectionType = nd.ConnectionType
	d.ConnectionStatus = nd.ConnectionStatus
	d.DeviceType = nd.DeviceType
	d.ConfigModule = nd.ConfigModule
	d.family = nd.family
	d.dialect = nd.dialect
	if nd.mode != "" {
		d.mode = nd.mode
	}
}

// setStatus issues the dialect's on/off call. The request goes out
// even when the device is already in the target state; the cloud
// treats that as success.
func (d *Device) setStatus(status string) bool {
	r := d.manager.invoke(opSetStatus, d, map[string]interface{}{"status": status})
	if r == nil {
		return false
	}
	d.Status = status
	return true
}

// TurnOn powers the device on. The status field updates only when the
// cloud acknowledges.
func (d *Device) TurnOn() bool {
	return d.setStatus("on")
}

// TurnOff powers the device off.
func (d *Device) TurnOff() bool {
	return d.setStatus("off")
}

// ActiveTime returns how long the device has been powered, in
// minutes. 0 for devices without a detail call.
func (d *Device) ActiveTime() int {
	return activeTime(d.manager.invoke(opDetail, d, nil))
}

// KilowattHoursToday returns today's energy total in kWh.
func (d *Device) KilowattHoursToday() float64 {
	return floatField(d.manager.invoke(opDetail, d, nil), "energy")
}

// Power returns the current draw in watts. 0 for families without
// energy metering.
func (d *Device) Power() float64 {
	return meterField(d.manager.invoke(opDetail, d, nil), d.dialect, "power")
}

// Voltage returns the measured line voltage.
func (d *Device) Voltage() float64 {
	return meterField(d.manager.invoke(opDetail, d, nil), d.dialect, "voltage")
}

// WeeklyEnergyTotal returns the running 7-day energy total in kWh.
func (d *Device) WeeklyEnergyTotal() float64 {
	return floatField(d.manager.invoke(opEnergyWeek, d, nil), "totalEnergy")
}

// MonthlyEnergyTotal returns the running 30-day energy total in kWh.
func (d *Device) MonthlyEnergyTotal() float64 {
	return floatField(d.manager.invoke(opEnergyMonth, d, nil), "totalEnergy")
}

// YearlyEnergyTotal returns the running one-year energy total in kWh.
func (d *Device) YearlyEnergyTotal() float64 {
	return floatField(d.manager.invoke(opEnergyYear, d, nil), "totalEnergy")
}

// WeekDailyEnergy returns the per-day kWh series for the past week,
// oldest first.
func (d *Device) WeekDailyEnergy() []float64 {
	return dailySeries(d.manager.invoke(opEnergyWeek, d, nil))
}
