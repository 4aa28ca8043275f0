package vesync

import (
	log "github.com/sirupsen/logrus"
)

// LV-PUR131S support. The purifier shares the uuid addressing and
// status call shape of the newer outlets but adds mode, fan speed and
// display operations, and reports its telemetry through the detail
// call rather than energy endpoints.

// purifier modes
const (
	ModeAuto   = "auto"
	ModeManual = "manual"
	ModeSleep  = "sleep"
)

// FetchDetails refreshes the purifier's telemetry bag (active time,
// filter life, fan level, air quality, screen status) and its
// status/mode fields. False for non-purifiers and on any fetch
// failure, leaving the previous readings in place.
func (d *Device) FetchDetails() bool {
	if d.family != FamilyPurifier {
		return false
	}
	r := d.manager.invoke(opDetail, d, nil)
	if r == nil {
		log.Debugf("error getting %s details", d.Name)
		return false
	}

	d.Status = stringField(r, "deviceStatus", "unknown")
	d.ConnectionStatus = stringField(r, "connectionStatus", "unknown")
	d.mode = stringField(r, "mode", d.mode)
	d.details = map[string]interface{}{
		"active_time":   activeTime(r),
		"filter_life":   filterLifePercent(r),
		"screen_status": stringField(r, "screenStatus", "unknown"),
		"level":         intField(r, "level"),
		"air_quality":   stringField(r, "airQuality", "unknown"),
	}
	return true
}

// filterLifePercent digs the remaining-percentage out of the nested
// filterLife object.
func filterLifePercent(r map[string]interface{}) int {
	fl, ok := r["filterLife"].(map[string]interface{})
	if !ok {
		return 0
	}
	return intField(fl, "percent")
}

// Mode returns the purifier's operating mode (auto/manual/sleep).
func (d *Device) Mode() string {
	return d.mode
}

// FanLevel returns the current fan speed (1-3).
func (d *Device) FanLevel() int {
	return intField(d.details, "level")
}

// FilterLife returns the percentage of filter life remaining.
func (d *Device) FilterLife() int {
	return intField(d.details, "filter_life")
}

// AirQuality returns the reported air quality ("excellent" etc).
func (d *Device) AirQuality() string {
	return stringField(d.details, "air_quality", "unknown")
}

// ScreenStatus returns whether the display is on or off.
func (d *Device) ScreenStatus() string {
	return stringField(d.details, "screen_status", "unknown")
}

// SetMode switches the purifier between auto, manual and sleep.
// Switching into manual resets the fan to level 1.
func (d *Device) SetMode(mode string) bool {
	if d.family != FamilyPurifier {
		return false
	}
	if mode == d.mode {
		return false
	}
	if mode != ModeAuto && mode != ModeManual && mode != ModeSleep {
		log.Debugf("invalid purifier mode: %s", mode)
		return false
	}

	extra := map[string]interface{}{"mode": mode}
	if mode == ModeManual {
		extra["level"] = 1
	}
	if d.manager.invoke(opUpdateMode, d, extra) == nil {
		log.Debugf("error setting %s mode to %s", d.Name, mode)
		return false
	}
	d.mode = mode
	return true
}

// AutoMode puts the purifier in auto.
func (d *Device) AutoMode() bool {
	return d.SetMode(ModeAuto)
}

// ManualMode puts the purifier in manual.
func (d *Device) ManualMode() bool {
	return d.SetMode(ModeManual)
}

// SleepMode puts the purifier in sleep.
func (d *Device) SleepMode() bool {
	return d.SetMode(ModeSleep)
}

// ChangeFanSpeed sets the fan to 1, 2 or 3; pass 0 to cycle one step
// up, wrapping back to 1. Only valid in manual mode. Asking for the
// level the fan is already at succeeds without a call.
func (d *Device) ChangeFanSpeed(speed int) bool {
	if d.family != FamilyPurifier {
		return false
	}
	if d.mode != ModeManual {
		log.Debugf("%s not in manual mode, cannot change speed", d.Name)
		return false
	}

	level := intField(d.details, "level")
	switch {
	case speed == 0:
		level++
		if level > 3 {
			level = 1
		}
	case speed == level:
		return true
	case speed >= 1 && speed <= 3:
		level = speed
	default:
		log.Debugf("invalid fan speed for %s: %d", d.Name, speed)
		return false
	}

	if d.manager.invoke(opUpdateSpeed, d, map[string]interface{}{"level": level}) == nil {
		log.Debugf("error changing %s speed", d.Name)
		return false
	}
	if d.details == nil {
		d.details = map[string]interface{}{}
	}
	d.details["level"] = level
	return true
}

// displayToggle flips the purifier's screen.
func (d *Device) displayToggle(status string) bool {
	if d.family != FamilyPurifier {
		return false
	}
	if d.manager.invoke(opUpdateScreen, d, map[string]interface{}{"status": status}) == nil {
		log.Debugf("error toggling %s display", d.Name)
		return false
	}
	if d.details == nil {
		d.details = map[string]interface{}{}
	}
	d.details["screen_status"] = status
	return true
}

// DisplayOn lights the screen if it is off.
func (d *Device) DisplayOn() bool {
	if d.ScreenStatus() == "on" {
		return true
	}
	return d.displayToggle("on")
}

// DisplayOff darkens the screen if it is on.
func (d *Device) DisplayOff() bool {
	if d.ScreenStatus() == "off" {
		return true
	}
	return d.displayToggle("off")
}
