package vesync

import (
	"fmt"
)

// operation is one logical call against a device.
type operation int

const (
	opDetail operation = iota
	opSetStatus
	opEnergyWeek
	opEnergyMonth
	opEnergyYear
	opUpdateMode   // purifier only
	opUpdateSpeed  // purifier only
	opUpdateScreen // purifier only
)

// profile is one row of the dialect table: where each logical
// operation goes and how the device is addressed. The old API
// generations never change, so the table is fixed.
type profile struct {
	family     Family
	detailPath string // empty: dialect has no detail call
	statusPath string
	energyPath string // empty: dialect has no energy data
	uuidKey    bool   // devices addressed by uuid rather than cid
	pathKeyed  bool   // key and arguments substituted into the URL (7A)
	checkCode  bool   // responses carry a top-level result code
}

var profiles = map[Dialect]profile{
	DialectOutlet7A: {
		family:     FamilyOutlet,
		detailPath: "/v1/device/%s/detail",
		statusPath: "/v1/wifi-switch-1.3/%s/status/%s",
		energyPath: "/v1/device/%s/energy/%s",
		pathKeyed:  true,
	},
	DialectOutlet15A: {
		family:     FamilyOutlet,
		detailPath: "/15a/v1/device/devicedetail",
		statusPath: "/15a/v1/device/devicestatus",
		energyPath: "/15a/v1/device/energy%s",
		uuidKey:    true,
		checkCode:  true,
	},
	DialectOutlet10A: {
		family:     FamilyOutlet,
		detailPath: "/10a/v1/device/devicedetail",
		statusPath: "/10a/v1/device/devicestatus",
		energyPath: "/10a/v1/device/energy%s",
		uuidKey:    true,
		checkCode:  true,
	},
	DialectInWallSwitch: {
		family:     FamilySwitch,
		statusPath: "/inwallswitch/v1/device/devicestatus/",
		uuidKey:    true,
	},
	DialectPurifier131: {
		family:     FamilyPurifier,
		detailPath: "/131airPurifier/v1/device/deviceDetail",
		statusPath: "/131airPurifier/v1/device/deviceStatus",
		uuidKey:    true,
		checkCode:  true,
	},
}

// purifier maintenance endpoints, not part of the shared table
const (
	purifierModePath   = "/131airPurifier/v1/device/updateMode"
	purifierSpeedPath  = "/131airPurifier/v1/device/updateSpeed"
	purifierScreenPath = "/131airPurifier/v1/device/updateScreen"
)

// invoke routes one logical operation to the device's dialect-specific
// endpoint and returns the decoded response. A nil return covers all
// failure kinds: transport error, missing success marker, and
// operations the dialect does not support. No retries here.
func (m *Manager) invoke(op operation, d *Device, extra map[string]interface{}) map[string]interface{} {
	if !m.enabled {
		return nil
	}
	p, ok := profiles[d.dialect]
	if !ok {
		return nil
	}

	switch op {
	case opDetail:
		if p.detailPath == "" {
			return nil
		}
		if p.pathKeyed {
			r := m.transport.Call(fmt.Sprintf(p.detailPath, d.CID), "GET", nil, m.headers(p.family))
			return checked(p, r)
		}
		r := m.transport.Call(p.detailPath, "POST", m.detailBody(d.UUID), m.headers(p.family))
		return checked(p, r)

	case opSetStatus:
		status, _ := extra["status"].(string)
		if status != "on" && status != "off" {
			return nil
		}
		if p.pathKeyed {
			r := m.transport.Call(fmt.Sprintf(p.statusPath, d.CID, status), "PUT", nil, m.headers(p.family))
			return checked(p, r)
		}
		r := m.transport.Call(p.statusPath, "PUT", m.statusBody(d.UUID, status), m.headers(p.family))
		return checked(p, r)

	case opEnergyWeek, opEnergyMonth, opEnergyYear:
		if p.energyPath == "" {
			return nil
		}
		period := map[operation]string{
			opEnergyWeek:  "week",
			opEnergyMonth: "month",
			opEnergyYear:  "year",
		}[op]
		if p.pathKeyed {
			r := m.transport.Call(fmt.Sprintf(p.energyPath, d.CID, period), "GET", nil, m.headers(p.family))
			return checked(p, r)
		}
		r := m.transport.Call(fmt.Sprintf(p.energyPath, period), "POST", m.detailBody(d.UUID), m.headers(p.family))
		return checked(p, r)

	case opUpdateMode, opUpdateSpeed, opUpdateScreen:
		if d.dialect != DialectPurifier131 {
			return nil
		}
		path := map[operation]string{
			opUpdateMode:   purifierModePath,
			opUpdateSpeed:  purifierSpeedPath,
			opUpdateScreen: purifierScreenPath,
		}[op]
		body := m.statusBodyBase(d.UUID)
		for k, v := range extra {
			body[k] = v
		}
		r := m.transport.Call(path, "PUT", body, m.headers(p.family))
		return checked(p, r)
	}

	return nil
}

// checked gates responses from dialects that carry a success marker:
// the decoded body must have a top-level code of 0.
func checked(p profile, r map[string]interface{}) map[string]interface{} {
	if r == nil {
		return nil
	}
	if p.checkCode {
		code, ok := asFloat(r["code"])
		if !ok || code != 0 {
			return nil
		}
	}
	return r
}
