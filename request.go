package vesync

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// static values the cloud API expects in every request; these mimic
// the official Android app
const (
	acceptLanguage = "en"
	appVersion     = "2.5.1"
	phoneBrand     = "SM-N9005"
	phoneOS        = "Android"
	userType       = "1"
	mobileID       = "1234567890123456" // any 16 digits work
	pageNo         = "1"
	pageSize       = "50"
)

// localZone resolves the system's IANA timezone name, falling back to
// UTC when it cannot be determined. Overridable for tests.
var localZone = func() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	// /etc/localtime is a symlink into the zoneinfo database on
	// most systems
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if i := strings.Index(target, "zoneinfo/"); i >= 0 {
			return target[i+len("zoneinfo/"):]
		}
	}
	return "UTC"
}

// traceID is what the vendor app sends: the current unix time
func traceID() string {
	return fmt.Sprintf("%d", time.Now().Unix())
}

// headers builds the per-family header set. Outlets and the purifier
// share one shape, wall switches use a reduced one.
func (m *Manager) headers(f Family) map[string]string {
	if f == FamilySwitch {
		return map[string]string{
			"Content-Type": "application/json",
			"tk":           m.token,
			"tz":           localZone(),
			"accountID":    m.accountID,
			"appVersion":   appVersion,
		}
	}
	return map[string]string{
		"Content-Type":    "application/json",
		"tk":              m.token,
		"accountID":       m.accountID,
		"accept-language": acceptLanguage,
		"tz":              localZone(),
		"appVersion":      appVersion,
	}
}

// deviceBody is the payload for the device list call.
func (m *Manager) deviceBody() map[string]interface{} {
	return map[string]interface{}{
		"accountID":      m.accountID,
		"token":          m.token,
		"acceptLanguage": acceptLanguage,
		"appVersion":     appVersion,
		"phoneBrand":     phoneBrand,
		"phoneOS":        phoneOS,
		"timeZone":       localZone(),
		"traceId":        traceID(),
		"method":         "devices",
		"pageNo":         pageNo,
		"pageSize":       pageSize,
	}
}

// detailBody is the payload for detail and energy calls on
// uuid-addressed devices.
func (m *Manager) detailBody(uuid string) map[string]interface{} {
	return map[string]interface{}{
		"acceptLanguage": acceptLanguage,
		"accountID":      m.accountID,
		"appVersion":     appVersion,
		"method":         "devicedetail",
		"mobileId":       mobileID,
		"phoneBrand":     phoneBrand,
		"phoneOS":        phoneOS,
		"timeZone":       localZone(),
		"token":          m.token,
		"traceId":        traceID(),
		"uuid":           uuid,
	}
}

// statusBodyBase carries the fields every status-flavored call needs;
// the caller adds status, mode or level on top.
func (m *Manager) statusBodyBase(uuid string) map[string]interface{} {
	return map[string]interface{}{
		"accountID": m.accountID,
		"token":     m.token,
		"uuid":      uuid,
		"timeZone":  localZone(),
	}
}

// statusBody is the payload for an on/off change.
func (m *Manager) statusBody(uuid, status string) map[string]interface{} {
	body := m.statusBodyBase(uuid)
	body["status"] = status
	return body
}

// loginBody carries the hashed credentials for the login call.
func (m *Manager) loginBody(hashedPassword string) map[string]interface{} {
	return map[string]interface{}{
		"email":          m.Username,
		"password":       hashedPassword,
		"acceptLanguage": acceptLanguage,
		"appVersion":     appVersion,
		"method":         "login",
		"phoneBrand":     phoneBrand,
		"phoneOS":        phoneOS,
		"timeZone":       localZone(),
		"traceId":        traceID(),
		"userType":       userType,
		"devToken":       "",
	}
}
