// Package vesync is a client for the VeSync cloud API, which fronts
// the Etekcity family of WiFi outlets, in-wall switches and the Levoit
// LV-PUR131S air purifier. Everything goes through the vendor cloud;
// there is no local control channel on these devices.
package vesync

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	loginPath   = "/cloud/v1/user/login"
	devicesPath = "/cloud/v1/deviceManaged/devices"

	// the cloud rate-limits aggressively; don't poll faster than this
	minPollInterval = time.Second * 30
)

// Manager holds the session and the device registry. Create one with
// New, call Login, then Update to populate the registry.
type Manager struct {
	Username string
	Password string

	token     string
	accountID string
	enabled   bool

	updateInterval time.Duration
	lastUpdate     time.Time
	inProcess      bool

	mu        sync.Mutex
	devices   []*Device
	transport Transport
}

// New returns a manager pointed at the vendor cloud.
func New(username, password string) *Manager {
	return NewWithURL(username, password, APIBaseURL)
}

// NewWithURL points the manager at an alternate endpoint, mostly
// useful for tests.
func NewWithURL(username, password, base string) *Manager {
	return &Manager{
		Username:       username,
		Password:       password,
		updateInterval: minPollInterval,
		transport:      newHTTPTransport(base),
	}
}

// Login authenticates and enables the session. The password crosses
// the wire MD5-hashed; that is the vendor's legacy scheme, not a
// security measure.
func (m *Manager) Login() error {
	sum := md5.Sum([]byte(m.Password))
	r := m.transport.Call(loginPath, "POST", m.loginBody(hex.EncodeToString(sum[:])), nil)
	if r == nil {
		return errors.New("login request failed")
	}

	result, ok := r["result"].(map[string]interface{})
	if !ok {
		return errors.New("login response carried no result")
	}
	token, _ := result["token"].(string)
	accountID, _ := result["accountID"].(string)
	if token == "" || accountID == "" {
		return errors.New("login response missing token or accountID")
	}

	m.token = token
	m.accountID = accountID
	m.enabled = true
	return nil
}

// Enabled reports whether Login has succeeded. While disabled every
// device operation is a no-op.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// fetchDevices pulls the device listing and classifies each record.
// Records with a deviceType we don't recognize are left out entirely.
// A nil return means the fetch itself failed and the registry should
// be left alone.
func (m *Manager) fetchDevices() []*Device {
	if !m.enabled {
		return nil
	}

	r := m.transport.Call(devicesPath, "POST", m.deviceBody(), m.headers(FamilyOutlet))
	if r == nil {
		log.Debug("cannot retrieve device list")
		return nil
	}
	result, ok := r["result"].(map[string]interface{})
	if !ok {
		return nil
	}
	list, ok := result["list"].([]interface{})
	if !ok {
		return nil
	}

	fresh := []*Device{}
	for _, raw := range list {
		rec, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		d := newDevice(rec, m)
		if d == nil {
			log.Debugf("skipping unsupported deviceType: %s", stringField(rec, "deviceType", "?"))
			continue
		}
		fresh = append(fresh, d)
	}
	return fresh
}

// Update refreshes the registry from the cloud. It is throttled to the
// minimum poll interval and guarded against re-entrant calls; a call
// that arrives while a poll is in flight is dropped, not queued.
// Fresh records merge into existing entries in place so that anyone
// holding a *Device sees the new state; devices missing from the fresh
// listing are kept as-is.
func (m *Manager) Update() {
	m.mu.Lock()
	if m.inProcess {
		m.mu.Unlock()
		return
	}
	if !m.lastUpdate.IsZero() && time.Since(m.lastUpdate) < m.updateInterval {
		m.mu.Unlock()
		return
	}
	m.inProcess = true
	m.mu.Unlock()

	fresh := m.fetchDevices()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inProcess = false
	if fresh == nil {
		return
	}

	for _, nd := range fresh {
		merged := false
		for _, d := range m.devices {
			if d.key() == nd.key() {
				d.absorb(nd)
				merged = true
				break
			}
		}
		if !merged {
			m.devices = append(m.devices, nd)
		}
	}
	m.lastUpdate = time.Now()
}

// Devices returns the current registry entries. The pointers are the
// live entries; their fields change on subsequent polls.
func (m *Manager) Devices() []*Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Device, len(m.devices))
	copy(out, m.devices)
	return out
}

// GetDevice looks up a registry entry by its key or display name.
func (m *Manager) GetDevice(id string) (*Device, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.devices {
		if d.key() == id || d.Name == id {
			return d, true
		}
	}
	return nil, false
}
