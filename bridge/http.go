package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	hclog "github.com/brutella/hc/log"
	"github.com/gorilla/mux"
)

var srv http.Server

// StartHTTP brings up the HTTP control channel. Returns immediately;
// the server runs until StopHTTP.
func (p *Platform) StartHTTP() {
	if p.conf.HTTPAddress == "" {
		return
	}

	srv = http.Server{
		Addr:         p.conf.HTTPAddress,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      p.router(),
	}

	go func() {
		hclog.Info.Printf("starting up HTTP control channel on %s", p.conf.HTTPAddress)
		if err := srv.ListenAndServe(); err != nil {
			hclog.Info.Print(err)
		}
	}()
}

// StopHTTP shuts the control channel down.
func (p *Platform) StopHTTP() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	srv.Shutdown(ctx)
}

func (p *Platform) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", homeHandler)
	r.HandleFunc("/devices", p.devicesHandler).Methods("GET")
	r.HandleFunc("/device/{id}/{cmd}", p.deviceHandler)
	return r
}

func homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	fmt.Fprint(w, `{ "status": "OK" }`)
}

type deviceStatus struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Model      string `json:"model"`
	Family     string `json:"family"`
	Status     string `json:"status"`
	Connection string `json:"connection"`
}

func (p *Platform) devicesHandler(w http.ResponseWriter, r *http.Request) {
	out := []deviceStatus{}
	for _, d := range p.manager.Devices() {
		out = append(out, deviceStatus{
			ID:         d.ID(),
			Name:       d.Name,
			Model:      d.DeviceType,
			Family:     d.Family().String(),
			Status:     d.Status,
			Connection: d.ConnectionStatus,
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	json.NewEncoder(w).Encode(out)
}

func (p *Platform) deviceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	cmd := vars["cmd"]

	a, ok := p.GetAccessory(id)
	if !ok {
		hclog.Info.Printf("request for unknown device (%s), ignoring", id)
		http.Error(w, `{ "status": "unknown device" }`, http.StatusNotFound)
		return
	}
	d := a.Device

	hclog.Info.Printf("HTTP control: [%s] [%s]", d.Name, cmd)
	switch cmd {
	case "on":
		if !d.TurnOn() {
			http.Error(w, `{ "status": "failed" }`, http.StatusBadGateway)
			return
		}
	case "off":
		if !d.TurnOff() {
			http.Error(w, `{ "status": "failed" }`, http.StatusBadGateway)
			return
		}
	case "status":
		// fall through to the report below
	default:
		hclog.Info.Printf("unknown command: %s", cmd)
		http.Error(w, `{ "status": "unknown command" }`, http.StatusNotAcceptable)
		return
	}
	a.updateGUI()

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	json.NewEncoder(w).Encode(deviceStatus{
		ID:         d.ID(),
		Name:       d.Name,
		Model:      d.DeviceType,
		Family:     d.Family().String(),
		Status:     d.Status,
		Connection: d.ConnectionStatus,
	})
}
