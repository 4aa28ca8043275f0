package vesync

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// APIBaseURL is the vendor cloud endpoint.
const APIBaseURL = "https://smartapi.vesync.com"

const apiTimeout = time.Second * 10

// Transport issues a single call against the cloud API and returns the
// decoded body, or nil on any failure: network error, timeout, or a
// non-200 status. Implementations never return an error; the cloud is
// flaky and callers treat nil as "try again next poll".
type Transport interface {
	Call(path, method string, body interface{}, headers map[string]string) map[string]interface{}
}

type httpTransport struct {
	base   string
	client *http.Client
}

func newHTTPTransport(base string) *httpTransport {
	return &httpTransport{
		base:   base,
		client: &http.Client{Timeout: apiTimeout},
	}
}

func (t *httpTransport) Call(path, method string, body interface{}, headers map[string]string) map[string]interface{} {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Error(err)
			return nil
		}
	}

	req, err := http.NewRequest(method, t.base+path, &buf)
	if err != nil {
		log.Error(err)
		return nil
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	log.Debugf("[%s] calling %s", method, path)
	resp, err := t.client.Do(req)
	if err != nil {
		log.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debugf("%s returned %d", path, resp.StatusCode)
		return nil
	}

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Error(err)
		return nil
	}
	return decoded
}
