package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Location is the region resolved from a postal code. Taluk on a candidate
// maps to City here.
type Location struct {
	City     string
	District string
	State    string
}

// ErrPincodeNotFound is returned when the postal API knows nothing about
// the given pin code.
var ErrPincodeNotFound = errors.New("pincode not found")

// Lookup resolves a postal code to a region.
type Lookup interface {
	LocationByPincode(pincode string) (*Location, error)
}

// Client talks to the public Indian postal pincode API
// (GET {base}/pincode/{pin}).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type pincodeResponse struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		Name     string `json:"Name"`
		District string `json:"District"`
		State    string `json:"State"`
	} `json:"PostOffice"`
}

func (c *Client) LocationByPincode(pincode string) (*Location, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/pincode/" + url.PathEscape(pincode))
	if err != nil {
		return nil, fmt.Errorf("pincode lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode lookup: unexpected status %d", resp.StatusCode)
	}

	var out []pincodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pincode lookup: decode: %w", err)
	}
	if len(out) == 0 || out[0].Status != "Success" || len(out[0].PostOffice) == 0 {
		return nil, ErrPincodeNotFound
	}

	po := out[0].PostOffice[0]
	return &Location{City: po.Name, District: po.District, State: po.State}, nil
}
