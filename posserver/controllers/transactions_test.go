package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"poskernel/core"
	"poskernel/posserver/controllers"
	"poskernel/posserver/routes"
	"poskernel/posserver/services"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := core.NewRegistry()
	require.NoError(t, reg.InitializeTerminal("T01"))
	svc := services.NewService(reg)
	r := mux.NewRouter()
	routes.Register(r, controllers.NewTransactionController(svc), reg)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func beginTx(t *testing.T, srv *httptest.Server, store, currency string) uint64 {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/tx", map[string]string{"store": store, "currency": currency})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Handle uint64 `json:"handle"`
	}
	decode(t, resp, &body)
	require.NotZero(t, body.Handle)
	return body.Handle
}

// TestSaleRoundTrip drives the canonical sale through the HTTP façade.
func TestSaleRoundTrip(t *testing.T) {
	srv := newServer(t)
	h := beginTx(t, srv, "Store-1001", "USD")
	base := fmt.Sprintf("%s/api/tx/%d", srv.URL, h)

	resp := postJSON(t, base+"/lines", map[string]any{"sku": "SKU-1001", "quantity": 1, "unit_minor": 199})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = postJSON(t, base+"/lines", map[string]any{"sku": "SKU-2002", "quantity": 2, "unit_minor": 99})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var totals struct {
		TotalMinor    int64  `json:"total_minor"`
		TenderedMinor int64  `json:"tendered_minor"`
		ChangeMinor   int64  `json:"change_minor"`
		Currency      string `json:"currency"`
		State         string `json:"state"`
	}
	resp, err := http.Get(base + "/totals")
	require.NoError(t, err)
	decode(t, resp, &totals)
	require.Equal(t, int64(397), totals.TotalMinor)
	require.Equal(t, "Building", totals.State)
	require.Equal(t, "USD", totals.Currency)

	resp = postJSON(t, base+"/tender", map[string]any{"amount_minor": 500})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tender struct {
		State string `json:"state"`
	}
	decode(t, resp, &tender)
	require.Equal(t, "Completed", tender.State)

	resp, err = http.Get(base + "/totals")
	require.NoError(t, err)
	decode(t, resp, &totals)
	require.Equal(t, int64(500), totals.TenderedMinor)
	require.Equal(t, int64(103), totals.ChangeMinor)

	req, err := http.NewRequest(http.MethodDelete, base, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(base + "/totals")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// TestHierarchyAndVoidOverHTTP builds the set hierarchy, voids the
// root by stable id and checks the audit rows survive.
func TestHierarchyAndVoidOverHTTP(t *testing.T) {
	srv := newServer(t)
	h := beginTx(t, srv, "Kopi-01", "SGD")
	base := fmt.Sprintf("%s/api/tx/%d", srv.URL, h)

	var set core.LineItem
	resp := postJSON(t, base+"/lines", map[string]any{"sku": "TSET001", "quantity": 1, "unit_minor": 740})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &set)

	var drink core.LineItem
	resp = postJSON(t, base+"/lines", map[string]any{"sku": "TEH002", "quantity": 1, "unit_minor": 0, "parent_line": set.LineNumber})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &drink)
	require.Equal(t, set.LineNumber, drink.ParentLineNumber)

	resp = postJSON(t, base+"/lines", map[string]any{"sku": "MOD_NO_SUGAR", "quantity": 1, "unit_minor": 0, "parent_id": drink.LineItemID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, base+"/lines/void", map[string]any{"line_item_id": set.LineItemID, "reason": "customer changed mind"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var listing struct {
		Lines         []core.LineItem `json:"lines"`
		DecimalPlaces uint8           `json:"decimal_places"`
	}
	resp, err := http.Get(base + "/lines")
	require.NoError(t, err)
	decode(t, resp, &listing)
	require.Len(t, listing.Lines, 3)
	for _, li := range listing.Lines {
		require.True(t, li.Voided)
	}
	require.Equal(t, uint8(2), listing.DecimalPlaces)
}

// TestErrorMapping pins the kernel-error to HTTP-status translation.
func TestErrorMapping(t *testing.T) {
	srv := newServer(t)

	// Unknown handle.
	resp, err := http.Get(srv.URL + "/api/tx/9999/totals")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Bad currency on begin.
	resp = postJSON(t, srv.URL+"/api/tx", map[string]string{"store": "S", "currency": "USDX"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Zero quantity.
	h := beginTx(t, srv, "Store-1001", "USD")
	base := fmt.Sprintf("%s/api/tx/%d", srv.URL, h)
	resp = postJSON(t, base+"/lines", map[string]any{"sku": "SKU", "quantity": 0, "unit_minor": 10})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Mutation after completion conflicts.
	resp = postJSON(t, base+"/lines", map[string]any{"sku": "SKU", "quantity": 1, "unit_minor": 10})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = postJSON(t, base+"/tender", map[string]any{"amount_minor": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = postJSON(t, base+"/lines", map[string]any{"sku": "SKU", "quantity": 1, "unit_minor": 10})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

// TestTerminalAndVersionEndpoints covers the two info endpoints.
func TestTerminalAndVersionEndpoints(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/version")
	require.NoError(t, err)
	var version struct {
		Version string `json:"version"`
	}
	decode(t, resp, &version)
	require.Equal(t, core.KernelVersion, version.Version)

	resp, err = http.Get(srv.URL + "/api/terminal")
	require.NoError(t, err)
	var term struct {
		TerminalID string `json:"terminal_id"`
	}
	decode(t, resp, &term)
	require.Equal(t, "T01", term.TerminalID)
}
