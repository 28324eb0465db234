package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVendorStore(t *testing.T) {
	e := setupApp(t)
	token, resp := registerVendor(t, e, "Joe's Tees", "joe@x.com", "secret1")
	vendorID := int(resp["vendor"].(map[string]interface{})["id"].(float64))

	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/api/vendors/%d/store", vendorID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"subdomain":"joes-tees"`)
	assert.Contains(t, rec.Body.String(), `"name":"Joe's Tees"`)
}

func TestGetVendorStoreForeignVendor(t *testing.T) {
	e := setupApp(t)
	tokenA, _ := registerVendor(t, e, "Store A", "a@x.com", "secret1")
	_, respB := registerVendor(t, e, "Store B", "b@x.com", "secret2")
	vendorB := int(respB["vendor"].(map[string]interface{})["id"].(float64))

	// A cannot read B's store; existence is not confirmed either way
	rec := doJSON(e, http.MethodGet, fmt.Sprintf("/api/vendors/%d/store", vendorB), tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/vendors/not-a-number/store", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
