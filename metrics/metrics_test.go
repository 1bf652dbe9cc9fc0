package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ordersPlaced.WithLabelValues("COD"))
	OrderPlaced("COD")
	assert.Equal(t, before+1, testutil.ToFloat64(ordersPlaced.WithLabelValues("COD")))

	before = testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	CacheLookup(true)
	assert.Equal(t, before+1, testutil.ToFloat64(cacheLookups.WithLabelValues("hit")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	SignatureMismatch()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "storefront_orders_signature_mismatch_total"))
}
