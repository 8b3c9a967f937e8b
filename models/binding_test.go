package models

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindJSON(t *testing.T, body string, target any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c.ShouldBindJSON(target)
}

func TestProductBindingAllowsZeroPrice(t *testing.T) {
	// Free samples and promotional listings are legitimate; only the
	// title is mandatory at bind time.
	var p Product
	err := bindJSON(t, `{"title":"Free sample","price":0,"stock":5}`, &p)
	require.NoError(t, err)
	assert.Equal(t, "Free sample", p.Title)
	assert.Zero(t, p.Price)
}

func TestProductBindingRequiresTitle(t *testing.T) {
	var p Product
	err := bindJSON(t, `{"price":10}`, &p)
	assert.Error(t, err)
}

func TestServiceBindingAllowsZeroPrice(t *testing.T) {
	var s Service
	err := bindJSON(t, `{"title":"Free consultation","price":0}`, &s)
	require.NoError(t, err)
	assert.Zero(t, s.Price)
}
