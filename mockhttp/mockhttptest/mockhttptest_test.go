package mockhttptest_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockstub/mockstub/mockhttp/mockhttptest"
)

func TestHarnessOneLineSetup(t *testing.T) {
	h := mockhttptest.New(t)

	m := h.Create(h.Mock("GET", "/hello").WithStatus(200).WithBodyString("hi"))

	resp, err := http.Get(h.URL() + "/hello")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	h.AssertAll(m)
}
