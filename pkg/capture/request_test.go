package capture

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTTPCanonicalizesMethodAndCapturesFields(t *testing.T) {
	r := httptest.NewRequest("post", "/x?a=1&a=2", strings.NewReader("body"))
	r.Header.Set("X-Test", "v")

	req := FromHTTP(r, []byte("body"))

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/x", req.Path)
	assert.Equal(t, "a=1&a=2", req.RawQuery)
	assert.Equal(t, []string{"1", "2"}, req.Query["a"])
	assert.Equal(t, "v", req.Header.Get("X-Test"))
	assert.Equal(t, []byte("body"), req.Body)
}

func TestHeaderValuesIsCaseInsensitive(t *testing.T) {
	req := Request{Header: http.Header{"Content-Type": {"application/json"}}}
	assert.Equal(t, []string{"application/json"}, req.HeaderValues("content-type"))
	assert.Nil(t, req.HeaderValues("x-missing"))
}

func TestDecodedJSON(t *testing.T) {
	req := Request{Body: []byte(`{"a":1}`)}
	v, err := req.DecodedJSON()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": json.Number("1")}, v)
}

func TestContentTypeIgnoresParameters(t *testing.T) {
	req := Request{Header: http.Header{"Content-Type": {"application/json; charset=utf-8"}}}
	assert.Equal(t, "application/json", req.ContentType())
}
