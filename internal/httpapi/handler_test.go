package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkadit/brcode"
	"github.com/mkadit/brcode/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	payload string
	size    int
	err     error
}

func (s *stubRenderer) Render(payload string, size int) ([]byte, error) {
	s.payload, s.size = payload, size
	if s.err != nil {
		return nil, s.err
	}
	return []byte("\x89PNG"), nil
}

func newTestServer(t *testing.T, renderer *stubRenderer) *httptest.Server {
	t.Helper()
	h := NewHandler(brcode.NewEncoder(), renderer, config.Merchant{
		PixKey: "11999998888",
		Name:   "Igreja Teste",
		City:   "SAO PAULO",
		QRSize: 160,
	}, nil)
	srv := httptest.NewServer(h.Router([]string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestGetPayload(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{})

	t.Run("Merchant Defaults", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/pix/payload")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body payloadResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "00020126330014BR.GOV.BCB.PIX0111119999988885204000053039865802BR5912Igreja Teste6009SAO PAULO62070503***6304B959", body.Payload)
		assert.True(t, body.Static)
		assert.Equal(t, 160, body.QRSize)
	})

	t.Run("Amount And Reference", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/pix/payload?amount=10&txid=PEDIDO123&city=RIO%20DE%20JANEIRO")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body payloadResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "00020126330014BR.GOV.BCB.PIX011111999998888520400005303986540510.005802BR5912Igreja Teste6014RIO DE JANEIRO62130509PEDIDO123630487C0", body.Payload)
		assert.False(t, body.Static)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/pix/payload?amount=ten")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body errorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid_amount", body.Code)
	})

	t.Run("Field Overflow", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/pix/payload?name=" + strings.Repeat("A", 100))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body errorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "field_overflow", body.Code)
	})
}

func TestPostPayload(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{})

	t.Run("JSON Body", func(t *testing.T) {
		body := `{"pix_key":"11999998888","merchant_name":"Igreja Teste","merchant_city":"SAO PAULO","amount":"10.00"}`
		resp, err := http.Post(srv.URL+"/v1/pix/payload", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var out payloadResponse
		decodeBody(t, resp, &out)
		assert.Equal(t, "00020126330014BR.GOV.BCB.PIX011111999998888520400005303986540510.005802BR5912Igreja Teste6009SAO PAULO62070503***630427C8", out.Payload)
		assert.True(t, brcode.VerifyChecksum(out.Payload))
	})

	t.Run("Unknown Field", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/v1/pix/payload", "application/json", bytes.NewBufferString(`{"pixkey":"1"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Negative Amount", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/v1/pix/payload", "application/json", strings.NewReader(`{"amount":-1}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var out errorResponse
		decodeBody(t, resp, &out)
		assert.Equal(t, "invalid_amount", out.Code)
	})
}

func TestGetQRCode(t *testing.T) {
	t.Run("Renders Payload", func(t *testing.T) {
		renderer := &stubRenderer{}
		srv := newTestServer(t, renderer)

		resp, err := http.Get(srv.URL + "/v1/pix/qrcode.png?size=300")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		assert.Equal(t, 300, renderer.size)
		assert.True(t, brcode.VerifyChecksum(renderer.payload))
	})

	t.Run("Renderer Failure", func(t *testing.T) {
		srv := newTestServer(t, &stubRenderer{err: errors.New("boom")})

		resp, err := http.Get(srv.URL + "/v1/pix/qrcode.png")
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Invalid Size", func(t *testing.T) {
		srv := newTestServer(t, &stubRenderer{})

		resp, err := http.Get(srv.URL + "/v1/pix/qrcode.png?size=large")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubRenderer{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}
