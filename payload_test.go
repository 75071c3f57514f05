package brcode

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staticPayload = "00020126330014BR.GOV.BCB.PIX0111119999988885204000053039865802BR5912Igreja Teste6009SAO PAULO62070503***6304B959"

func testRequest() Request {
	return Request{
		PixKey:       "11999998888",
		MerchantName: "Igreja Teste",
		MerchantCity: "SAO PAULO",
	}
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		req  func() Request
		want string
	}{
		{
			name: "Static Code",
			req:  testRequest,
			want: staticPayload,
		},
		{
			name: "Fixed Amount",
			req: func() Request {
				r := testRequest()
				r.Amount = amount("10")
				return r
			},
			want: "00020126330014BR.GOV.BCB.PIX011111999998888520400005303986540510.005802BR5912Igreja Teste6009SAO PAULO62070503***630427C8",
		},
		{
			name: "Amount Rounded To Cents",
			req: func() Request {
				r := testRequest()
				r.Amount = amount("1234.567")
				return r
			},
			want: "00020126330014BR.GOV.BCB.PIX01111199999888852040000530398654071234.575802BR5912Igreja Teste6009SAO PAULO62070503***63041AB1",
		},
		{
			name: "Dynamic Reference And Formatted Key",
			req: func() Request {
				return Request{
					PixKey:        "(11) 99999-8888",
					MerchantName:  "Igreja Teste",
					MerchantCity:  "RIO DE JANEIRO",
					TransactionID: "PEDIDO123",
					Amount:        amount("10.00"),
				}
			},
			want: "00020126330014BR.GOV.BCB.PIX011111999998888520400005303986540510.005802BR5912Igreja Teste6014RIO DE JANEIRO62130509PEDIDO123630487C0",
		},
		{
			name: "Email Key Stripped To Digits",
			req: func() Request {
				r := testRequest()
				r.PixKey = "user@example.com"
				return r
			},
			want: "00020126220014BR.GOV.BCB.PIX01005204000053039865802BR5912Igreja Teste6009SAO PAULO62070503***6304BD7C",
		},
		{
			name: "Multi-byte Name And City",
			req: func() Request {
				r := testRequest()
				r.MerchantName = "Igreja São José"
				r.MerchantCity = "São Paulo"
				return r
			},
			want: "00020126330014BR.GOV.BCB.PIX0111119999988885204000053039865802BR5917Igreja São José6010São Paulo62070503***63040381",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.req())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, VerifyChecksum(got))
		})
	}
}

func TestEncodeProperties(t *testing.T) {
	t.Run("No Amount Means No Tag 54", func(t *testing.T) {
		enc := NewEncoder()
		fields, err := enc.Fields(testRequest())
		require.NoError(t, err)

		_, ok := FindTLV(fields, TagTransactionAmount)
		assert.False(t, ok)

		payload, err := enc.Encode(testRequest())
		require.NoError(t, err)
		assert.Contains(t, payload, "5303986"+"5802BR", "currency must be followed by country")
	})

	t.Run("Scenario Shape", func(t *testing.T) {
		payload, err := Encode(testRequest())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(payload, "000201"))
		assert.Contains(t, payload, "26330014BR.GOV.BCB.PIX0111")
		assert.Regexp(t, regexp.MustCompile(`6304[0-9A-F]{4}$`), payload)
	})

	t.Run("Empty Transaction ID Falls Back", func(t *testing.T) {
		req := testRequest()
		req.TransactionID = ""
		payload, err := Encode(req)
		require.NoError(t, err)
		assert.Contains(t, payload, "62070503***6304")

		req.TransactionID = "   "
		payload, err = Encode(req)
		require.NoError(t, err)
		assert.Contains(t, payload, "62070503***6304")
	})

	t.Run("Key Sub-field Holds Only Digits", func(t *testing.T) {
		for _, key := range []string{"user@example.com", "+55 (11) 99999-8888", "123.456.789-09", "abc"} {
			req := testRequest()
			req.PixKey = key

			fields, err := NewEncoder().Fields(req)
			require.NoError(t, err)

			account, ok := FindTLV(fields, TagMerchantAccount)
			require.True(t, ok)
			keyField, ok := FindTLV(account.Children, SubTagPixKey)
			require.True(t, ok)
			assert.Regexp(t, `^[0-9]*$`, keyField.Value, "key %q", key)
		}
	})

	t.Run("City Change Leaves Other Prefixes", func(t *testing.T) {
		a := testRequest()
		b := testRequest()
		b.MerchantCity = "CAMPINAS"

		pa, err := Encode(a)
		require.NoError(t, err)
		pb, err := Encode(b)
		require.NoError(t, err)
		assert.NotEqual(t, pa, pb)

		fa, err := NewEncoder().Fields(a)
		require.NoError(t, err)
		fb, err := NewEncoder().Fields(b)
		require.NoError(t, err)
		require.Len(t, fb, len(fa))

		for i := range fa {
			if fa[i].Tag == TagMerchantCity {
				continue
			}
			ea, err := fa[i].Encode()
			require.NoError(t, err)
			eb, err := fb[i].Encode()
			require.NoError(t, err)
			assert.Equal(t, ea[:TagLength+LengthDigits], eb[:TagLength+LengthDigits], "tag %s", fa[i].Tag)
		}
	})

	t.Run("Size Hint Does Not Change Payload", func(t *testing.T) {
		req := testRequest()
		req.QRSize = 512
		payload, err := Encode(req)
		require.NoError(t, err)
		assert.Equal(t, staticPayload, payload)
	})

	t.Run("Round Trip For Many Requests", func(t *testing.T) {
		names := []string{"A", "Padaria do Zé", strings.Repeat("N", 99)}
		amounts := []*decimal.Decimal{nil, amount("0.01"), amount("99999.99")}
		for _, name := range names {
			for _, amt := range amounts {
				req := testRequest()
				req.MerchantName = name
				req.Amount = amt

				payload, err := Encode(req)
				require.NoError(t, err)
				assert.True(t, VerifyChecksum(payload), payload)
			}
		}
	})
}

func TestEncodeOverflow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		tag    string
	}{
		{"Merchant Name", func(r *Request) { r.MerchantName = strings.Repeat("A", 100) }, TagMerchantName},
		{"Merchant City", func(r *Request) { r.MerchantCity = strings.Repeat("ã", 50) }, TagMerchantCity},
		{"Transaction ID", func(r *Request) { r.TransactionID = strings.Repeat("1", 100) }, PathReferenceLabel},
		{"Transaction ID Template", func(r *Request) { r.TransactionID = strings.Repeat("1", 96) }, TagAdditionalData},
		{"Pix Key Template", func(r *Request) { r.PixKey = strings.Repeat("1", 78) }, TagMerchantAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(&req)

			payload, err := Encode(req)
			assert.Empty(t, payload)
			require.ErrorIs(t, err, ErrFieldOverflow)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.tag, fe.Tag)
		})
	}

	t.Run("Longest Key Fits", func(t *testing.T) {
		req := testRequest()
		req.PixKey = strings.Repeat("1", 77)
		payload, err := Encode(req)
		require.NoError(t, err)
		assert.Contains(t, payload, "26990014BR.GOV.BCB.PIX0177")
	})
}

func TestEncoderOptions(t *testing.T) {
	t.Run("Typed Key Mode", func(t *testing.T) {
		req := testRequest()
		req.PixKey = "User@Example.com"

		payload, err := NewEncoder(WithKeyMode(KeyModeTyped)).Encode(req)
		require.NoError(t, err)
		assert.Equal(t, "00020126380014BR.GOV.BCB.PIX0116user@example.com5204000053039865802BR5912Igreja Teste6009SAO PAULO62070503***63041169", payload)
	})

	t.Run("ASCII Fold", func(t *testing.T) {
		req := testRequest()
		req.MerchantName = "Igreja São José"
		req.MerchantCity = "São Paulo"

		payload, err := NewEncoder(WithASCIIFold(true)).Encode(req)
		require.NoError(t, err)
		assert.Equal(t, "00020126330014BR.GOV.BCB.PIX0111119999988885204000053039865802BR5915Igreja Sao Jose6009Sao Paulo62070503***63047D4D", payload)
	})

	t.Run("Custom Profile", func(t *testing.T) {
		profile := DefaultProfile()
		profile.MCC = "8661"

		enc := NewEncoder(WithProfile(profile))
		payload, err := enc.Encode(testRequest())
		require.NoError(t, err)
		assert.Equal(t, "00020126330014BR.GOV.BCB.PIX0111119999988885204866153039865802BR5912Igreja Teste6009SAO PAULO62070503***630487AB", payload)
		assert.Equal(t, "8661", enc.Profile().MCC)
	})

	t.Run("Invalid Profile", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Profile)
		}{
			{"Letters In MCC", func(p *Profile) { p.MCC = "abcdefgh" }},
			{"Short Currency", func(p *Profile) { p.Currency = "98" }},
			{"Empty GUID", func(p *Profile) { p.GUID = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := DefaultProfile()
				tt.mutate(&profile)
				enc := NewEncoder(WithProfile(profile))

				payload, err := enc.Encode(testRequest())
				assert.ErrorIs(t, err, ErrInvalidProfile)
				assert.Empty(t, payload)

				_, err = enc.Fields(testRequest())
				assert.ErrorIs(t, err, ErrInvalidProfile)
			})
		}
	})
}

func TestEncodeConcurrent(t *testing.T) {
	enc := NewEncoder()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			payload, err := enc.Encode(testRequest())
			if err == nil {
				results[idx] = payload
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, staticPayload, got)
	}
}
