package brcode

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Builder pool for reuse
var builderPool = sync.Pool{
	New: func() interface{} {
		return &Builder{
			errors: make([]error, 0, 4),
		}
	},
}

// Builder collects request attributes and reports the first error on Build.
type Builder struct {
	req    Request
	errors []error
}

func NewBuilder() *Builder {
	b := builderPool.Get().(*Builder)
	b.req = Request{}
	b.errors = b.errors[:0]
	return b
}

// Release returns the builder to the pool
func (b *Builder) Release() {
	b.req = Request{}
	b.errors = b.errors[:0]
	builderPool.Put(b)
}

func (b *Builder) PixKey(key string) *Builder {
	b.req.PixKey = key
	return b
}

func (b *Builder) MerchantName(name string) *Builder {
	b.req.MerchantName = name
	return b
}

func (b *Builder) MerchantCity(city string) *Builder {
	b.req.MerchantCity = city
	return b
}

func (b *Builder) TransactionID(txid string) *Builder {
	b.req.TransactionID = txid
	return b
}

func (b *Builder) Amount(amount decimal.Decimal) *Builder {
	b.req.Amount = &amount
	return b
}

// AmountString parses a decimal amount such as "10" or "10.50".
func (b *Builder) AmountString(amount string) *Builder {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		b.errors = append(b.errors, fmt.Errorf("%w: %q", ErrInvalidAmount, amount))
		return b
	}
	return b.Amount(d)
}

func (b *Builder) QRSize(size int) *Builder {
	if size < 0 {
		b.errors = append(b.errors, fmt.Errorf("qr size %d must not be negative", size))
		return b
	}
	b.req.QRSize = size
	return b
}

func (b *Builder) Build() (Request, error) {
	if len(b.errors) > 0 {
		return Request{}, b.errors[0]
	}
	return b.req, nil
}

func (b *Builder) MustBuild() Request {
	if len(b.errors) > 0 {
		panic(b.errors[0])
	}
	return b.req
}
