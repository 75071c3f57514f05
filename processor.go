package brcode

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Processor encodes many requests concurrently with a shared Encoder.
type Processor struct {
	encoder      *Encoder
	concurrency  int         // Max number of goroutines for encoding
	logger       *zap.Logger // Logs failed requests
	errorHandler func(error) // Callback for handling errors
}

// ProcessorOption defines a function signature for configuring a Processor.
type ProcessorOption func(*Processor)

// WithConcurrency sets the maximum number of concurrent goroutines for the processor.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(logger *zap.Logger) ProcessorOption {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithErrorHandler sets a custom error handler for errors encountered during
// batch or stream processing.
func WithErrorHandler(handler func(error)) ProcessorOption {
	return func(p *Processor) {
		p.errorHandler = handler
	}
}

// NewProcessor creates a new Processor with the given encoder and options.
func NewProcessor(encoder *Encoder, opts ...ProcessorOption) *Processor {
	if encoder == nil {
		encoder = defaultEncoder
	}

	p := &Processor{
		encoder:     encoder,
		concurrency: 4,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result pairs an encoded payload with the request it came from.
type Result struct {
	Index   int
	Request Request
	Payload string
	Err     error
}

func (p *Processor) encode(idx int, req Request) Result {
	payload, err := p.encoder.Encode(req)
	if err != nil {
		p.logger.Warn("failed to encode pix payload",
			zap.Int("index", idx),
			zap.Object("request", req),
			zap.Error(err),
		)
		if p.errorHandler != nil {
			p.errorHandler(err)
		}
	}
	return Result{Index: idx, Request: req, Payload: payload, Err: err}
}

// EncodeBatch encodes reqs concurrently. Payloads are returned in request
// order; the first error, if any, is returned alongside partial results.
func (p *Processor) EncodeBatch(ctx context.Context, reqs []Request) ([]string, error) {
	payloads := make([]string, len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency) // Limit concurrent goroutines

	for i, req := range reqs {
		// Check for context cancellation before starting a new job
		select {
		case <-ctx.Done():
			wg.Wait() // Wait for already-running jobs
			return nil, ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}: // Acquire semaphore slot
		}

		wg.Add(1)
		go func(idx int, r Request) {
			defer wg.Done()
			defer func() { <-semaphore }()

			res := p.encode(idx, r)
			payloads[idx] = res.Payload
			errs[idx] = res.Err
		}(i, req)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return payloads, err
		}
	}

	return payloads, nil
}

// EncodeStream encodes requests from input and sends a Result for each one
// to output, in completion order. It returns when input is closed or ctx
// is cancelled.
func (p *Processor) EncodeStream(ctx context.Context, input <-chan Request, output chan<- Result) error {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.concurrency)

	for idx := 0; ; idx++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()

		case req, ok := <-input:
			if !ok {
				wg.Wait()
				return nil
			}

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				wg.Wait()
				return ctx.Err()
			}

			wg.Add(1)
			go func(i int, r Request) {
				defer wg.Done()
				defer func() { <-semaphore }()

				res := p.encode(i, r)
				select {
				case output <- res:
				case <-ctx.Done():
				}
			}(idx, req)
		}
	}
}
