package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/product-categories/internal/core/domain"
	"github.com/niksmo/product-categories/internal/core/port"
	"github.com/niksmo/product-categories/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.SearchEventsProducer = (*SearchEventsProducer)(nil)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A SearchEventsProducer produces [domain.SearchEvent] keyed by query text.
type SearchEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewSearchEventsProducer(opts ...ProducerOpt) (SearchEventsProducer, error) {
	const op = "NewSearchEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return SearchEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "SearchEventsProducer"
	return SearchEventsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p SearchEventsProducer) Close() {
	p.producer.close()
}

func (p SearchEventsProducer) ProduceSearchEvent(
	ctx context.Context, evt domain.SearchEvent,
) error {
	const op = "ProduceSearchEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p SearchEventsProducer) createRecord(
	evt domain.SearchEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := searchEventToSchemaV1(evt)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.Query), Value: b}, nil
}

func searchEventToSchemaV1(evt domain.SearchEvent) (s schema.SearchEventV1) {
	if id, ok := evt.Criteria.SelectedUser(); ok {
		userID := int64(id)
		s.UserID = &userID
	}
	s.Query = evt.Criteria.Query
	s.Results = int64(evt.Results)
	s.At = evt.At.UTC()
	return s
}
