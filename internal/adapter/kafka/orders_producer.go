package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.OrderEventsProducer = (*OrderEventsProducer)(nil)

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

// An OrderEventsProducer emits an order-placed record per committed
// checkout, keyed by the order id.
type OrderEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewOrderEventsProducer(
	opts ...ProducerOpt,
) (OrderEventsProducer, error) {
	const op = "NewOrderEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrderEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "OrderEventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return OrderEventsProducer{
		encoder:  options.encoder,
		producer: p,
		opPrefix: opPrefix,
	}, nil
}

func (p OrderEventsProducer) Close() {
	p.producer.close()
}

func (p OrderEventsProducer) ProduceOrderPlaced(
	ctx context.Context, order domain.Order,
) error {
	const op = "ProduceOrderPlaced"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(order)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p OrderEventsProducer) createRecord(
	order domain.Order,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := orderToSchemaV1(order)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	msgKey := []byte(strconv.FormatInt(order.ID, 10))
	return &kgo.Record{Key: msgKey, Value: b}, nil
}
