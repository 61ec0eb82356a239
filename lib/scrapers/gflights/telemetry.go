package gflights

import (
	"clovis-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/gflights")

// SetRestyInstrumentOutput attaches a request dump sink to the
// client's underlying http clients, for verbose debugging runs.
func (c *Client) SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(c.rpc, tracer, out)
	restyutil.InstrumentClient(c.landing, tracer, out)
}
