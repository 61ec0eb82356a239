package flights

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("services/flights")
