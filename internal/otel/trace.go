package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/constants"
)

var Tracer = otel.Tracer(constants.AppStorefrontService)
