package service

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/bistroboss/ordering-system/internal/core/service")
