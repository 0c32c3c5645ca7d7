package logger

import (
	"time"

	"go.uber.org/zap"
)

// Typed field helpers so call sites stay consistent about key names.

// RequestID is the per-request correlation id.
func RequestID(v string) zap.Field { return zap.String("request_id", v) }

// Method is the HTTP method.
func Method(v string) zap.Field { return zap.String("method", v) }

// Path is the request path.
func Path(v string) zap.Field { return zap.String("path", v) }

// Status is the HTTP status code.
func Status(v int) zap.Field { return zap.Int("status", v) }

// Duration is the request duration.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// Provider is the OAuth provider tag (kakao, google, naver).
func Provider(v string) zap.Field { return zap.String("provider", v) }

// IdentityID is the local identity id.
func IdentityID(v string) zap.Field { return zap.String("identity_id", v) }

// ExternalID is the provider-scoped user id.
func ExternalID(v string) zap.Field { return zap.String("external_id", v) }

// Component names the emitting component/module.
func Component(v string) zap.Field { return zap.String("component", v) }

// Layer names the layer (controller, service, store).
func Layer(v string) zap.Field { return zap.String("layer", v) }

// Op names the current operation.
func Op(v string) zap.Field { return zap.String("op", v) }

// Err wraps an error.
func Err(err error) zap.Field { return zap.Error(err) }

// String is a generic string field.
func String(key, v string) zap.Field { return zap.String(key, v) }

// Int is a generic int field.
func Int(key string, v int) zap.Field { return zap.Int(key, v) }

// Bool is a generic bool field.
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
