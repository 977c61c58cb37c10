// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder,
//   - context helpers (ToContext/FromContext/WithName),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, InfoKV, etc.).
//
// The runner and the attenuation engine log only through a context, so tests
// can attach a silent logger and assert on computation alone.
package logger
