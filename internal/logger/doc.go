// Package logger wraps zap with:
//   - a global sugared logger using a console encoder,
//   - context helpers (ToContext/FromContext/WithName),
//   - level parsing and configuration,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Services accept a context and pull their logger out of it, so every
// component logs through the same scoped, structured pipeline.
package logger
