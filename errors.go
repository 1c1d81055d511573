package tft

import "fmt"

// ConfigError reports a missing or unusable display constant.
type ConfigError struct {
	Name string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DecodeError reports a source image that could not be read or decoded.
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// QuantizeError reports a quantizer that did not produce a usable palette.
// Got is -1 when the quantizer failed before producing any palette.
type QuantizeError struct {
	File string
	Want int
	Got  int
	Err  error
}

func (e *QuantizeError) Error() string {
	if e.Got < 0 {
		return fmt.Sprintf("quantize: %s: want %d colors: %v", e.File, e.Want, e.Err)
	}
	return fmt.Sprintf("quantize: %s: want %d colors, got %d: %v", e.File, e.Want, e.Got, e.Err)
}

func (e *QuantizeError) Unwrap() error {
	return e.Err
}
