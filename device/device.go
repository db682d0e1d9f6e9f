// Copyright 2026 The Tensile Authors. SPDX-License-Identifier: Apache-2.0

// Package device tracks the current execution target of a compilation.
//
// A Device is a device type tag plus a non-negative device index. The current
// device is process-wide and settable by the host; "unset" is a valid state
// and passes that depend on a device are expected to degrade gracefully when
// they find it.
//
// Readers must treat the current device as a snapshot: Current returns a copy
// taken once, so a concurrent Set is never observed mid-pass.
package device

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Type is the tag identifying a kind of execution device.
type Type int

const (
	// Unknown is the zero Type; a Device with this type is unset.
	Unknown Type = iota
	CPU
	CUDA
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case CPU:
		return "cpu"
	case CUDA:
		return "cuda"
	default:
		return "unknown"
	}
}

// TypeFromName returns the Type registered under the given lower-case name.
func TypeFromName(name string) (Type, error) {
	switch name {
	case "cpu":
		return CPU, nil
	case "cuda":
		return CUDA, nil
	}
	return Unknown, errors.Errorf("unknown device type %q", name)
}

// Device is an execution target: a device type and an index among the devices
// of that type.
type Device struct {
	Type  Type
	Index int
}

// Unset returns the canonical unset Device.
func Unset() Device {
	return Device{Type: Unknown, Index: -1}
}

// Ok reports whether the device is configured: a known type and a
// non-negative index.
func (d Device) Ok() bool {
	return d.Type != Unknown && d.Index >= 0
}

// String implements fmt.Stringer, e.g. "cuda:0".
func (d Device) String() string {
	if !d.Ok() {
		return "unset"
	}
	return d.Type.String() + ":" + strconv.Itoa(d.Index)
}

// TENSILE_DEVICE is the environment variable with the default device
// configuration to use.
//
// The format is "<device_type>[:<index>]", e.g. "cuda:1" or "cpu". The index
// defaults to 0 when omitted.
const TENSILE_DEVICE = "TENSILE_DEVICE"

// FromConfig parses a device configuration string formatted as
// "<device_type>[:<index>]".
func FromConfig(config string) (Device, error) {
	name := config
	index := 0
	if idx := strings.Index(config, ":"); idx != -1 {
		name = config[:idx]
		var err error
		index, err = strconv.Atoi(config[idx+1:])
		if err != nil {
			return Unset(), errors.Wrapf(err, "invalid device index in configuration %q", config)
		}
	}
	dType, err := TypeFromName(name)
	if err != nil {
		return Unset(), errors.Wrapf(err, "invalid device configuration %q", config)
	}
	if index < 0 {
		return Unset(), errors.Errorf("negative device index in configuration %q", config)
	}
	return Device{Type: dType, Index: index}, nil
}

var (
	muCurrent sync.RWMutex
	current   = Unset()
)

// Current returns a copy of the current process-wide device. If no device was
// set yet, it attempts to initialize one from the TENSILE_DEVICE environment
// variable; failing that, it returns the unset Device.
func Current() Device {
	muCurrent.RLock()
	d := current
	muCurrent.RUnlock()
	if d.Ok() {
		return d
	}
	if config, found := os.LookupEnv(TENSILE_DEVICE); found {
		if envDevice, err := FromConfig(config); err == nil {
			Set(envDevice)
			return envDevice
		}
	}
	return d
}

// Set replaces the current process-wide device. Passing Unset() clears it.
func Set(d Device) {
	muCurrent.Lock()
	defer muCurrent.Unlock()
	current = d
}
