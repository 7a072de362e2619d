package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Field describes one setting editable from the settings window.
type Field struct {
	Key   string // json key
	Label string
}

// EditableFields lists the settings shown in the settings window, in order.
var EditableFields = []Field{
	{"source", "Source (adb/desktop)"},
	{"adb_path", "ADB Path"},
	{"serial", "Device Serial"},
	{"display_id", "Display ID"},
	{"interval_ms", "Interval ms"},
	{"capture_timeout_ms", "Capture Timeout ms"},
	{"decode_upstream", "Decode On Worker (true/false)"},
	{"keep_aspect", "Keep Aspect (true/false)"},
	{"scaler", "Scaler (nearest/bilinear/catmullrom)"},
	{"dark_mode", "Dark Mode (true/false)"},
}

// Get formats the value of key for display.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "source":
		return c.Source, nil
	case "adb_path":
		return c.ADBPath, nil
	case "serial":
		return c.Serial, nil
	case "display_id":
		return c.DisplayID, nil
	case "interval_ms":
		return strconv.Itoa(c.IntervalMs), nil
	case "capture_timeout_ms":
		return strconv.Itoa(c.CaptureTimeout), nil
	case "decode_upstream":
		return strconv.FormatBool(c.DecodeUpstream), nil
	case "keep_aspect":
		return strconv.FormatBool(c.KeepAspect), nil
	case "scaler":
		return c.Scaler, nil
	case "dark_mode":
		return strconv.FormatBool(c.DarkMode), nil
	}
	return "", fmt.Errorf("unknown setting %q", key)
}

// Set parses value into the field named key. Values are not validated
// beyond parsing; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	var err error
	switch key {
	case "source":
		c.Source = value
	case "adb_path":
		c.ADBPath = value
	case "serial":
		c.Serial = value
	case "display_id":
		c.DisplayID = value
	case "interval_ms":
		c.IntervalMs, err = parseInt(value)
	case "capture_timeout_ms":
		c.CaptureTimeout, err = parseInt(value)
	case "decode_upstream":
		c.DecodeUpstream, err = parseBoolLoose(value)
	case "keep_aspect":
		c.KeepAspect, err = parseBoolLoose(value)
	case "scaler":
		c.Scaler = strings.ToLower(value)
	case "dark_mode":
		c.DarkMode, err = parseBoolLoose(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseBoolLoose(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
