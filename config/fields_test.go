package config

import "testing"

func TestSetGet_AllEditableFields(t *testing.T) {
	c := DefaultConfig()
	for _, f := range EditableFields {
		v, err := c.Get(f.Key)
		if err != nil {
			t.Fatalf("get %s: %v", f.Key, err)
		}
		if err := c.Set(f.Key, v); err != nil {
			t.Fatalf("set %s=%q: %v", f.Key, v, err)
		}
	}
	if *c != *DefaultConfig() {
		t.Fatalf("writing back displayed values changed the config: %+v", c)
	}
}

func TestSet_Parses(t *testing.T) {
	c := DefaultConfig()
	if err := c.Set("interval_ms", " 120 "); err != nil || c.IntervalMs != 120 {
		t.Fatalf("interval: %v %d", err, c.IntervalMs)
	}
	if err := c.Set("keep_aspect", "Yes"); err != nil || !c.KeepAspect {
		t.Fatalf("keep_aspect: %v %v", err, c.KeepAspect)
	}
	if err := c.Set("serial", "emulator-5554"); err != nil || c.Serial != "emulator-5554" {
		t.Fatalf("serial: %v %q", err, c.Serial)
	}
}

func TestSet_Rejects(t *testing.T) {
	c := DefaultConfig()
	if err := c.Set("interval_ms", "fast"); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := c.Set("dark_mode", "maybe"); err == nil {
		t.Fatalf("expected bool error")
	}
	if err := c.Set("nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := c.Get("nope"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
