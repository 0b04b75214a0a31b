package progress

import (
	"testing"
)

func TestNewWithEnvDisable(t *testing.T) {
	t.Setenv("XLSQ_NO_PROGRESS", "1")
	bar := New("test", 10)
	if bar.Enabled {
		t.Error("expected bar to be disabled with XLSQ_NO_PROGRESS=1")
	}
}

func TestNewWithJSONDisable(t *testing.T) {
	t.Setenv("XLSQ_JSON", "true")
	bar := New("test", 10)
	if bar.Enabled {
		t.Error("expected bar to be disabled with XLSQ_JSON=true")
	}
}

func TestBarIncrement(t *testing.T) {
	bar := &Bar{Total: 10, Width: 40, Enabled: false}
	bar.Increment("users")
	if bar.Current != 1 {
		t.Errorf("expected current=1, got %d", bar.Current)
	}
	bar.Increment("orders")
	if bar.Current != 2 {
		t.Errorf("expected current=2, got %d", bar.Current)
	}
}

func TestBarOverIncrement(t *testing.T) {
	bar := &Bar{Total: 3, Width: 40, Enabled: false}
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		bar.Increment(s)
	}
	if bar.Current != 3 {
		t.Errorf("expected current capped at 3, got %d", bar.Current)
	}
}
