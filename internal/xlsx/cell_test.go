package xlsx

import "testing"

func TestCellString(t *testing.T) {
	cases := []struct {
		cell Cell
		want string
	}{
		{Null(), ""},
		{Int64(42), "42"},
		{Int64(-7), "-7"},
		{Float64(1.5), "1.5"},
		{Float64(0.1), "0.1"},
		{Text("hi"), "hi"},
	}
	for _, c := range cases {
		if got := c.cell.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.cell, got, c.want)
		}
	}
}

func TestCellIsNull(t *testing.T) {
	if !Null().IsNull() {
		t.Error("Null() should be null")
	}
	for _, c := range []Cell{Int64(0), Float64(0), Text("")} {
		if c.IsNull() {
			t.Errorf("%+v should not be null", c)
		}
	}
}
