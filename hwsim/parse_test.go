package hwsim

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseIOSpec(t *testing.T) {
	td := []struct {
		in   string
		pins []string
		err  string
	}{
		{"", nil, ""},
		{"a, b", []string{"a", "b"}, ""},
		{"in[2], sel", []string{"in[0]", "in[1]", "sel"}, ""},
		{" a ,b[1] ", []string{"a", "b[0]"}, ""},
		{"a,", nil, "empty list item"},
		{"a[x]", nil, "invalid bus size"},
		{"a[2", nil, "missing close bracket"},
		{"2a", nil, "invalid pin name"},
		{"a, a", nil, "duplicate pin name a"},
		{"a[2], a[1]", nil, "duplicate pin name a[0]"},
	}
	for _, d := range td {
		pins, err := ParseIOSpec(d.in)
		if d.err != "" {
			if err == nil || !strings.Contains(err.Error(), d.err) {
				t.Errorf("%q: expected error %q, got %v", d.in, d.err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", d.in, err)
			continue
		}
		if !reflect.DeepEqual(pins, d.pins) {
			t.Errorf("%q: expected %v, got %v", d.in, d.pins, pins)
		}
	}
}

func TestParseConnections(t *testing.T) {
	conns, err := ParseConnections("a=x, b[0..3]=bus[4..7], data=word, c=true")
	if err != nil {
		t.Fatal(err)
	}
	exp := []Connection{{"a", "x"}, {"b[0..3]", "bus[4..7]"}, {"data", "word"}, {"c", "true"}}
	if !reflect.DeepEqual(conns, exp) {
		t.Fatalf("expected %v, got %v", exp, conns)
	}
	for _, s := range []string{"a", "a=", "=b", "a=b[", "a=b[3..1]", "a=b[-1]", "a=b,,c=d"} {
		if _, err := ParseConnections(s); err == nil {
			t.Errorf("%q: expected an error", s)
		}
	}
}

func TestExpandRange(t *testing.T) {
	td := []struct {
		in  string
		out []string
	}{
		{"a", []string{"a"}},
		{"a[3]", []string{"a[3]"}},
		{"a[2..4]", []string{"a[2]", "a[3]", "a[4]"}},
		{"a[5..5]", []string{"a[5]"}},
	}
	for _, d := range td {
		out, err := expandRange(d.in)
		if err != nil {
			t.Errorf("%q: %v", d.in, err)
			continue
		}
		if !reflect.DeepEqual(out, d.out) {
			t.Errorf("%q: expected %v, got %v", d.in, d.out, out)
		}
	}
}
