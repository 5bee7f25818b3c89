// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection connects a pin of a part (PP) to a pin of its host chip (CP).
// Either side may be a single pin "a", an indexed bus pin "a[3]", a bus range
// "a[0..7]" or, for the part side, the bare name of a bus.
//
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection configuration like "partPinX=chipPinY, ...".
//
//	ParseConnections("a=x, b[0..3]=bus[4..7], data=word")
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	items, err := splitList(c)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		i := strings.IndexRune(item, '=')
		if i < 0 {
			return nil, parseError(c, item, "expected pin assignment")
		}
		pp, cp := strings.TrimSpace(item[:i]), strings.TrimSpace(item[i+1:])
		if err := checkPin(pp); err != nil {
			return nil, parseError(c, item, err.Error())
		}
		if err := checkPin(cp); err != nil {
			return nil, parseError(c, item, err.Error())
		}
		conns = append(conns, Connection{pp, cp})
	}
	return conns, nil
}

// ParseIOSpec parses a pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIOSpec("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIOSpec(spec string) ([]string, error) {
	var out []string
	items, err := splitList(spec)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, item := range items {
		name, size, err := busDecl(item)
		if err != nil {
			return nil, parseError(spec, item, err.Error())
		}
		var pins []string
		if size < 0 {
			pins = []string{name}
		} else {
			for i := 0; i < size; i++ {
				pins = append(pins, BusPinName(name, i))
			}
		}
		for _, p := range pins {
			if seen[p] {
				return nil, parseError(spec, item, "duplicate pin name "+p)
			}
			seen[p] = true
		}
		out = append(out, pins...)
	}
	return out, nil
}

// IO is like ParseIOSpec but panics on error. It is meant to be used in
// PartSpec literals.
//
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, n int) string {
	return bus + "[" + strconv.Itoa(n) + "]"
}

func splitList(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	items := strings.Split(s, ",")
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, errors.Errorf("in %q: empty list item", s)
		}
		items[i] = item
	}
	return items, nil
}

// busDecl parses "name" or "name[size]". size is -1 for plain pins.
func busDecl(item string) (name string, size int, err error) {
	i := strings.IndexRune(item, '[')
	if i < 0 {
		if !isIdent(item) {
			return "", 0, errors.New("invalid pin name")
		}
		return item, -1, nil
	}
	name = item[:i]
	if !isIdent(name) {
		return "", 0, errors.New("invalid bus name")
	}
	if !strings.HasSuffix(item, "]") {
		return "", 0, errors.New("missing close bracket")
	}
	size, err = strconv.Atoi(item[i+1 : len(item)-1])
	if err != nil || size <= 0 {
		return "", 0, errors.New("invalid bus size")
	}
	return name, size, nil
}

func checkPin(p string) error {
	_, err := expandRange(p)
	return err
}

// expandRange expands "a[2..4]" to a[2], a[3], a[4]. Plain and indexed pin
// names are returned as is.
func expandRange(name string) ([]string, error) {
	i := strings.IndexRune(name, '[')
	if i < 0 {
		if !isIdent(name) {
			return nil, errors.New("invalid pin name " + strconv.Quote(name))
		}
		return []string{name}, nil
	}
	bus := name[:i]
	if !isIdent(bus) {
		return nil, errors.New("invalid bus name " + strconv.Quote(bus))
	}
	if !strings.HasSuffix(name, "]") {
		return nil, errors.New("no terminating ] in bus range")
	}
	n := name[i+1 : len(name)-1]
	i = strings.Index(n, "..")
	if i < 0 {
		idx, err := strconv.Atoi(n)
		if err != nil || idx < 0 {
			return nil, errors.New("invalid bus index in " + name)
		}
		return []string{BusPinName(bus, idx)}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil || start < 0 {
		return nil, errors.New("invalid range start in " + name)
	}
	end, err := strconv.Atoi(n[i+2:])
	if err != nil || end < start {
		return nil, errors.New("invalid range end in " + name)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

func parseError(in, item, msg string) error {
	return errors.Errorf("in %q at %q: %s", in, item, msg)
}
