package parser

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

var tokenType = reflect.TypeOf(lexer.Token{})

// Dump writes an indented outline of the tree rooted at n: one line per
// node with its position and scalar fields, children below it.
func Dump(w io.Writer, n Node) {
	d := &dumper{w: w}
	d.node("", reflect.ValueOf(n), 0)
}

type dumper struct {
	w io.Writer
}

func (d *dumper) node(label string, v reflect.Value, depth int) {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return
	}
	s := v.Elem()

	var line strings.Builder
	line.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		line.WriteString(label + ": ")
	}
	line.WriteString(s.Type().Name())

	type child struct {
		label string
		value reflect.Value
	}
	var children []child
	for i := 0; i < s.NumField(); i++ {
		field, f := s.Type().Field(i), s.Field(i)
		if !field.IsExported() {
			continue
		}
		switch {
		case field.Type == tokenType:
			if tok := f.Interface().(lexer.Token); tok.Line > 0 {
				fmt.Fprintf(&line, " @%d:%d", tok.Line, tok.Column)
			}
		case f.Kind() == reflect.String:
			if f.String() != "" {
				fmt.Fprintf(&line, " %s=%q", field.Name, f.String())
			}
		case f.Kind() == reflect.Bool:
			if f.Bool() {
				line.WriteString(" " + field.Name)
			}
		case f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String:
			if f.Len() > 0 {
				fmt.Fprintf(&line, " %s=%q", field.Name, f.Interface())
			}
		case f.Kind() == reflect.Slice:
			for j := 0; j < f.Len(); j++ {
				children = append(children, child{fmt.Sprintf("%s[%d]", field.Name, j), f.Index(j)})
			}
		default:
			children = append(children, child{field.Name, f})
		}
	}

	fmt.Fprintln(d.w, line.String())
	for _, c := range children {
		d.node(c.label, c.value, depth+1)
	}
}
