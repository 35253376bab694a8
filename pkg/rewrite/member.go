package rewrite

import "github.com/tomaswrobel/scrap-native/pkg/parser"

// PropertyName returns the static name of a property access: the
// identifier of `obj.name`, or the string of `obj["name"]`. Dynamic keys
// and private names have no static name.
func PropertyName(m *parser.MemberExpression) (string, bool) {
	if m == nil {
		return "", false
	}
	switch p := m.Property.(type) {
	case *parser.Identifier:
		if p != nil && !m.Computed {
			return p.Value, true
		}
	case *parser.StringLiteral:
		if p != nil && m.Computed {
			return p.Value, true
		}
	}
	return "", false
}

// IsProperty reports whether m accesses the property called name.
func IsProperty(m *parser.MemberExpression, name string) bool {
	got, ok := PropertyName(m)
	return ok && got == name
}
