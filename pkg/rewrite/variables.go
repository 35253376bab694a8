package rewrite

import "github.com/tomaswrobel/scrap-native/pkg/parser"

// Variable is a typed variable declared by an interface property.
type Variable struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// Variables lists the properties of every top-level interface in document
// order. It does not modify program. The result is never nil.
func Variables(program *parser.Program) []Variable {
	vars := []Variable{}
	if program == nil {
		return vars
	}
	for _, stmt := range program.Statements {
		if decl, ok := stmt.(*parser.InterfaceDeclaration); ok && decl != nil {
			vars = append(vars, interfaceVariables(decl)...)
		}
	}
	return vars
}

func interfaceVariables(decl *parser.InterfaceDeclaration) []Variable {
	var vars []Variable
	for _, member := range decl.Members {
		sig, ok := member.(*parser.PropertySignature)
		if !ok || sig == nil {
			continue
		}
		name, ok := signatureKey(sig)
		if !ok {
			continue
		}
		vars = append(vars, Variable{Name: name, Types: TypeTags(sig.TypeAnnotation)})
	}
	return vars
}

// signatureKey accepts identifier and string-literal keys. Computed
// identifiers name a runtime value and are not keys.
func signatureKey(sig *parser.PropertySignature) (string, bool) {
	switch k := sig.Key.(type) {
	case *parser.Identifier:
		if k != nil && !sig.Computed {
			return k.Value, true
		}
	case *parser.StringLiteral:
		if k != nil {
			return k.Value, true
		}
	}
	return "", false
}
