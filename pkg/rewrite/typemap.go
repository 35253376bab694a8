package rewrite

import "github.com/tomaswrobel/scrap-native/pkg/parser"

const anyTag = "any"

// TypeTags maps a type annotation to the ordered tags the runtime uses to
// validate values. Unions contribute the tags of every member, duplicates
// included. Shapes without a dedicated tag map to "any".
func TypeTags(t parser.TypeNode) []string {
	switch x := t.(type) {
	case *parser.KeywordType:
		if x != nil {
			switch x.Name {
			case "number", "boolean", "string", "void":
				return []string{x.Name}
			}
		}
	case *parser.ArrayType:
		if x != nil {
			return []string{"array"}
		}
	case *parser.ParenthesizedType:
		if x != nil {
			return TypeTags(x.Type)
		}
	case *parser.UnionType:
		if x != nil && len(x.Types) > 0 {
			var tags []string
			for _, member := range x.Types {
				tags = append(tags, TypeTags(member)...)
			}
			return tags
		}
	case *parser.TypeReference:
		if x != nil {
			if id, ok := x.Name.(*parser.Identifier); ok && id != nil {
				return []string{id.Value}
			}
		}
	}
	return []string{anyTag}
}
