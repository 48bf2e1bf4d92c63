package resolve

import "erdgen/internal/model"

// keyTags maps documentation tags to key types, in priority order.
var keyTags = []struct {
	tag string
	key model.KeyType
}{
	{"pk", model.PrimaryKey},
	{"primaryKey", model.PrimaryKey},
	{"fk", model.ForeignKey},
	{"foreignKey", model.ForeignKey},
	{"unique", model.UniqueKey},
}

// InferKeyType classifies a property as PK/FK/UK from its documentation tags,
// falling back to the naming convention when no tag matched. Returns the
// empty key type when neither applies.
func InferKeyType(name, doc string) model.KeyType {
	for _, kt := range keyTags {
		if hasTag(doc, kt.tag) {
			return kt.key
		}
	}
	switch name {
	case "id", "ID", "_id":
		return model.PrimaryKey
	}
	if len(name) > 2 && name[len(name)-2:] == "Id" {
		return model.ForeignKey
	}
	return ""
}

// hasTag reports whether doc contains @tag as a whole word.
func hasTag(doc, tag string) bool {
	marker := "@" + tag
	for i := 0; i+len(marker) <= len(doc); i++ {
		if doc[i:i+len(marker)] != marker {
			continue
		}
		if end := i + len(marker); end == len(doc) || !isWordByte(doc[end]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
