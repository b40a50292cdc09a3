package model

// Category is the closed set of conversation categories a message can be routed to.
// The string value is the label the classifier model is asked to emit.
type Category string

const (
	Technical  Category = "tecnico"
	Commercial Category = "comercial"
	Support    Category = "suporte"
	General    Category = "geral"
)

var categories = []Category{Technical, Commercial, Support, General}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s exactly against the known labels.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) String() string {
	return string(c)
}
