package lexer

import (
	"github.com/emirpasic/gods/v2/maps/treemap"
)

var keywordKinds = []Kind{If, Else, While, For, Int, Float, Bool, Return, True, False, Void, Struct, Fn}

// keywordTable maps reserved spellings to their token kind.
// Every Scanner builds its own so that instances share no state.
type keywordTable struct {
	byName *treemap.Map[string, Kind]
}

func newKeywordTable() *keywordTable {
	t := &keywordTable{byName: treemap.New[string, Kind]()}
	for _, k := range keywordKinds {
		t.byName.Put(keywordSpelling(k), k)
	}
	return t
}

func (t *keywordTable) Lookup(name string) (Kind, bool) {
	return t.byName.Get(name)
}

// Keywords returns the reserved words in lexical order.
func Keywords() []string {
	return newKeywordTable().byName.Keys()
}

// keywordSpelling is the source spelling of a keyword kind, e.g. "return" for Return.
func keywordSpelling(k Kind) string {
	switch k {
	case If:
		return "if"
	case Else:
		return "else"
	case While:
		return "while"
	case For:
		return "for"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Return:
		return "return"
	case True:
		return "true"
	case False:
		return "false"
	case Void:
		return "void"
	case Struct:
		return "struct"
	case Fn:
		return "fn"
	}
	return ""
}
