package token

var keywords = map[string]Kind{
	"enum":   KwEnum,
	"struct": KwStruct,
	"union":  KwUnion,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive, lowercase only. The annotation argument
// keys (desc, fmt, debug, display) are contextual and stay plain idents.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
