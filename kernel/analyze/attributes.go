package analyze

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/analysis"
)

// TokenAttributeSource is implemented by pipeline components that attach
// extra state to the tokens they produce. The returned values are opaque
// attribute objects; see extract for how they are rendered.
type TokenAttributeSource interface {
	TokenAttributes(t *analysis.Token) []interface{}
}

// AttributeReflectable lets an attribute render its own key/value state.
// Attributes that do not implement it are walked reflectively over their
// exported fields.
type AttributeReflectable interface {
	ReflectWith(f func(key string, value interface{}))
}

// KeywordAttribute mirrors the keyword marker flag every token carries.
// It is reflected even when false.
type KeywordAttribute struct {
	Keyword bool
}

func (a KeywordAttribute) ReflectWith(f func(key string, value interface{})) {
	f("keyword", a.Keyword)
}

// attributeExtractor serializes a token's attribute state as
// class -> {key: value}. Term, offsets, position and type are structural
// response fields and never pass through here.
type attributeExtractor struct {
	include map[string]bool
	short   bool
}

func newAttributeExtractor(include []string, short bool) *attributeExtractor {
	e := &attributeExtractor{short: short}
	if len(include) > 0 {
		e.include = make(map[string]bool, len(include))
		for _, name := range include {
			e.include[strings.ToLower(name)] = true
		}
	}
	return e
}

func (e *attributeExtractor) extract(tok *analysis.Token, sources []TokenAttributeSource) map[string]map[string]interface{} {
	attrs := []interface{}{KeywordAttribute{Keyword: tok.KeyWord}}
	for _, src := range sources {
		attrs = append(attrs, src.TokenAttributes(tok)...)
	}

	var out map[string]map[string]interface{}
	for _, attr := range attrs {
		if attr == nil {
			continue
		}
		fullName, shortName := classNames(attr)
		if e.include != nil && !e.include[strings.ToLower(shortName)] {
			continue
		}
		class := fullName
		if e.short {
			class = shortName
		}
		if out == nil {
			out = make(map[string]map[string]interface{})
		}
		state := out[class]
		if state == nil {
			state = make(map[string]interface{})
			out[class] = state
		}
		reflectInto(attr, state)
	}
	return out
}

func classNames(attr interface{}) (full, short string) {
	t := reflect.TypeOf(attr)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	short = t.Name()
	full = short
	if t.PkgPath() != "" {
		full = t.PkgPath() + "." + short
	}
	return full, short
}

func reflectInto(attr interface{}, state map[string]interface{}) {
	if r, ok := attr.(AttributeReflectable); ok {
		r.ReflectWith(func(key string, value interface{}) {
			state[key] = attrValue(value)
		})
		return
	}

	v := reflect.ValueOf(attr)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		state["value"] = attrValue(attr)
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// unexported
			continue
		}
		state[lowerCamel(f.Name)] = attrValue(v.Field(i).Interface())
	}
}

func attrValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func lowerCamel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
