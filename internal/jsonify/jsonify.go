// Copyright (C) 2025 Hervé Saint-Amand. All Rights Reserved.

// Package jsonify defines the sentinel-tag vocabulary used to encode
// non-JSON constructs (sets, identifiers, regexes, function calls) as plain
// JSON structures. The in-memory builder and the JSON printer share these
// definitions so that their outputs stay semantically consistent.
package jsonify

// Reserved keys and prefixes for sentinel-tagged encodings.
const (
	SetKey           = "$set"     // {"$set": [elements]}
	RegexKey         = "$regex"   // {"$regex": pattern}
	OptionsKey       = "$options" // regex flags, when present
	KwargsKey        = "$kwargs"  // {"$kwargs": {key: value}}
	ReprPrefix       = "$repr"    // "$repr<...>"
	IdentifierPrefix = "$$"       // "$$name"
)

// specialCalls maps function names with conventional semantic encodings to
// their tag keys, per MongoDB extended JSON.
//
// https://docs.mongodb.com/manual/reference/mongodb-extended-json/
var specialCalls = map[string]string{
	"Date":     "$date",
	"ObjectId": "$oid",
}

// SpecialCall reports the tag key for function names with a recognized
// semantic encoding, e.g. "$date" for Date.
func SpecialCall(name string) (string, bool) {
	key, ok := specialCalls[name]
	return key, ok
}

// CallKey returns the mapping key under which a call's arguments are
// encoded: the special tag if the name has one, else the identifier-prefixed
// name.
func CallKey(name string) string {
	if key, ok := specialCalls[name]; ok {
		return key
	}
	return Identifier(name)
}

// NamedConstant returns the sentinel string encoding of a named constant,
// e.g. "$undefined" for undefined.
func NamedConstant(name string) string { return "$" + name }

// Identifier returns the sentinel string encoding of a bare identifier.
func Identifier(name string) string { return IdentifierPrefix + name }

// Repr returns the sentinel string encoding of a <...> repr token.
func Repr(raw string) string { return ReprPrefix + raw }
