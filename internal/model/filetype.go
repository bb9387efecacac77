package model

import (
	"path/filepath"
	"strings"
)

// Kind is the recognized input document format, derived purely from the
// filename extension. The zero value is KindUnsupported.
type Kind int

const (
	KindUnsupported Kind = iota
	KindJSON
	KindXML
)

// recognized extensions, lowercase without the leading dot
var kindByExt = map[string]Kind{
	"json": KindJSON,
	"xml":  KindXML,
}

// Kinds lists every recognized kind, in no particular order.
func Kinds() []Kind {
	return []Kind{KindJSON, KindXML}
}

// KindForExt classifies an extension case-insensitively. A leading dot is
// tolerated, so both "json" and ".JSON" map to KindJSON. The empty string
// and anything outside the recognized set yield KindUnsupported.
func KindForExt(ext string) Kind {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if k, ok := kindByExt[ext]; ok {
		return k
	}
	return KindUnsupported
}

// KindForPath classifies path by its extension. See KindForExt.
func KindForPath(path string) Kind {
	return KindForExt(filepath.Ext(path))
}

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "JSON"
	case KindXML:
		return "XML"
	default:
		return "unsupported"
	}
}

// Ext returns the canonical lowercase extension without a dot.
// KindUnsupported has no extension and returns "".
func (k Kind) Ext() string {
	switch k {
	case KindJSON:
		return "json"
	case KindXML:
		return "xml"
	default:
		return ""
	}
}
