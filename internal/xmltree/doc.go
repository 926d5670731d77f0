// Package xmltree builds a small in-memory element tree from an XML document.
//
// The tree keeps namespace URIs, attributes, direct character data and child
// order, which is all the take-off decoder needs. Parse bounds element depth
// and element count so a hostile or corrupt document fails fast instead of
// exhausting memory.
package xmltree
