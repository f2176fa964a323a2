// Package resource copies files into the assembly output, either verbatim
// with a freshness check or through a filter pipeline that substitutes
// `${name}` and `@name@` tokens from a layered property map.
package resource
