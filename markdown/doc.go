// Package markdown implements spec.md §4.10, the emitter that turns a
// fully-classified ParseResult into per-page Markdown strings plus, in
// relative image mode, a name-to-bytes image map.
package markdown
