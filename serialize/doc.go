// Package serialize writes a stream of markup events back out as HTML5
// text that a browser cannot reinterpret as new markup.
//
// A [Serializer] is the last stage of the sanitizer. By the time an event
// reaches it the allow-list has already decided which elements and
// attributes survive; the serializer only decides how each character is
// written:
//
//   - Text content escapes < > & " and ' as entities. When the [Policy]
//     asks for it, every other character becomes a numeric reference.
//   - Attribute values are double-quoted and escape & < > and ".
//   - Boolean attributes (disabled, checked, and any added with
//     [WithBooleanAttributes]) are written as a bare name.
//   - Void elements such as img and br never get an end tag, and no
//     element is ever written in self-closing form.
//   - Comments are written verbatim when the policy preserves them and
//     dropped otherwise.
//
// # Comment bodies
//
// A preserved comment body is not escaped. The event source must make sure
// it cannot contain "-->" or anything else that ends the comment early.
// [WithCommentGuard] turns that contract into a check.
//
// # Errors
//
// A write error from the sink aborts the pass. Output already written is
// not rolled back; callers that need all-or-nothing output should
// serialize into a buffer.
package serialize
