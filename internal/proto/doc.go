// Package proto decodes the capture server's line protocol.
//
// Each record is one line of the form
//
//	*TYPE: field field field ...
//
// Fields are separated by single spaces. A field that itself contains
// spaces is wrapped in \x01 bytes. Records are dispatched by TYPE to
// registered handlers; unknown types are ignored.
package proto
