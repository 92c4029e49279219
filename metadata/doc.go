// Package metadata provides the opaque per-vector metadata model for vexdb.
//
// Metadata is a string-keyed document of tagged values. The database stores
// documents on insert and returns them verbatim on read; it never interprets
// their contents.
//
// # Metadata Types
//
// Metadata values can be:
//
//   - String: metadata.String("tech")
//   - Number: metadata.Number(3.14), metadata.Int(2024)
//   - Bool: metadata.Bool(true)
//   - Null: metadata.Null()
//   - Array: metadata.Array(metadata.String("a"), metadata.String("b"))
//   - Object: metadata.Object(metadata.Document{...})
//
// Example:
//
//	meta := metadata.Document{
//	    "category":  metadata.String("tech"),
//	    "year":      metadata.Int(2024),
//	    "published": metadata.Bool(true),
//	}
//
// Documents marshal to and from their native JSON form, so HTTP payloads
// round-trip without a tagged envelope.
package metadata
