// Package types defines the record interfaces, entity types, configuration
// and standard error values shared by the backoffice packages.
//
// Every entity is a flat record keyed by a numeric id. Entities expose their
// fields by key (Field) so that generic list views can search and render them,
// and as raw form values (Values) so that generic stores can validate drafts
// against them.
package types
