// Package catalog defines the normalized view of media-server items and the
// uniform contract both backends implement.
//
// Items are read-through projections of remote state: they are fetched fresh
// per command invocation and never cached between runs. Identifiers are
// opaque and catalog-native; nothing in this repo ever compares identifiers
// across catalogs. Mutations go back through the owning catalog's write
// methods, never by editing a projection in place.
package catalog
