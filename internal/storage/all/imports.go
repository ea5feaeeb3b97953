// Package all exists purely for side effects: importing it (usually as a
// blank import from cmd/etl) runs the init functions of every built-in
// storage backend, which register their dialects with the storage package.
//
// Available kinds after import: "mysql", "postgres", "sqlite". A binary that
// only needs a subset can blank-import the individual backend packages
// instead.
package all

import (
	_ "fleximart/internal/storage/mysql"
	_ "fleximart/internal/storage/postgres"
	_ "fleximart/internal/storage/sqlite"
)
