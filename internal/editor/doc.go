// Package editor implements the record editor that walks an entity table
// one record at a time, and the switchboard that decides which data-entry
// workflows may be opened.
//
// The editor keeps a cursor over the table ordered by id. Moving the cursor
// saves a dirty record first; a record whose description duplicates another
// row is not saved and the edit is reverted. New records take MAX(id)+1, or
// the entity's MinID when the table is empty. Deleting asks the referential
// guard first.
package editor
