// Package query answers the dashboard's questions about an EventTable.
//
// Every function is a pure function of its arguments: the table is never
// modified and no state is carried between calls, so callers re-run the
// queries whenever a selection changes.
package query
