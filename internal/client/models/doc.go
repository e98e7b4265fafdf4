// Package models holds the wire types of the tracker API and the small
// amount of client-side arithmetic the CLI shows next to them.
//
// All amounts travel as decimal strings ("1250.00"); the helpers here parse
// them only for display and local validation. The API stays authoritative.
package models
