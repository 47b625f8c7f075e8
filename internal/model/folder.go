// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// DefaultFolderID is the id of the sentinel folder that always exists and can
// never be deleted. Screens whose folder is removed are reassigned to it.
const DefaultFolderID = "default"

// DefaultFolderName is the display name given to the sentinel folder when the
// document is bootstrapped.
const DefaultFolderName = "General"

// Folder groups screens in the manager UI.
//
// The folder with ID "default" is special: it is created when the document is
// bootstrapped, it is never removed, and deleting any other folder moves that
// folder's screens into it.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultFolder returns the sentinel folder record.
func DefaultFolder() Folder {
	return Folder{ID: DefaultFolderID, Name: DefaultFolderName}
}
