package domain

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrTraversal means the network has no root or nothing reachable to record
	ErrTraversal = errors.New("traversal failed")

	// ErrSerialization means a renderer was handed an empty or malformed tree
	ErrSerialization = errors.New("serialization failed")

	// ErrStorageDefinition means the graph storage parameter is missing and could not be created
	ErrStorageDefinition = errors.New("storage parameter definition missing")

	// ErrNetworkID means a network id cannot name a document in the output directory
	ErrNetworkID = errors.New("invalid network id")
)

// ValidateNetworkID checks that id is a plain local file name.
// Network ids name their exported documents.
func ValidateNetworkID(id string) error {
	if id == "" || !filepath.IsLocal(id) || filepath.Base(id) != id {
		return fmt.Errorf("%w: %q is not a plain file name", ErrNetworkID, id)
	}
	return nil
}
