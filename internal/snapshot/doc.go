// Package snapshot holds the ordered file collections used for the working
// set, the staging area and commit contents.
package snapshot
