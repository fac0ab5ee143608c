// Package fileutil moves and removes staged artifacts.
package fileutil
