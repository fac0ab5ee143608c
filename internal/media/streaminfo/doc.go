// Package streaminfo holds the typed stream snapshots the planners and the
// profile calculator work from. Each snapshot is built from one ffprobe call
// and is not modified afterwards.
package streaminfo
