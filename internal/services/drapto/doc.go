// Package drapto integrates the Drapto Go library as the alternate video
// backend, encoding with SVT-AV1 instead of NVENC.
//
// It exposes an Encoder interface, a Library implementation that calls Drapto
// directly, and a reporter adapter that logs Drapto's Reporter callbacks and
// forwards progress as ProgressUpdate values. Tests swap in fakes to avoid
// running the real encoder.
package drapto
