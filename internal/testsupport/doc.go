// Package testsupport builds throwaway configurations and stub external
// tools for tests that drive av1batch end to end.
package testsupport
