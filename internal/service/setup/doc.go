// Package setup provisions a host for the recording workflow.
//
// It executes a fixed ordered sequence of external commands: refresh the
// OS package index, install the sound-file decoding package, upgrade pip,
// and install the Python dependencies listed in the manifest. The first
// failing step aborts the whole sequence and its exit code becomes the
// process exit code. There are no retries and no rollback.
package setup
