// Package version reports the build identity of the audioscribe binary.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/audioscribe/version.Version=1.0.0"
//
// Values left empty are filled from the module build info when the binary
// was built inside a VCS checkout.
package version
