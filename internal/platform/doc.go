// Package platform hides the few OS differences cfkit cares about: which
// remote scripts a platform needs and whether Unix permission bits apply.
package platform
